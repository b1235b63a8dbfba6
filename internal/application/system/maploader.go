package system

import (
	"strings"
)

// Grid is a parsed map: rows of single-character symbols.
// Row index is the y tile coordinate, column index the x tile coordinate.
type Grid struct {
	rows [][]rune
}

// ParseGrid splits newline-delimited map data into a grid.
// Carriage returns are dropped and a trailing newline does not add a row.
func ParseGrid(data []byte) *Grid {
	text := strings.ReplaceAll(string(data), "\r", "")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return &Grid{}
	}

	lines := strings.Split(text, "\n")
	rows := make([][]rune, len(lines))
	for y, line := range lines {
		rows[y] = []rune(line)
	}
	return &Grid{rows: rows}
}

// Width returns the length of the longest row in tiles
func (g *Grid) Width() int {
	w := 0
	for _, row := range g.rows {
		w = max(w, len(row))
	}
	return w
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return len(g.rows)
}

// Each calls spawn once per cell in row-major order
func (g *Grid) Each(spawn func(symbol rune, x, y int)) {
	for y, row := range g.rows {
		for x, symbol := range row {
			spawn(symbol, x, y)
		}
	}
}

// MapResult is the outcome of an asynchronous map read
type MapResult struct {
	ID   string
	Grid *Grid
	Err  error
}

// LoadMapAsync reads and parses a map off the frame loop.
// The returned channel yields exactly one result and is buffered, so the reader never blocks.
func LoadMapAsync(id string, read func() ([]byte, error)) <-chan MapResult {
	ch := make(chan MapResult, 1)
	go func() {
		data, err := read()
		if err != nil {
			ch <- MapResult{ID: id, Grid: &Grid{}, Err: err}
			return
		}
		ch <- MapResult{ID: id, Grid: ParseGrid(data)}
	}()
	return ch
}
