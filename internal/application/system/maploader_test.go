package system

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cell struct {
	symbol rune
	x, y   int
}

func collectCells(g *Grid) []cell {
	var out []cell
	g.Each(func(symbol rune, x, y int) {
		out = append(out, cell{symbol, x, y})
	})
	return out
}

func TestParseGrid_RowMajorOrder(t *testing.T) {
	g := ParseGrid([]byte("ab\ncd\n"))

	assert.Equal(t, 2, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, []cell{
		{'a', 0, 0}, {'b', 1, 0},
		{'c', 0, 1}, {'d', 1, 1},
	}, collectCells(g))
}

func TestParseGrid_Variants(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		width  int
		height int
	}{
		{"empty", "", 0, 0},
		{"single row no newline", "PwwE", 4, 1},
		{"windows line endings", "ww\r\nPE\r\n", 2, 2},
		{"ragged rows", "w\nwww\nww", 3, 3},
		{"blank middle row", "ww\n\nww", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ParseGrid([]byte(tt.data))
			assert.Equal(t, tt.width, g.Width())
			assert.Equal(t, tt.height, g.Height())
		})
	}
}

func TestParseGrid_CarriageReturnsAreNotCells(t *testing.T) {
	g := ParseGrid([]byte("ab\r\ncd\r\n"))
	for _, c := range collectCells(g) {
		assert.NotEqual(t, '\r', c.symbol)
	}
	assert.Len(t, collectCells(g), 4)
}

func TestParseGrid_UnknownSymbolsStillVisited(t *testing.T) {
	// the caller decides what to skip
	g := ParseGrid([]byte(" ?\n"))
	assert.Equal(t, []cell{{' ', 0, 0}, {'?', 1, 0}}, collectCells(g))
}

func awaitMap(t *testing.T, ch <-chan MapResult) MapResult {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		require.FailNow(t, "map load timed out")
		return MapResult{}
	}
}

func TestLoadMapAsync(t *testing.T) {
	ch := LoadMapAsync("map-01", func() ([]byte, error) {
		return []byte("ww\nPw\n"), nil
	})

	r := awaitMap(t, ch)
	require.NoError(t, r.Err)
	assert.Equal(t, "map-01", r.ID)
	assert.Equal(t, 2, r.Grid.Height())
}

func TestLoadMapAsync_ReadError(t *testing.T) {
	errMissing := errors.New("missing")
	ch := LoadMapAsync("map-99", func() ([]byte, error) {
		return nil, fmt.Errorf("failed to read map: %w", errMissing)
	})

	r := awaitMap(t, ch)
	require.ErrorIs(t, r.Err, errMissing)
	assert.Equal(t, "map-99", r.ID)
	require.NotNil(t, r.Grid)
	assert.Zero(t, r.Grid.Height())
}

func TestLoadMapAsync_DoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	ch := LoadMapAsync("slow", func() ([]byte, error) {
		<-release
		return []byte("w"), nil
	})

	select {
	case <-ch:
		t.Fatal("result delivered before the read finished")
	default:
	}

	close(release)
	r := awaitMap(t, ch)
	assert.NoError(t, r.Err)
}
