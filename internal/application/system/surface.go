package system

// Surface is the draw target the core renders into.
// The playing scene backs it with an ebiten image; tests use a recorder.
type Surface interface {
	// Clear resets the surface for a new frame.
	Clear()
	// DrawBackground paints the decorative background shifted horizontally by shift pixels.
	DrawBackground(shift float64)
	// DrawTile draws cell (col, row) of sheet at screen position (x, y).
	DrawTile(sheet string, col, row int, size, x, y float64)
}

// offsetSurface translates world coordinates into screen coordinates
type offsetSurface struct {
	Surface
	dx, dy float64
}

// DrawTile draws at the translated position
func (s offsetSurface) DrawTile(sheet string, col, row int, size, x, y float64) {
	s.Surface.DrawTile(sheet, col, row, size, x-s.dx, y-s.dy)
}
