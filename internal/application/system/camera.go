package system

import (
	"math"

	"github.com/younwookim/tilerun/internal/domain/entity"
)

// Camera is a fixed-size viewport over the map that follows one focus entity.
type Camera struct {
	viewW, viewH float64
	mapW, mapH   float64

	x, y       float64
	background float64

	focus *entity.Entity
}

// NewCamera creates a camera with the given viewport size in pixels
func NewCamera(viewW, viewH float64) *Camera {
	return &Camera{viewW: viewW, viewH: viewH}
}

// SetBounds sets the map size in pixels and re-clamps the offset
func (c *Camera) SetBounds(mapW, mapH float64) {
	c.mapW = mapW
	c.mapH = mapH
	c.clamp()
}

// CenterOn centers the viewport on e, clamped to the map. A nil entity is ignored.
func (c *Camera) CenterOn(e *entity.Entity) {
	if e == nil {
		return
	}
	c.focus = e
	c.x = e.CenterX() - c.viewW/2
	c.y = e.CenterY() - c.viewH/2
	c.clamp()
}

// Follow re-centers on the last focus
func (c *Camera) Follow() {
	c.CenterOn(c.focus)
}

func (c *Camera) clamp() {
	c.x = clampFloat(c.x, 0, math.Max(0, c.mapW-c.viewW))
	c.y = clampFloat(c.y, 0, math.Max(0, c.mapH-c.viewH))
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Offset returns the viewport's top-left corner in world pixels
func (c *Camera) Offset() (x, y float64) {
	return c.x, c.y
}

// Focus returns the tracked entity, or nil
func (c *Camera) Focus() *entity.Entity {
	return c.focus
}

// ViewSize returns the viewport size in pixels
func (c *Camera) ViewSize() (w, h float64) {
	return c.viewW, c.viewH
}

// ShiftBackground moves the parallax background. It is not clamped.
func (c *Camera) ShiftBackground(delta float64) {
	c.background += delta
}

// Background returns the accumulated background shift
func (c *Camera) Background() float64 {
	return c.background
}

// ClearScreen resets s and paints the background. Call before the draw pass.
func (c *Camera) ClearScreen(s Surface) {
	s.Clear()
	s.DrawBackground(c.background)
}

// View wraps s so world coordinates are drawn relative to the viewport
func (c *Camera) View(s Surface) Surface {
	return offsetSurface{Surface: s, dx: c.x, dy: c.y}
}

// Reset drops the focus and returns to the origin
func (c *Camera) Reset() {
	c.focus = nil
	c.x, c.y = 0, 0
	c.background = 0
}
