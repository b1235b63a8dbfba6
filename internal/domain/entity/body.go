package entity

import "math"

// touchEpsilon absorbs float error when testing edge contact
const touchEpsilon = 1e-6

// Body holds the kinematic state shared by all handlers.
// Position is in pixels; DX/DY accumulate during a frame and are applied once by Commit.
type Body struct {
	X, Y   float64
	DX, DY float64
	Size   float64

	Grounded bool
	Facing   int // +1 right, -1 left
}

// Left returns the left edge
func (b *Body) Left() float64 { return b.X }

// Right returns the right edge
func (b *Body) Right() float64 { return b.X + b.Size }

// Top returns the top edge
func (b *Body) Top() float64 { return b.Y }

// Bottom returns the bottom edge
func (b *Body) Bottom() float64 { return b.Y + b.Size }

// CenterX returns the horizontal center
func (b *Body) CenterX() float64 { return b.X + b.Size/2 }

// CenterY returns the vertical center
func (b *Body) CenterY() float64 { return b.Y + b.Size/2 }

// PendingX returns X with the unapplied delta
func (b *Body) PendingX() float64 { return b.X + b.DX }

// PendingY returns Y with the unapplied delta
func (b *Body) PendingY() float64 { return b.Y + b.DY }

// Commit applies the pending delta and clears it
func (b *Body) Commit() {
	b.X += b.DX
	b.Y += b.DY
	b.DX = 0
	b.DY = 0
}

// Span is a 1D interval used for overlap tests
type Span struct {
	Min, Max float64
}

// Overlaps reports whether two spans share interior points (touching edges do not overlap)
func (s Span) Overlaps(o Span) bool {
	return s.Min < o.Max-touchEpsilon && o.Min < s.Max-touchEpsilon
}

// SpanX returns the horizontal span at position x
func (b *Body) SpanX(x float64) Span { return Span{Min: x, Max: x + b.Size} }

// SpanY returns the vertical span at position y
func (b *Body) SpanY(y float64) Span { return Span{Min: y, Max: y + b.Size} }

// Touches reports whether a and b are within touchEpsilon
func Touches(a, b float64) bool {
	return math.Abs(a-b) <= touchEpsilon
}
