package entity

import "math"

// Gravity integrates a downward velocity into DY.
// JumpForce is negative (upward).
type Gravity struct {
	MaxGravity   float64
	GravityForce float64
	JumpForce    float64

	velocity float64
}

// NewGravity creates a gravity handler
func NewGravity(maxGravity, gravityForce, jumpForce float64) *Gravity {
	return &Gravity{
		MaxGravity:   maxGravity,
		GravityForce: gravityForce,
		JumpForce:    jumpForce,
	}
}

// Velocity returns the current vertical velocity
func (g *Gravity) Velocity() float64 {
	return g.velocity
}

// Update accelerates while airborne (clamped to MaxGravity) and adds the velocity to DY.
func (g *Gravity) Update(e *Entity, _ Context) {
	if !e.Grounded {
		g.velocity = math.Min(g.velocity+g.GravityForce, g.MaxGravity)
	}
	e.DY += g.velocity
}

// Jump launches the entity when grounded. Airborne calls are a no-op.
func (g *Gravity) Jump(e *Entity) bool {
	if !e.Grounded {
		return false
	}
	g.velocity = g.JumpForce
	e.Grounded = false
	return true
}

// Stop zeroes the vertical velocity after a vertical contact
func (g *Gravity) Stop() {
	g.velocity = 0
}

// Animation cycles the sprite column
type Animation struct {
	FramesPerAnimation int
	NumberOfFrames     int

	counter int
}

// NewAnimation creates an animation handler
func NewAnimation(framesPerAnimation, numberOfFrames int) *Animation {
	return &Animation{
		FramesPerAnimation: framesPerAnimation,
		NumberOfFrames:     numberOfFrames,
	}
}

// Update advances Col every FramesPerAnimation calls
func (a *Animation) Update(e *Entity, _ Context) {
	if a.FramesPerAnimation <= 0 || a.NumberOfFrames <= 0 {
		return
	}
	a.counter++
	if a.counter >= a.FramesPerAnimation {
		a.counter = 0
		e.Col = (e.Col + 1) % a.NumberOfFrames
	}
}

// Reset restarts the cycle from the first column
func (a *Animation) Reset(e *Entity) {
	a.counter = 0
	e.Col = 0
}

// CollisionHandler marks its entity as a mover. Geometry lives in the detector.
type CollisionHandler struct{}

// Update is a no-op
func (*CollisionHandler) Update(*Entity, Context) {}
