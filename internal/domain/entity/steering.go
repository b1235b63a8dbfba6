package entity

import "math"

// Steering turns input or AI decisions into movement deltas.
// It runs before the handler pipeline each frame.
type Steering interface {
	Steer(e *Entity, ctx Context)
}

// PlayerControl steers from the frame's input snapshot
type PlayerControl struct {
	Speed          float64
	AttackCooldown int // frames between attacks
	StrikeKind     string
	RowRight       int
	RowLeft        int

	lastAttack uint64
	attacked   bool
}

// Steer applies move/jump/attack actions
func (p *PlayerControl) Steer(e *Entity, ctx Context) {
	in := ctx.Input()

	if in.MoveLeft {
		e.DX -= p.Speed
		e.Facing = -1
		e.Row = p.RowLeft
	}
	if in.MoveRight {
		e.DX += p.Speed
		e.Facing = 1
		e.Row = p.RowRight
	}
	if in.Jump && e.Gravity != nil {
		e.Gravity.Jump(e)
	}
	if in.Attack {
		p.attack(e, ctx)
	}
}

// CanAttack reports whether the cooldown has elapsed at frame
func (p *PlayerControl) CanAttack(frame uint64) bool {
	if !p.attacked {
		return true
	}
	return frame-p.lastAttack > uint64(p.AttackCooldown)
}

// attack spawns a strike one cell ahead in the facing direction
func (p *PlayerControl) attack(e *Entity, ctx Context) {
	frame := ctx.Frame()
	if !p.CanAttack(frame) {
		return
	}
	p.attacked = true
	p.lastAttack = frame

	strike := ctx.Spawn(p.StrikeKind, e.X+float64(e.Facing)*e.Size, e.Y)
	if strike != nil && strike.Strike != nil && e.Vitals != nil {
		strike.Strike.Damage = e.Vitals.Damage
	}
	ctx.Emit(CueAttack)
}

// Chase walks toward the focus entity while it is within range
type Chase struct {
	Speed         float64
	Range         float64 // horizontal activation distance in pixels
	VerticalRange float64 // 0 disables the vertical gate
	IdleDirection int     // -1, 0 or +1 when the focus is out of range
	// LeftOnly walks left whenever the focus is to the left, in range or not,
	// on top of the idle direction when out of range. It never pursues right.
	LeftOnly bool
	RowRight int
	RowLeft  int
}

// Steer moves horizontally toward ctx.Focus()
func (c *Chase) Steer(e *Entity, ctx Context) {
	focus := ctx.Focus()
	if focus == nil || focus.Destroyed() {
		c.move(e, c.IdleDirection)
		return
	}
	if c.LeftOnly {
		if !c.inRange(e, focus) {
			c.move(e, c.IdleDirection)
		}
		if focus.X < e.X {
			c.move(e, -1)
		}
		return
	}
	if !c.inRange(e, focus) {
		c.move(e, c.IdleDirection)
		return
	}

	switch {
	case focus.X < e.X:
		c.move(e, -1)
	case focus.X > e.X:
		c.move(e, 1)
	}
}

func (c *Chase) inRange(e, focus *Entity) bool {
	if math.Abs(focus.X-e.X) > c.Range {
		return false
	}
	if c.VerticalRange > 0 && math.Abs(focus.Y-e.Y) > c.VerticalRange {
		return false
	}
	return true
}

func (c *Chase) move(e *Entity, dir int) {
	if dir == 0 {
		return
	}
	e.DX += float64(dir) * c.Speed
	e.Facing = dir
	if dir < 0 {
		e.Row = c.RowLeft
	} else {
		e.Row = c.RowRight
	}
}
