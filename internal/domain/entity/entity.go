package entity

// Handler is a per-frame behavior bound to one entity.
// Handlers only read and write the entity's kinematic and visual state.
type Handler interface {
	Update(e *Entity, ctx Context)
}

// Entity is the single positioned, taggable unit of the world.
// Variation between entity kinds is data (sheet, tags, size, slots), not type.
type Entity struct {
	Body

	ID    EntityID
	Kind  string
	Role  Role
	Sheet string
	Row   int
	Col   int
	Layer Layer
	Tags  []string

	// Optional behavior slots, looked up by capability
	Gravity   *Gravity
	Animation *Animation
	Collision *CollisionHandler
	Steering  Steering

	Vitals *Vitals
	Pickup *Pickup
	Strike *Strike

	handlers  []Handler
	destroyed bool
}

// New creates an entity at pixel coordinates facing right.
func New(kind string, x, y, size float64, layer Layer, tags ...string) *Entity {
	return &Entity{
		Body: Body{
			X:      x,
			Y:      y,
			Size:   size,
			Facing: 1,
		},
		Kind:  kind,
		Layer: layer,
		Tags:  append([]string(nil), tags...),
	}
}

// AttachGravity fills the gravity slot and appends it to the pipeline
func (e *Entity) AttachGravity(g *Gravity) *Entity {
	e.Gravity = g
	e.handlers = append(e.handlers, g)
	return e
}

// AttachAnimation fills the animation slot and appends it to the pipeline
func (e *Entity) AttachAnimation(a *Animation) *Entity {
	e.Animation = a
	e.handlers = append(e.handlers, a)
	return e
}

// AttachCollision marks the entity as a mover and appends the marker to the pipeline
func (e *Entity) AttachCollision() *Entity {
	e.Collision = &CollisionHandler{}
	e.handlers = append(e.handlers, e.Collision)
	return e
}

// Handlers returns the pipeline in attachment order
func (e *Entity) Handlers() []Handler {
	return e.handlers
}

// HasTag reports whether the entity carries tag
func (e *Entity) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsMover reports whether the detector corrects this entity
func (e *Entity) IsMover() bool {
	return e.Collision != nil
}

// Destroyed reports whether the entity has been removed from the world
func (e *Entity) Destroyed() bool {
	return e.destroyed
}

// MarkDestroyed flags the entity as removed. Returns false if it already was.
func (e *Entity) MarkDestroyed() bool {
	if e.destroyed {
		return false
	}
	e.destroyed = true
	return true
}

// Update runs one frame: timers, steering, then every handler in attachment order.
func (e *Entity) Update(ctx Context) {
	if e.destroyed {
		return
	}

	if e.Vitals != nil {
		e.Vitals.Tick()
	}

	if e.Strike != nil && e.Strike.Tick() {
		ctx.Destroy(e)
		return
	}

	if e.Steering != nil {
		e.Steering.Steer(e, ctx)
	}

	for _, h := range e.handlers {
		h.Update(e, ctx)
	}
}
