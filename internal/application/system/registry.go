package system

import "github.com/younwookim/tilerun/internal/domain/entity"

// Registry owns the world's entities, partitioned by layer.
//
// Buckets are copy-on-write: Unregister always builds a new slice, so a pass
// iterating a snapshot is never disturbed by removals made during that pass.
type Registry struct {
	layers [len(entity.Layers)][]*entity.Entity
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

func validLayer(l entity.Layer) bool {
	return l >= 0 && int(l) < len(entity.Layers)
}

// Register appends e to its layer bucket. Returns false for an invalid layer.
func (r *Registry) Register(e *entity.Entity) bool {
	if e == nil || !validLayer(e.Layer) {
		return false
	}
	r.layers[e.Layer] = append(r.layers[e.Layer], e)
	return true
}

// Unregister removes e by identity. Removing an absent entity is a no-op.
func (r *Registry) Unregister(e *entity.Entity) {
	if e == nil || !validLayer(e.Layer) {
		return
	}
	r.layers[e.Layer] = without(r.layers[e.Layer], e)
}

// without returns a fresh slice lacking e, or the original slice if e is absent
func without(bucket []*entity.Entity, e *entity.Entity) []*entity.Entity {
	idx := -1
	for i, x := range bucket {
		if x == e {
			idx = i
			break
		}
	}
	if idx < 0 {
		return bucket
	}

	next := make([]*entity.Entity, 0, len(bucket)-1)
	next = append(next, bucket[:idx]...)
	next = append(next, bucket[idx+1:]...)
	return next
}

// UpdateAll updates every live entity: layer order, then insertion order.
// Entities registered during the pass are first updated next frame.
func (r *Registry) UpdateAll(ctx entity.Context) {
	for _, l := range entity.Layers {
		for _, e := range r.layers[l] {
			if e.Destroyed() {
				continue
			}
			e.Update(ctx)
		}
	}
}

// Commit applies every pending delta
func (r *Registry) Commit() {
	for _, l := range entity.Layers {
		for _, e := range r.layers[l] {
			e.Commit()
		}
	}
}

// DrawAll draws back to front
func (r *Registry) DrawAll(s Surface) {
	for _, l := range entity.Layers {
		for _, e := range r.layers[l] {
			s.DrawTile(e.Sheet, e.Col, e.Row, e.Size, e.X, e.Y)
		}
	}
}

// Layer returns the bucket for l. Callers must not modify it.
func (r *Registry) Layer(l entity.Layer) []*entity.Entity {
	if !validLayer(l) {
		return nil
	}
	return r.layers[l]
}

// Contains reports whether e is in any layer bucket
func (r *Registry) Contains(e *entity.Entity) bool {
	for _, bucket := range r.layers {
		for _, x := range bucket {
			if x == e {
				return true
			}
		}
	}
	return false
}

// Len returns the total number of registered entities
func (r *Registry) Len() int {
	n := 0
	for _, bucket := range r.layers {
		n += len(bucket)
	}
	return n
}

// Clear drops every entity
func (r *Registry) Clear() {
	r.layers = [len(entity.Layers)][]*entity.Entity{}
}
