package system

import (
	"errors"
	"fmt"
	"math"

	"github.com/solarlune/resolv"
	"github.com/younwookim/tilerun/internal/domain/entity"
)

// ScopeAll resolves movers against every tag they carry
const ScopeAll = "all"

// broadphaseMargin pads broadphase queries so that no narrow-phase contact is pruned
const broadphaseMargin = 1

// Policy is how a tag's members react to overlap
type Policy string

const (
	PolicyNone   Policy = ""
	PolicySolid  Policy = "solid"
	PolicyDamage Policy = "damage"
	PolicyPickup Policy = "pickup"
	PolicyExit   Policy = "exit"
	PolicyHazard Policy = "hazard"
)

// ErrUnknownPolicy is returned for a policy name that is not recognised
var ErrUnknownPolicy = errors.New("unknown collision policy")

// ParsePolicy converts a config policy name. An empty name is PolicyNone.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyNone, PolicySolid, PolicyDamage, PolicyPickup, PolicyExit, PolicyHazard:
		return p, nil
	}
	return PolicyNone, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// ParsePolicies converts a tag -> policy name table
func ParsePolicies(tags map[string]string) (map[string]Policy, error) {
	out := make(map[string]Policy, len(tags))
	for tag, name := range tags {
		p, err := ParsePolicy(name)
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", tag, err)
		}
		out[tag] = p
	}
	return out, nil
}

// Hooks receives the side effects of collision resolution
type Hooks interface {
	Destroy(e *entity.Entity)
	Emit(cue entity.Cue)
	PlayerDefeated()
	ExitReached()
}

// DetectorConfig configures tag policies and damage timing
type DetectorConfig struct {
	CellSize       int
	Policies       map[string]Policy
	DamageCooldown int // frames of invulnerability after a damage exchange
}

type pairKey struct {
	a, b *entity.Entity
}

// Detector keeps one ordered bucket per collision tag and corrects movers.
//
// A resolv space serves as the broadphase; the narrow phase and all ordering
// decisions use the buckets so results do not depend on hash-cell layout.
type Detector struct {
	buckets map[string][]*entity.Entity
	movers  []*entity.Entity

	cfg   DetectorConfig
	hooks Hooks

	space   *resolv.Space
	objects map[*entity.Entity]*resolv.Object

	handled map[pairKey]struct{}
}

// NewDetector creates a detector. hooks may be nil.
func NewDetector(cfg DetectorConfig, hooks Hooks) *Detector {
	if cfg.CellSize <= 0 {
		cfg.CellSize = 32
	}
	if cfg.Policies == nil {
		cfg.Policies = map[string]Policy{}
	}
	return &Detector{
		buckets: make(map[string][]*entity.Entity),
		cfg:     cfg,
		hooks:   hooks,
		objects: make(map[*entity.Entity]*resolv.Object),
		handled: make(map[pairKey]struct{}),
	}
}

// SetHooks replaces the effect receiver
func (d *Detector) SetHooks(h Hooks) {
	d.hooks = h
}

// Reset drops all members and sizes the broadphase for a map of w x h pixels
func (d *Detector) Reset(w, h float64) {
	d.buckets = make(map[string][]*entity.Entity)
	d.movers = nil
	d.objects = make(map[*entity.Entity]*resolv.Object)

	cell := d.cfg.CellSize
	// one spare cell on each axis so edge tiles are always inside the space
	sw := (int(math.Ceil(w))/cell + 1) * cell
	sh := (int(math.Ceil(h))/cell + 1) * cell
	d.space = resolv.NewSpace(sw, sh, cell, cell)
}

// Policy returns the policy configured for tag
func (d *Detector) Policy(tag string) Policy {
	return d.cfg.Policies[tag]
}

func (d *Detector) hasPolicy(e *entity.Entity, p Policy) bool {
	for _, t := range e.Tags {
		if d.cfg.Policies[t] == p {
			return true
		}
	}
	return false
}

// Register adds e to the bucket of every tag it carries, and to the mover list if it has a collision handler.
// Registering twice is a no-op.
func (d *Detector) Register(e *entity.Entity) {
	if e == nil || (len(e.Tags) == 0 && !e.IsMover()) {
		return
	}
	if _, ok := d.objects[e]; ok {
		return
	}

	for _, tag := range e.Tags {
		d.buckets[tag] = append(d.buckets[tag], e)
	}
	if e.IsMover() {
		d.movers = append(d.movers, e)
	}

	obj := resolv.NewObject(e.X, e.Y, e.Size, e.Size, e.Tags...)
	obj.Data = e
	if d.space != nil {
		d.space.Add(obj)
	}
	d.objects[e] = obj
}

// Unregister removes e from every bucket. Safe for absent entities.
func (d *Detector) Unregister(e *entity.Entity) {
	obj, ok := d.objects[e]
	if !ok {
		return
	}

	for _, tag := range e.Tags {
		d.buckets[tag] = without(d.buckets[tag], e)
	}
	d.movers = without(d.movers, e)

	if d.space != nil {
		d.space.Remove(obj)
	}
	delete(d.objects, e)
}

// Bucket returns the members of tag in registration order. Callers must not modify it.
func (d *Detector) Bucket(tag string) []*entity.Entity {
	return d.buckets[tag]
}

// Movers returns the entities subject to correction
func (d *Detector) Movers() []*entity.Entity {
	return d.movers
}

// BucketsContaining counts the buckets that hold e
func (d *Detector) BucketsContaining(e *entity.Entity) int {
	n := 0
	for _, bucket := range d.buckets {
		for _, x := range bucket {
			if x == e {
				n++
				break
			}
		}
	}
	return n
}

// Resolve corrects every mover against the candidates in scope.
// scope is ScopeAll or a single tag; a tag scope limits candidates to that bucket.
func (d *Detector) Resolve(scope string) {
	clear(d.handled)
	d.sync()

	for _, m := range d.movers {
		if m.Destroyed() {
			continue
		}
		d.resolveMover(m, scope)
	}
}

// sync moves broadphase objects to the movers' current positions
func (d *Detector) sync() {
	for _, m := range d.movers {
		obj := d.objects[m]
		if obj.X == m.X && obj.Y == m.Y {
			continue
		}
		obj.X, obj.Y = m.X, m.Y
		obj.Update()
	}
}

// candidates lists the entities sharing a tag with m, deduplicated, in bucket order
func (d *Detector) candidates(m *entity.Entity, scope string) []*entity.Entity {
	var out []*entity.Entity
	seen := make(map[*entity.Entity]struct{})
	add := func(bucket []*entity.Entity) {
		for _, c := range bucket {
			if c == m {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}

	if scope == ScopeAll {
		for _, tag := range m.Tags {
			add(d.buckets[tag])
		}
		return out
	}

	for _, c := range d.buckets[scope] {
		if sharesTag(m, c) {
			add([]*entity.Entity{c})
		}
	}
	return out
}

func sharesTag(a, b *entity.Entity) bool {
	for _, t := range a.Tags {
		if b.HasTag(t) {
			return true
		}
	}
	return false
}

// nearby asks the broadphase for entities within reach of m's pending rect.
// A nil result means no broadphase is available and every candidate is kept.
func (d *Detector) nearby(m *entity.Entity) map[*entity.Entity]struct{} {
	obj := d.objects[m]
	if d.space == nil || obj == nil {
		return nil
	}

	near := make(map[*entity.Entity]struct{})
	// resolv maps the far edge to cells at X+W-1, so sub-pixel overlaps need a
	// one pixel margin on every side. The lower probes also reach support contact.
	for _, dx := range [...]float64{m.DX - broadphaseMargin, m.DX + broadphaseMargin} {
		for _, dy := range [...]float64{m.DY - broadphaseMargin, math.Max(m.DY, 0) + broadphaseMargin} {
			col := obj.Check(dx, dy)
			if col == nil {
				continue
			}
			for _, o := range col.Objects {
				if e, ok := o.Data.(*entity.Entity); ok {
					near[e] = struct{}{}
				}
			}
		}
	}
	return near
}

func (d *Detector) resolveMover(m *entity.Entity, scope string) {
	near := d.nearby(m)
	var solids []*entity.Entity
	landed := false

	for _, c := range d.candidates(m, scope) {
		if c.Destroyed() {
			continue
		}
		if near != nil {
			if _, ok := near[c]; !ok {
				continue
			}
		}

		if d.interact(m, c) {
			if m.Destroyed() {
				return
			}
			continue
		}
		if !d.solidBetween(m, c) {
			continue
		}

		solids = append(solids, c)
		if resolveSolid(m, c) {
			landed = true
		}
	}

	if scope == ScopeAll || d.Policy(scope) == PolicySolid {
		m.Grounded = landed || supported(m, solids)
	}
}

// solidBetween reports whether m and c share a tag with the solid policy
func (d *Detector) solidBetween(m, c *entity.Entity) bool {
	for _, t := range m.Tags {
		if d.cfg.Policies[t] == PolicySolid && c.HasTag(t) {
			return true
		}
	}
	return false
}

// overlapsPending tests m's pending rect against c's current rect
func overlapsPending(m, c *entity.Entity) bool {
	return m.SpanX(m.PendingX()).Overlaps(c.SpanX(c.X)) &&
		m.SpanY(m.PendingY()).Overlaps(c.SpanY(c.Y))
}

// resolveSolid corrects m against one solid candidate, vertical axis first.
// Returns true when m landed on c.
func resolveSolid(m, c *entity.Entity) (landed bool) {
	if !overlapsPending(m, c) {
		return false
	}

	// A mover already level with c (overlapping it horizontally at its current X)
	// resolves vertically by which side it is on.
	alignedX := m.SpanX(m.X).Overlaps(c.SpanX(c.X))

	switch {
	case m.DY > 0 && (m.Bottom() <= c.Top()+1e-6 || (alignedX && m.Y < c.Y)):
		m.Y = c.Top() - m.Size
		m.DY = 0
		if m.Gravity != nil {
			m.Gravity.Stop()
		}
		landed = true
	case m.DY < 0 && (m.Top() >= c.Bottom()-1e-6 || (alignedX && m.Y > c.Y)):
		m.Y = c.Bottom()
		m.DY = 0
		if m.Gravity != nil {
			m.Gravity.Stop()
		}
	}

	if !overlapsPending(m, c) {
		return landed
	}

	approachFromLeft := m.DX > 0 || (m.DX == 0 && m.CenterX() <= c.CenterX())
	if approachFromLeft {
		m.X = c.Left() - m.Size
	} else {
		m.X = c.Right()
	}
	m.DX = 0
	return landed
}

// supported reports whether m rests on top of any solid with downward or no motion
func supported(m *entity.Entity, solids []*entity.Entity) bool {
	if m.DY < 0 {
		return false
	}
	bottom := m.PendingY() + m.Size
	span := m.SpanX(m.PendingX())
	for _, c := range solids {
		if entity.Touches(bottom, c.Top()) && span.Overlaps(c.SpanX(c.X)) {
			return true
		}
	}
	return false
}
