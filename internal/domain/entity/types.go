package entity

import (
	"errors"
	"fmt"
)

// EntityID is a unique identifier for an entity
type EntityID uint32

// ErrUnknownLayer is returned when a layer name cannot be parsed
var ErrUnknownLayer = errors.New("unknown layer")

// ErrUnknownRole is returned when a role name cannot be parsed
var ErrUnknownRole = errors.New("unknown role")

// Layer is the draw/update partition an entity lives in
type Layer int

const (
	LayerBackground Layer = iota
	LayerWorld
	LayerPlayer
)

// Layers lists every layer in back-to-front order
var Layers = [...]Layer{LayerBackground, LayerWorld, LayerPlayer}

// String returns the string representation of the layer
func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerWorld:
		return "world"
	case LayerPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// ParseLayer converts a layer name into a Layer
func ParseLayer(s string) (Layer, error) {
	for _, l := range Layers {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, s)
}

// Role decides how an entity takes part in tag interactions
type Role int

const (
	RoleScenery Role = iota
	RolePlayer
	RoleEnemy
	RolePickup
	RoleStrike
)

var roleNames = map[Role]string{
	RoleScenery: "scenery",
	RolePlayer:  "player",
	RoleEnemy:   "enemy",
	RolePickup:  "pickup",
	RoleStrike:  "strike",
}

// String returns the string representation of the role
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseRole converts a role name into a Role. An empty name is scenery.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleScenery, nil
	}
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Cue is a symbolic audio/UI event. Cues carry no payload.
type Cue string

const (
	CueLevelTransition Cue = "level_transition"
	CueDamage          Cue = "damage"
	CuePickup          Cue = "pickup"
	CueAttack          Cue = "attack"
)

// Actions is the logical input snapshot for one frame
type Actions struct {
	MoveLeft  bool
	MoveRight bool
	Jump      bool
	Attack    bool
}

// Context is the per-frame view of the world handed to entity updates.
type Context interface {
	// Frame returns the current frame number.
	Frame() uint64
	// Input returns the input snapshot for this frame.
	Input() Actions
	// Focus returns the focus entity (the player), or nil while a map is loading.
	Focus() *Entity
	// Spawn creates a runtime entity of the given kind at pixel coordinates.
	// Returns nil if the kind is unknown.
	Spawn(kind string, x, y float64) *Entity
	// Emit fires a cue without waiting for it.
	Emit(cue Cue)
	// Destroy removes an entity from the world. Safe to call twice.
	Destroy(e *Entity)
}
