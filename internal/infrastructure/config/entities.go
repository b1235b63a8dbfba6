package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrBadSymbol is returned for a symbol key that is not exactly one character
var ErrBadSymbol = errors.New("symbol must be a single character")

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Sheets  map[string]string    `json:"sheets"`  // sheet -> hex colour for the placeholder renderer
	Symbols map[string]EntityDef `json:"symbols"` // map symbol -> blueprint
	Runtime map[string]EntityDef `json:"runtime"` // kinds spawned during play
}

// EntityDef is a declarative entity blueprint
type EntityDef struct {
	Name     string   `json:"name"`
	Sheet    string   `json:"sheet"`
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	TileSize int      `json:"tileSize,omitempty"` // 0 uses display.tileSize
	Layer    string   `json:"layer"`
	Role     string   `json:"role,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Handlers []string `json:"handlers,omitempty"` // attachment order: collision, animation, gravity

	Gravity   *GravityDef   `json:"gravity,omitempty"`
	Animation *AnimationDef `json:"animation,omitempty"`
	Steering  *SteeringDef  `json:"steering,omitempty"`
	Vitals    *VitalsDef    `json:"vitals,omitempty"`
	Pickup    *PickupDef    `json:"pickup,omitempty"`
	Strike    *StrikeDef    `json:"strike,omitempty"`
}

type GravityDef struct {
	MaxGravity   float64 `json:"maxGravity"`
	GravityForce float64 `json:"gravityForce"`
	JumpForce    float64 `json:"jumpForce"`
}

type AnimationDef struct {
	FramesPerAnimation int `json:"framesPerAnimation"`
	NumberOfFrames     int `json:"numberOfFrames"`
}

// SteeringDef selects a steering strategy: "player" or "chase"
type SteeringDef struct {
	Type            string  `json:"type"`
	Speed           float64 `json:"speed"`
	ActivationTiles float64 `json:"activationTiles,omitempty"`
	VerticalTiles   float64 `json:"verticalTiles,omitempty"`
	IdleDirection   int     `json:"idleDirection,omitempty"`
	LeftOnly        bool    `json:"leftOnly,omitempty"`
	RowRight        int     `json:"rowRight"`
	RowLeft         int     `json:"rowLeft"`
	Strike          string  `json:"strike,omitempty"`
}

type VitalsDef struct {
	Life   int `json:"life"`
	Damage int `json:"damage"`
}

type PickupDef struct {
	Heal      int     `json:"heal"`
	JumpBoost float64 `json:"jumpBoost"`
}

type StrikeDef struct {
	Frames int `json:"frames"` // 0 uses combat.strikeFrames
}

// Validate checks symbol keys
func (c *EntitiesConfig) Validate() error {
	for sym := range c.Symbols {
		if utf8.RuneCountInString(sym) != 1 {
			return fmt.Errorf("%w: %q", ErrBadSymbol, sym)
		}
	}
	return nil
}
