package system

import (
	"errors"
	"fmt"

	"github.com/younwookim/tilerun/internal/domain/entity"
	"github.com/younwookim/tilerun/internal/infrastructure/config"
)

var (
	// ErrUnknownHandler is returned for a handler name other than collision, animation or gravity
	ErrUnknownHandler = errors.New("unknown handler")
	// ErrUnknownSteering is returned for a steering type other than player or chase
	ErrUnknownSteering = errors.New("unknown steering")
	// ErrMissingSettings is returned when a handler is listed without its settings block
	ErrMissingSettings = errors.New("missing handler settings")
)

// blueprint is a validated entity definition
type blueprint struct {
	def   config.EntityDef
	layer entity.Layer
	role  entity.Role
	size  float64
}

// Catalog builds entities from the declarative symbol table
type Catalog struct {
	tileSize       float64
	attackCooldown int
	strikeFrames   int

	symbols map[rune]blueprint
	kinds   map[string]blueprint
}

// NewCatalog validates every blueprint in cfg
func NewCatalog(cfg *config.GameConfig) (*Catalog, error) {
	c := &Catalog{
		tileSize:       float64(cfg.Game.Display.TileSize),
		attackCooldown: cfg.Game.Combat.AttackCooldownFrames,
		strikeFrames:   cfg.Game.Combat.StrikeFrames,
		symbols:        make(map[rune]blueprint, len(cfg.Entities.Symbols)),
		kinds:          make(map[string]blueprint),
	}

	for sym, def := range cfg.Entities.Symbols {
		bp, err := c.compile(def)
		if err != nil {
			return nil, fmt.Errorf("symbol %q: %w", sym, err)
		}
		r := []rune(sym)
		if len(r) != 1 {
			return nil, fmt.Errorf("%w: %q", config.ErrBadSymbol, sym)
		}
		c.symbols[r[0]] = bp
		c.kinds[def.Name] = bp
	}

	for kind, def := range cfg.Entities.Runtime {
		if def.Name == "" {
			def.Name = kind
		}
		bp, err := c.compile(def)
		if err != nil {
			return nil, fmt.Errorf("runtime kind %q: %w", kind, err)
		}
		c.kinds[kind] = bp
	}

	return c, nil
}

func (c *Catalog) compile(def config.EntityDef) (blueprint, error) {
	layer, err := entity.ParseLayer(def.Layer)
	if err != nil {
		return blueprint{}, err
	}
	role, err := entity.ParseRole(def.Role)
	if err != nil {
		return blueprint{}, err
	}

	for _, h := range def.Handlers {
		switch h {
		case "collision":
		case "animation":
			if def.Animation == nil {
				return blueprint{}, fmt.Errorf("%w: animation", ErrMissingSettings)
			}
		case "gravity":
			if def.Gravity == nil {
				return blueprint{}, fmt.Errorf("%w: gravity", ErrMissingSettings)
			}
		default:
			return blueprint{}, fmt.Errorf("%w: %q", ErrUnknownHandler, h)
		}
	}

	if def.Steering != nil {
		switch def.Steering.Type {
		case "player", "chase":
		default:
			return blueprint{}, fmt.Errorf("%w: %q", ErrUnknownSteering, def.Steering.Type)
		}
	}

	size := c.tileSize
	if def.TileSize > 0 {
		size = float64(def.TileSize)
	}

	return blueprint{def: def, layer: layer, role: role, size: size}, nil
}

// TileSize returns the base grid cell size in pixels
func (c *Catalog) TileSize() float64 {
	return c.tileSize
}

// Knows reports whether symbol maps to an entity
func (c *Catalog) Knows(symbol rune) bool {
	_, ok := c.symbols[symbol]
	return ok
}

// FromSymbol builds the entity for a map symbol at tile coordinates.
// Unknown symbols return nil.
func (c *Catalog) FromSymbol(symbol rune, tx, ty int) *entity.Entity {
	bp, ok := c.symbols[symbol]
	if !ok {
		return nil
	}
	return c.build(bp, float64(tx)*c.tileSize, float64(ty)*c.tileSize)
}

// FromKind builds an entity by kind name at pixel coordinates.
// Unknown kinds return nil.
func (c *Catalog) FromKind(kind string, x, y float64) *entity.Entity {
	bp, ok := c.kinds[kind]
	if !ok {
		return nil
	}
	return c.build(bp, x, y)
}

func (c *Catalog) build(bp blueprint, x, y float64) *entity.Entity {
	def := bp.def
	e := entity.New(def.Name, x, y, bp.size, bp.layer, def.Tags...)
	e.Role = bp.role
	e.Sheet = def.Sheet
	e.Row = def.Row
	e.Col = def.Col

	for _, h := range def.Handlers {
		switch h {
		case "collision":
			e.AttachCollision()
		case "animation":
			e.AttachAnimation(entity.NewAnimation(def.Animation.FramesPerAnimation, def.Animation.NumberOfFrames))
		case "gravity":
			e.AttachGravity(entity.NewGravity(def.Gravity.MaxGravity, def.Gravity.GravityForce, def.Gravity.JumpForce))
		}
	}

	if def.Steering != nil {
		e.Steering = c.steering(def.Steering)
	}
	if def.Vitals != nil {
		e.Vitals = entity.NewVitals(def.Vitals.Life, def.Vitals.Damage)
	}
	if def.Pickup != nil {
		e.Pickup = &entity.Pickup{Heal: def.Pickup.Heal, JumpBoost: def.Pickup.JumpBoost}
	}
	if def.Strike != nil {
		ttl := def.Strike.Frames
		if ttl <= 0 {
			ttl = c.strikeFrames
		}
		e.Strike = &entity.Strike{TTL: ttl}
	}

	return e
}

func (c *Catalog) steering(s *config.SteeringDef) entity.Steering {
	if s.Type == "player" {
		return &entity.PlayerControl{
			Speed:          s.Speed,
			AttackCooldown: c.attackCooldown,
			StrikeKind:     s.Strike,
			RowRight:       s.RowRight,
			RowLeft:        s.RowLeft,
		}
	}
	return &entity.Chase{
		Speed:         s.Speed,
		Range:         s.ActivationTiles * c.tileSize,
		VerticalRange: s.VerticalTiles * c.tileSize,
		IdleDirection: s.IdleDirection,
		LeftOnly:      s.LeftOnly,
		RowRight:      s.RowRight,
		RowLeft:       s.RowLeft,
	}
}
