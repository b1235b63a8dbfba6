package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/tilerun/internal/domain/entity"
	"github.com/younwookim/tilerun/internal/infrastructure/config"
)

func createTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	cfg, err := config.NewLoader("../../../cmd/game/configs").LoadAll()
	require.NoError(t, err)
	c, err := NewCatalog(cfg)
	require.NoError(t, err)
	return c
}

func catalogWith(defs map[string]config.EntityDef) *config.GameConfig {
	return &config.GameConfig{
		Game:     &config.GameSettings{Display: config.DisplayConfig{TileSize: 32}},
		Entities: &config.EntitiesConfig{Symbols: defs},
	}
}

func TestCatalog_Player(t *testing.T) {
	c := createTestCatalog(t)

	p := c.FromSymbol('P', 2, 7)
	require.NotNil(t, p)

	assert.Equal(t, "player", p.Kind)
	assert.Equal(t, entity.RolePlayer, p.Role)
	assert.Equal(t, entity.LayerPlayer, p.Layer)
	assert.Equal(t, 64.0, p.X)
	assert.Equal(t, 224.0, p.Y)
	assert.Equal(t, 32.0, p.Size)
	assert.True(t, p.IsMover())
	require.NotNil(t, p.Gravity)
	require.NotNil(t, p.Animation)
	require.NotNil(t, p.Vitals)
	assert.Equal(t, 10, p.Vitals.Life)

	handlers := p.Handlers()
	require.Len(t, handlers, 3)
	assert.Same(t, p.Collision, handlers[0])
	assert.Same(t, p.Animation, handlers[1])
	assert.Same(t, p.Gravity, handlers[2])

	ctrl, ok := p.Steering.(*entity.PlayerControl)
	require.True(t, ok)
	assert.Equal(t, 3.0, ctrl.Speed)
	assert.Equal(t, 60, ctrl.AttackCooldown)
	assert.Equal(t, "strike", ctrl.StrikeKind)
}

func TestCatalog_Enemies(t *testing.T) {
	c := createTestCatalog(t)

	tests := []struct {
		symbol    rune
		size      float64
		speed     float64
		vertical  float64
		idle      int
		leftOnly  bool
		life      int
		tagsEnemy bool
	}{
		{'E', 32, 0.9, 0, 0, false, 10, true},
		{'2', 32, 1.5, 0, 0, false, 10, true},
		{'0', 32, 4, 32, 0, false, 5, true},
		{'B', 192, 1, 0, 1, true, 20, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.symbol), func(t *testing.T) {
			e := c.FromSymbol(tt.symbol, 1, 1)
			require.NotNil(t, e)
			assert.Equal(t, entity.RoleEnemy, e.Role)
			assert.Equal(t, tt.size, e.Size)
			assert.Equal(t, tt.life, e.Vitals.Life)
			assert.Equal(t, tt.tagsEnemy, e.HasTag("enemy"))

			chase, ok := e.Steering.(*entity.Chase)
			require.True(t, ok)
			assert.Equal(t, tt.speed, chase.Speed)
			assert.Equal(t, 320.0, chase.Range)
			assert.Equal(t, tt.vertical, chase.VerticalRange)
			assert.Equal(t, tt.idle, chase.IdleDirection)
			assert.Equal(t, tt.leftOnly, chase.LeftOnly)
		})
	}
}

func TestCatalog_StaticTiles(t *testing.T) {
	c := createTestCatalog(t)

	wall := c.FromSymbol('w', 0, 0)
	require.NotNil(t, wall)
	assert.False(t, wall.IsMover())
	assert.Empty(t, wall.Handlers())
	assert.Equal(t, []string{"world"}, wall.Tags)

	church := c.FromSymbol('c', 3, 0)
	require.NotNil(t, church)
	assert.Equal(t, entity.LayerBackground, church.Layer)
	assert.Equal(t, 384.0, church.Size)
	assert.Empty(t, church.Tags)

	potion := c.FromSymbol('1', 0, 0)
	require.NotNil(t, potion)
	require.NotNil(t, potion.Pickup)
	assert.Equal(t, 5, potion.Pickup.Heal)

	jump := c.FromSymbol('a', 0, 0)
	require.NotNil(t, jump)
	assert.Equal(t, 3.0, jump.Pickup.JumpBoost)

	assert.True(t, c.FromSymbol('D', 0, 0).HasTag("hazard"))
	assert.True(t, c.FromSymbol('h', 0, 0).HasTag("cave"))
}

func TestCatalog_EachBuildIsIndependent(t *testing.T) {
	c := createTestCatalog(t)

	a := c.FromSymbol('P', 0, 0)
	b := c.FromSymbol('P', 0, 0)
	a.Tags[0] = "changed"
	a.Gravity.JumpForce = -99

	assert.Equal(t, "world", b.Tags[0])
	assert.Equal(t, -13.0, b.Gravity.JumpForce)
	assert.NotSame(t, a.Steering, b.Steering)
}

func TestCatalog_UnknownSymbolAndKind(t *testing.T) {
	c := createTestCatalog(t)

	assert.False(t, c.Knows('.'))
	assert.Nil(t, c.FromSymbol('.', 0, 0))
	assert.Nil(t, c.FromKind("dragon", 0, 0))
	assert.True(t, c.Knows('w'))
}

func TestCatalog_RuntimeStrike(t *testing.T) {
	c := createTestCatalog(t)

	s := c.FromKind("strike", 100, 50)
	require.NotNil(t, s)
	assert.Equal(t, entity.RoleStrike, s.Role)
	assert.Equal(t, entity.LayerBackground, s.Layer)
	assert.True(t, s.HasTag("enemy"))
	require.NotNil(t, s.Strike)
	assert.Equal(t, 12, s.Strike.TTL)
	assert.Equal(t, 100.0, s.X)

	// symbol blueprints are addressable by name too
	stone := c.FromKind("stone", 64, 0)
	require.NotNil(t, stone)
	assert.Equal(t, 64.0, stone.X)
}

func TestCatalog_InvalidDefinitions(t *testing.T) {
	tests := []struct {
		name    string
		def     config.EntityDef
		wantErr error
	}{
		{"bad layer", config.EntityDef{Name: "x", Layer: "sky"}, entity.ErrUnknownLayer},
		{"bad role", config.EntityDef{Name: "x", Layer: "world", Role: "wizard"}, entity.ErrUnknownRole},
		{"bad handler", config.EntityDef{Name: "x", Layer: "world", Handlers: []string{"teleport"}}, ErrUnknownHandler},
		{"gravity without settings", config.EntityDef{Name: "x", Layer: "world", Handlers: []string{"gravity"}}, ErrMissingSettings},
		{"animation without settings", config.EntityDef{Name: "x", Layer: "world", Handlers: []string{"animation"}}, ErrMissingSettings},
		{
			"bad steering",
			config.EntityDef{Name: "x", Layer: "player", Steering: &config.SteeringDef{Type: "fly"}},
			ErrUnknownSteering,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(catalogWith(map[string]config.EntityDef{"x": tt.def}))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
