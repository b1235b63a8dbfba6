package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPlayer() *Entity {
	e := New("player", 100, 100, 32, LayerPlayer, "world", "pickups", "cave", "forest")
	e.Role = RolePlayer
	e.Vitals = NewVitals(10, 5)
	e.Steering = &PlayerControl{Speed: 3, AttackCooldown: 60, StrikeKind: "strike", RowRight: 0, RowLeft: 8}
	e.AttachCollision().AttachGravity(NewGravity(3, 1, -13))
	return e
}

func withStrikeKind(ctx *fakeContext) *fakeContext {
	ctx.kinds["strike"] = func(x, y float64) *Entity {
		s := New("strike", x, y, 32, LayerBackground, "enemy")
		s.Role = RoleStrike
		s.Strike = &Strike{TTL: 10}
		return s
	}
	return ctx
}

func TestPlayerControl_Move(t *testing.T) {
	tests := []struct {
		name       string
		input      Actions
		wantDX     float64
		wantFacing int
		wantRow    int
	}{
		{"idle", Actions{}, 0, 1, 0},
		{"right", Actions{MoveRight: true}, 3, 1, 0},
		{"left", Actions{MoveLeft: true}, -3, -1, 8},
		{"both cancel", Actions{MoveLeft: true, MoveRight: true}, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := createTestPlayer()
			ctx := newFakeContext()
			ctx.input = tt.input

			e.Steering.Steer(e, ctx)

			assert.Equal(t, tt.wantDX, e.DX)
			assert.Equal(t, tt.wantFacing, e.Facing)
			assert.Equal(t, tt.wantRow, e.Row)
		})
	}
}

func TestPlayerControl_JumpOnlyWhenGrounded(t *testing.T) {
	e := createTestPlayer()
	ctx := newFakeContext()
	ctx.input = Actions{Jump: true}

	e.Steering.Steer(e, ctx)
	assert.Zero(t, e.Gravity.Velocity(), "airborne jump is ignored")

	e.Grounded = true
	e.Steering.Steer(e, ctx)
	assert.Equal(t, -13.0, e.Gravity.Velocity())
}

func TestPlayerControl_AttackSpawnsStrikeAhead(t *testing.T) {
	tests := []struct {
		name   string
		facing Actions
		wantX  float64
	}{
		{"facing right", Actions{MoveRight: true, Attack: true}, 132},
		{"facing left", Actions{MoveLeft: true, Attack: true}, 68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := createTestPlayer()
			ctx := withStrikeKind(newFakeContext())
			ctx.input = tt.facing

			e.Steering.Steer(e, ctx)

			require.Len(t, ctx.spawned, 1)
			strike := ctx.spawned[0]
			assert.Equal(t, tt.wantX, strike.X)
			assert.Equal(t, 100.0, strike.Y)
			assert.Equal(t, 5, strike.Strike.Damage)
			assert.Equal(t, []Cue{CueAttack}, ctx.cues)
		})
	}
}

func TestPlayerControl_AttackCooldown(t *testing.T) {
	e := createTestPlayer()
	ctx := withStrikeKind(newFakeContext())
	ctx.input = Actions{Attack: true}

	ctx.frame = 1
	e.Steering.Steer(e, ctx)
	ctx.frame = 30
	e.Steering.Steer(e, ctx)
	assert.Len(t, ctx.spawned, 1, "second attack inside cooldown is dropped")

	ctx.frame = 61
	e.Steering.Steer(e, ctx)
	assert.Len(t, ctx.spawned, 1, "exactly one cooldown later is still too early")

	ctx.frame = 62
	e.Steering.Steer(e, ctx)
	assert.Len(t, ctx.spawned, 2)
}

func TestPlayerControl_UnknownStrikeKindStillCues(t *testing.T) {
	e := createTestPlayer()
	ctx := newFakeContext()
	ctx.input = Actions{Attack: true}

	e.Steering.Steer(e, ctx)

	assert.Empty(t, ctx.spawned)
	assert.Equal(t, []Cue{CueAttack}, ctx.cues)
}

func createTestChaser(c *Chase) *Entity {
	e := New("enemy", 500, 100, 32, LayerPlayer, "world", "enemy")
	e.Role = RoleEnemy
	e.Steering = c
	return e
}

func TestChase_Steer(t *testing.T) {
	tests := []struct {
		name       string
		chase      Chase
		focusX     float64
		focusY     float64
		noFocus    bool
		wantDX     float64
		wantFacing int
	}{
		{"chases left", Chase{Speed: 0.9, Range: 320}, 400, 100, false, -0.9, -1},
		{"chases right", Chase{Speed: 0.9, Range: 320}, 600, 100, false, 0.9, 1},
		{"exactly at range", Chase{Speed: 1.5, Range: 320}, 180, 100, false, -1.5, -1},
		{"out of range", Chase{Speed: 0.9, Range: 320}, 100, 100, false, 0, 1},
		{"same column", Chase{Speed: 0.9, Range: 320}, 500, 100, false, 0, 1},
		{"vertical gate", Chase{Speed: 4, Range: 320, VerticalRange: 32}, 450, 200, false, 0, 1},
		{"vertical gate passes", Chase{Speed: 4, Range: 320, VerticalRange: 32}, 450, 120, false, -4, -1},
		{"idle direction", Chase{Speed: 1, Range: 320, IdleDirection: 1}, 0, 100, false, 1, 1},
		{"no focus", Chase{Speed: 1, Range: 320}, 0, 0, true, 0, 1},
		{"no focus idles", Chase{Speed: 1, Range: 320, IdleDirection: -1}, 0, 0, true, -1, -1},
		{"left only chases left", Chase{Speed: 1, Range: 320, IdleDirection: 1, LeftOnly: true}, 400, 100, false, -1, -1},
		{"left only ignores focus on the right", Chase{Speed: 1, Range: 320, IdleDirection: 1, LeftOnly: true}, 600, 100, false, 0, 1},
		{"left only out of range on the left", Chase{Speed: 1, Range: 320, IdleDirection: 1, LeftOnly: true}, 100, 100, false, 0, -1},
		{"left only out of range on the right", Chase{Speed: 1, Range: 320, IdleDirection: 1, LeftOnly: true}, 900, 100, false, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.chase
			e := createTestChaser(&c)
			ctx := newFakeContext()
			if !tt.noFocus {
				ctx.focus = New("player", tt.focusX, tt.focusY, 32, LayerPlayer)
			}

			e.Update(ctx)

			assert.InDelta(t, tt.wantDX, e.DX, 1e-9)
			assert.Equal(t, tt.wantFacing, e.Facing)
		})
	}
}

func TestChase_IgnoresDestroyedFocus(t *testing.T) {
	e := createTestChaser(&Chase{Speed: 1, Range: 320})
	ctx := newFakeContext()
	ctx.focus = New("player", 480, 100, 32, LayerPlayer)
	ctx.focus.MarkDestroyed()

	e.Update(ctx)
	assert.Zero(t, e.DX)
}
