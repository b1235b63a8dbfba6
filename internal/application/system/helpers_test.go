package system

import (
	"fmt"

	"github.com/younwookim/tilerun/internal/domain/entity"
)

// recordingSurface logs draw calls as strings
type recordingSurface struct {
	calls []string
}

func (s *recordingSurface) Clear() { s.calls = append(s.calls, "clear") }

func (s *recordingSurface) DrawBackground(shift float64) {
	s.calls = append(s.calls, fmt.Sprintf("bg %.0f", shift))
}

func (s *recordingSurface) DrawTile(sheet string, col, row int, size, x, y float64) {
	s.calls = append(s.calls, fmt.Sprintf("%s %d,%d %.0f@%.0f,%.0f", sheet, col, row, size, x, y))
}

// recordingHooks captures detector effects and destroys like the world does
type recordingHooks struct {
	destroyed []*entity.Entity
	cues      []entity.Cue
	defeated  int
	exits     int
}

func (h *recordingHooks) Destroy(e *entity.Entity) { h.destroyed = append(h.destroyed, e) }
func (h *recordingHooks) Emit(cue entity.Cue)      { h.cues = append(h.cues, cue) }
func (h *recordingHooks) PlayerDefeated()          { h.defeated++ }
func (h *recordingHooks) ExitReached()             { h.exits++ }

// stubContext is a minimal entity.Context
type stubContext struct {
	destroy func(e *entity.Entity)
}

func (stubContext) Frame() uint64                                 { return 0 }
func (stubContext) Input() entity.Actions                         { return entity.Actions{} }
func (stubContext) Focus() *entity.Entity                         { return nil }
func (stubContext) Spawn(string, float64, float64) *entity.Entity { return nil }
func (stubContext) Emit(entity.Cue)                               {}

func (c stubContext) Destroy(e *entity.Entity) {
	if c.destroy != nil {
		c.destroy(e)
	}
}

func testPolicies() map[string]Policy {
	return map[string]Policy{
		"world":   PolicySolid,
		"forest":  PolicySolid,
		"enemy":   PolicyDamage,
		"pickups": PolicyPickup,
		"cave":    PolicyExit,
		"hazard":  PolicyHazard,
	}
}

func createTestDetector(hooks Hooks, damageCooldown int) *Detector {
	d := NewDetector(DetectorConfig{
		CellSize:       32,
		Policies:       testPolicies(),
		DamageCooldown: damageCooldown,
	}, hooks)
	d.Reset(640, 480)
	return d
}

func createTestPlayer(x, y float64) *entity.Entity {
	e := entity.New("player", x, y, 32, entity.LayerPlayer, "world", "pickups", "cave", "forest", "hazard")
	e.Role = entity.RolePlayer
	e.Vitals = entity.NewVitals(10, 5)
	e.AttachCollision().AttachGravity(entity.NewGravity(3, 1, -13))
	return e
}

func createTestEnemy(x, y float64) *entity.Entity {
	e := entity.New("enemy", x, y, 32, entity.LayerPlayer, "world", "enemy")
	e.Role = entity.RoleEnemy
	e.Vitals = entity.NewVitals(10, 5)
	e.AttachCollision().AttachGravity(entity.NewGravity(3, 1, -20))
	return e
}

func createTestBlock(x, y float64) *entity.Entity {
	return entity.New("stone", x, y, 32, entity.LayerWorld, "world")
}

func createTestPickup(x, y float64, heal int, jumpBoost float64) *entity.Entity {
	e := entity.New("potion", x, y, 32, entity.LayerWorld, "pickups")
	e.Role = entity.RolePickup
	e.Pickup = &entity.Pickup{Heal: heal, JumpBoost: jumpBoost}
	return e
}

func createTestStrike(x, y float64, damage int) *entity.Entity {
	e := entity.New("strike", x, y, 32, entity.LayerBackground, "enemy")
	e.Role = entity.RoleStrike
	e.Strike = &entity.Strike{Damage: damage, TTL: 10}
	e.AttachCollision()
	return e
}
