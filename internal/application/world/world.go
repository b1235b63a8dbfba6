// Package world owns one running map: its entities, collision buckets, camera and frame counter.
//
// World is the entity.Context handed to every entity update and the
// system.Hooks receiver for collision effects. Map changes requested during
// a frame (exit reached, player defeated) are applied after the frame ends.
package world

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/younwookim/tilerun/internal/application/system"
	"github.com/younwookim/tilerun/internal/domain/entity"
	"github.com/younwookim/tilerun/internal/infrastructure/config"
	"github.com/younwookim/tilerun/internal/infrastructure/logger"
)

// MapReader returns the raw grid for a map file path from game.json
type MapReader func(file string) ([]byte, error)

// World runs the frame loop for the current map
type World struct {
	settings *config.GameSettings
	catalog  *system.Catalog
	read     MapReader

	registry *system.Registry
	detector *system.Detector
	camera   *system.Camera

	current config.MapConfig
	pending <-chan system.MapResult
	mapW    float64
	mapH    float64

	player *entity.Entity
	nextID entity.EntityID
	frame  uint64
	input  entity.Actions

	lockFrames int
	paused     bool
	request    string
	defeated   bool
	deaths     int

	// OnCue receives every cue emitted during a frame
	OnCue func(cue entity.Cue)
	// OnMapLoaded is called once a map has been populated
	OnMapLoaded func(id string)
}

// New creates a world. No map is loaded until LoadMap.
func New(cfg *config.GameConfig, catalog *system.Catalog, read MapReader) (*World, error) {
	policies, err := system.ParsePolicies(cfg.Game.Collision.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to parse collision tags: %w", err)
	}

	w := &World{
		settings: cfg.Game,
		catalog:  catalog,
		read:     read,
		registry: system.NewRegistry(),
		camera: system.NewCamera(
			float64(cfg.Game.Display.ScreenWidth()),
			float64(cfg.Game.Display.ScreenHeight()),
		),
	}
	w.detector = system.NewDetector(system.DetectorConfig{
		CellSize:       cfg.Game.Collision.CellSize,
		Policies:       policies,
		DamageCooldown: cfg.Game.Combat.DamageCooldownFrames,
	}, w)
	return w, nil
}

// LoadMap tears the current map down and starts reading id in the background.
// The new map is populated by a later Poll or Tick.
func (w *World) LoadMap(id string) error {
	mc, err := w.settings.Maps.Find(id)
	if err != nil {
		return err
	}

	w.registry.Clear()
	w.detector.Reset(0, 0)
	w.camera.Reset()
	w.player = nil
	w.request = ""
	w.lockFrames = 0
	w.mapW, w.mapH = 0, 0
	w.current = mc

	logger.Log.WithFields(logrus.Fields{
		"map":  mc.ID,
		"file": mc.File,
	}).Info("loading map")

	read := w.read
	w.pending = system.LoadMapAsync(mc.ID, func() ([]byte, error) {
		return read(mc.File)
	})
	w.Emit(entity.CueLevelTransition)
	return nil
}

// Restart reloads the starting map
func (w *World) Restart() error {
	return w.LoadMap(w.settings.Maps.Start)
}

// Poll populates a finished map load without blocking
func (w *World) Poll() {
	if w.pending == nil {
		return
	}
	select {
	case r := <-w.pending:
		w.pending = nil
		w.populate(r)
	default:
	}
}

// WaitLoaded blocks until the pending map, if any, has been populated
func (w *World) WaitLoaded(ctx context.Context) error {
	if w.pending == nil {
		return nil
	}
	select {
	case r := <-w.pending:
		w.pending = nil
		w.populate(r)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to load map %s: %w", w.current.ID, ctx.Err())
	}
}

func (w *World) populate(r system.MapResult) {
	if r.ID != w.current.ID {
		return
	}
	if r.Err != nil {
		logger.Log.WithError(r.Err).WithField("map", r.ID).Warn("map unavailable, world left empty")
		w.detector.Reset(0, 0)
		w.finishLoad()
		return
	}

	tile := w.catalog.TileSize()
	w.mapW = float64(r.Grid.Width()) * tile
	w.mapH = float64(r.Grid.Height()) * tile
	w.detector.Reset(w.mapW, w.mapH)
	w.camera.SetBounds(w.mapW, w.mapH)

	skipped := 0
	r.Grid.Each(func(symbol rune, x, y int) {
		e := w.catalog.FromSymbol(symbol, x, y)
		if e == nil {
			if symbol != '.' && symbol != ' ' {
				skipped++
			}
			return
		}
		w.add(e)
		if e.Role == entity.RolePlayer && w.player == nil {
			w.player = e
		}
	})

	w.camera.CenterOn(w.player)
	w.lockFrames = w.current.CutsceneFrames

	logger.Log.WithFields(logrus.Fields{
		"map":      r.ID,
		"entities": w.registry.Len(),
		"skipped":  skipped,
		"player":   w.player != nil,
	}).Info("map loaded")

	w.finishLoad()
}

func (w *World) finishLoad() {
	if w.OnMapLoaded != nil {
		w.OnMapLoaded(w.current.ID)
	}
}

func (w *World) add(e *entity.Entity) {
	w.nextID++
	e.ID = w.nextID
	if !w.registry.Register(e) {
		logger.Log.WithField("kind", e.Kind).Warn("entity has no valid layer")
		return
	}
	w.detector.Register(e)
}

// Ready reports whether the next Tick will advance the simulation
func (w *World) Ready() bool {
	return w.pending == nil && !w.paused
}

// Tick runs one frame with the given input. Returns false when the frame was
// skipped because a map is still loading or the world is paused.
func (w *World) Tick(in entity.Actions) bool {
	w.Poll()
	if !w.Ready() {
		return false
	}

	w.frame++
	w.defeated = false
	w.input = in
	if w.lockFrames > 0 {
		w.lockFrames--
		w.input = entity.Actions{}
	}

	w.registry.UpdateAll(w)
	w.detector.Resolve(system.ScopeAll)

	var moved float64
	if w.player != nil {
		moved = w.player.DX
	}
	w.registry.Commit()

	w.camera.Follow()
	w.camera.ShiftBackground(-moved * w.settings.Camera.Parallax)

	if w.player != nil && w.mapH > 0 && w.player.Top() > w.mapH {
		w.PlayerDefeated()
	}

	w.applyRequest()
	return true
}

func (w *World) applyRequest() {
	if w.request == "" {
		return
	}
	id := w.request
	w.request = ""
	if err := w.LoadMap(id); err != nil {
		logger.Log.WithError(err).WithField("map", id).Error("map change failed")
	}
}

// Draw renders the visible part of the map
func (w *World) Draw(s system.Surface) {
	w.camera.ClearScreen(s)
	w.registry.DrawAll(w.camera.View(s))
}

// Pause freezes the simulation; every entity keeps its state
func (w *World) Pause() {
	w.paused = true
}

// Resume continues after Pause
func (w *World) Resume() {
	w.paused = false
}

// Paused reports whether the world is paused
func (w *World) Paused() bool {
	return w.paused
}

// Loading reports whether a map read is still in flight
func (w *World) Loading() bool {
	return w.pending != nil
}

// Locked reports whether player input is currently masked by a cutscene
func (w *World) Locked() bool {
	return w.lockFrames > 0
}

// Frame implements entity.Context
func (w *World) Frame() uint64 {
	return w.frame
}

// Input implements entity.Context
func (w *World) Input() entity.Actions {
	return w.input
}

// Focus implements entity.Context. It is nil when the map has no player.
func (w *World) Focus() *entity.Entity {
	return w.player
}

// Spawn implements entity.Context. The new entity is updated from the next frame on.
func (w *World) Spawn(kind string, x, y float64) *entity.Entity {
	e := w.catalog.FromKind(kind, x, y)
	if e == nil {
		logger.Log.WithField("kind", kind).Debug("spawn of unknown kind ignored")
		return nil
	}
	w.add(e)
	return e
}

// Emit implements entity.Context and system.Hooks
func (w *World) Emit(cue entity.Cue) {
	if w.OnCue != nil {
		w.OnCue(cue)
	}
}

// Destroy implements entity.Context and system.Hooks.
// The entity leaves its layer and every tag bucket before this call returns.
func (w *World) Destroy(e *entity.Entity) {
	if e == nil {
		return
	}
	e.MarkDestroyed()
	w.registry.Unregister(e)
	w.detector.Unregister(e)
	if e == w.player {
		w.player = nil
	}
}

// PlayerDefeated implements system.Hooks: the run restarts at the starting map.
// Only the first defeat in a frame counts, and it overrides a pending exit.
func (w *World) PlayerDefeated() {
	if w.defeated {
		return
	}
	w.defeated = true
	w.deaths++
	w.request = w.settings.Maps.Start
	logger.Log.WithFields(logrus.Fields{
		"map":    w.current.ID,
		"frame":  w.frame,
		"deaths": w.deaths,
	}).Info("player defeated")
}

// ExitReached implements system.Hooks: the next map is loaded after this frame
func (w *World) ExitReached() {
	if w.defeated || w.current.Next == "" {
		return
	}
	w.request = w.current.Next
	logger.Log.WithFields(logrus.Fields{
		"from": w.current.ID,
		"to":   w.current.Next,
	}).Info("exit reached")
}

// Player returns the focus entity, or nil
func (w *World) Player() *entity.Entity {
	return w.player
}

// Map returns the current map's settings
func (w *World) Map() config.MapConfig {
	return w.current
}

// MapID returns the current map id
func (w *World) MapID() string {
	return w.current.ID
}

// Size returns the map size in pixels
func (w *World) Size() (width, height float64) {
	return w.mapW, w.mapH
}

// Deaths returns how many times the player has been defeated
func (w *World) Deaths() int {
	return w.deaths
}

// Registry exposes the entity registry
func (w *World) Registry() *system.Registry {
	return w.registry
}

// Detector exposes the collision detector
func (w *World) Detector() *system.Detector {
	return w.detector
}

// Camera exposes the camera
func (w *World) Camera() *system.Camera {
	return w.camera
}
