// Package playing provides the in-game scene: one World driven by keyboard
// input or a recorded replay, drawn with placeholder tiles.
package playing

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/younwookim/tilerun/internal/application/replay"
	"github.com/younwookim/tilerun/internal/application/scene"
	"github.com/younwookim/tilerun/internal/application/state"
	"github.com/younwookim/tilerun/internal/application/world"
	"github.com/younwookim/tilerun/internal/domain/entity"
	"github.com/younwookim/tilerun/internal/infrastructure/config"
	"github.com/younwookim/tilerun/internal/infrastructure/logger"
	"github.com/younwookim/tilerun/internal/infrastructure/save"
)

// fadeSeconds is the length of the fade-in after a map change
const fadeSeconds = 0.5

// InputSource provides the frame's actions and the scene's edge-triggered keys.
// *system.KeyboardSource satisfies it.
type InputSource interface {
	Actions() entity.Actions
	PausePressed() bool
	RestartPressed() bool
	SavePressed() bool
}

// CuePlayer reacts to gameplay cues. *audio.Player satisfies it.
type CuePlayer interface {
	Play(cue entity.Cue)
}

// Options configures optional parts of the scene. The zero value plays
// the start map without sound, progress or recording.
type Options struct {
	StartMap   string             // defaults to the configured start map
	Audio      CuePlayer          // nil is silent
	Progress   *save.Store        // nil disables progress saving
	Replay     *replay.ReplayData // replaces keyboard actions when set
	Record     bool               // record actions for later replay
	RecordPath string             // empty generates a timestamped name
}

// Playing is the main gameplay scene
type Playing struct {
	cfg   *config.GameConfig
	world *world.World
	input InputSource
	opts  Options

	palette    map[string]color.RGBA
	background color.RGBA

	recorder *replay.Recorder
	replayer *replay.Replayer

	fade      *gween.Tween
	fadeAlpha float32
}

// New creates the scene for w. The first map is loaded in OnEnter.
func New(cfg *config.GameConfig, w *world.World, input InputSource, opts Options) *Playing {
	if input == nil {
		input = noInput{}
	}
	if opts.StartMap == "" {
		opts.StartMap = cfg.Game.Maps.Start
	}

	p := &Playing{
		cfg:        cfg,
		world:      w,
		input:      input,
		opts:       opts,
		palette:    parsePalette(cfg.Entities.Sheets),
		background: colorBackground,
	}
	if opts.Replay != nil {
		p.replayer = replay.NewReplayer(*opts.Replay)
	}

	w.OnCue = p.onCue
	w.OnMapLoaded = p.onMapLoaded
	return p
}

// OnEnter loads the first map and starts recording if enabled
func (p *Playing) OnEnter() {
	id := p.opts.StartMap
	if p.replayer != nil {
		id = p.replayer.Map()
	}
	if p.opts.Record && p.replayer == nil {
		p.recorder = replay.NewRecorder(id)
		logger.Log.WithField("map", id).Info("recording enabled")
	}
	if err := p.world.LoadMap(id); err != nil {
		logger.Log.WithError(err).WithField("map", id).Error("failed to load first map")
	}
}

// OnExit saves the recording and the session's defeats
func (p *Playing) OnExit() {
	if p.recorder != nil && p.recorder.IsRecording() {
		p.saveRecording()
		p.recorder.Stop()
	}
	if p.opts.Progress != nil {
		if err := p.opts.Progress.RecordDeaths(p.world.Deaths()); err != nil {
			logger.Log.WithError(err).Warn("failed to save deaths")
		}
	}
}

// Update handles scene keys and advances the world by at most one frame.
// It returns ebiten.Termination once a replay has run out of frames.
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.updateFade(dt)

	if p.input.PausePressed() {
		p.togglePause()
	}
	if p.input.RestartPressed() && p.replayer == nil {
		p.restart()
	}
	if p.input.SavePressed() && p.recorder != nil {
		p.saveRecording()
	}

	p.world.Poll()
	if !p.world.Ready() {
		return nil, nil
	}

	var a entity.Actions
	if p.replayer != nil {
		next, ok := p.replayer.Next()
		if !ok {
			logger.Log.WithFields(logrus.Fields{
				"frames": p.replayer.TotalFrames(),
				"map":    p.world.MapID(),
			}).Info("replay finished")
			return nil, ebiten.Termination
		}
		a = next
	} else {
		a = p.input.Actions()
	}

	if p.world.Tick(a) && p.recorder != nil {
		p.recorder.Record(a)
	}
	return nil, nil
}

func (p *Playing) togglePause() {
	if p.world.Paused() {
		p.world.Resume()
	} else {
		p.world.Pause()
	}
	logger.Log.WithField("paused", p.world.Paused()).Debug("pause toggled")
}

// restart reloads the start map. A running recording starts over so that it
// never contains frames from before the restart.
func (p *Playing) restart() {
	start := p.cfg.Game.Maps.Start
	if p.recorder != nil {
		p.recorder = replay.NewRecorder(start)
	}
	p.world.Resume()
	if err := p.world.Restart(); err != nil {
		logger.Log.WithError(err).Error("restart failed")
		return
	}
	logger.Log.WithField("map", start).Info("restarted")
}

func (p *Playing) saveRecording() {
	filename := p.opts.RecordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}
	if err := p.recorder.Save(filename); err != nil {
		logger.Log.WithError(err).Warn("failed to save recording")
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"file":   filename,
		"frames": p.recorder.FrameCount(),
	}).Info("recording saved")
}

func (p *Playing) onCue(cue entity.Cue) {
	if p.opts.Audio != nil {
		p.opts.Audio.Play(cue)
	}
	if cue == entity.CueLevelTransition {
		p.fade = gween.New(1, 0, fadeSeconds, ease.Linear)
		p.fadeAlpha = 1
	}
}

func (p *Playing) onMapLoaded(id string) {
	bg, err := parseHex(p.world.Map().Background)
	if err != nil {
		bg = colorBackground
	}
	p.background = bg

	if p.opts.Progress == nil {
		return
	}
	if err := p.opts.Progress.Reached(id, p.cfg.Game.Maps); err != nil {
		logger.Log.WithError(err).WithField("map", id).Warn("failed to save progress")
	}
}

func (p *Playing) updateFade(dt float64) {
	if p.fade == nil {
		return
	}
	alpha, done := p.fade.Update(float32(dt))
	p.fadeAlpha = alpha
	if done {
		p.fade = nil
		p.fadeAlpha = 0
	}
}

// State returns the coarse session state
func (p *Playing) State() state.GameState {
	return state.Of(p.world.Loading(), p.world.Paused(), p.world.Map().Next == "")
}

// World exposes the running world
func (p *Playing) World() *world.World {
	return p.world
}

// Recorder returns the active recorder, or nil
func (p *Playing) Recorder() *replay.Recorder {
	return p.recorder
}

// Draw renders the world, the HUD and any overlay
func (p *Playing) Draw(screen *ebiten.Image) {
	p.world.Draw(&screenSurface{
		screen:     screen,
		palette:    p.palette,
		background: p.background,
	})
	p.drawHUD(screen)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	switch p.State() {
	case state.StatePaused:
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), colorOverlay, false)
		ebitenutil.DebugPrintAt(screen, "PAUSED - ESC to resume, L to restart", w/2-100, h/2)
	case state.StateLoading:
		ebitenutil.DebugPrintAt(screen, "LOADING", w/2-24, h/2)
	case state.StateFinished:
		ebitenutil.DebugPrintAt(screen, "THE END", w/2-24, 24)
	}

	if p.fadeAlpha > 0 {
		a := uint8(p.fadeAlpha * 255)
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.RGBA{0, 0, 0, a}, false)
	}
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	life := 0
	if pl := p.world.Player(); pl != nil && pl.Vitals != nil {
		life = pl.Vitals.Life
	}
	ebitenutil.DebugPrintAt(screen, p.hudText(life), 4, 4)

	if p.recorder != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("REC %d", p.recorder.FrameCount()), 4, 20)
	}
	if p.replayer != nil {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("REPLAY %d/%d", p.replayer.CurrentFrame(), p.replayer.TotalFrames()), 4, 20)
	}
}

func (p *Playing) hudText(life int) string {
	return fmt.Sprintf("Life %d  Map %s  Deaths %d  %s", life, p.world.MapID(), p.world.Deaths(), p.State())
}

type noInput struct{}

func (noInput) Actions() entity.Actions { return entity.Actions{} }
func (noInput) PausePressed() bool      { return false }
func (noInput) RestartPressed() bool    { return false }
func (noInput) SavePressed() bool       { return false }
