// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/tilerun/internal/application/scene"
	"github.com/younwookim/tilerun/internal/infrastructure/logger"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// On any error, including ebiten.Termination, the current scene's OnExit
// runs before the error is returned.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		if !errors.Is(err, ebiten.Termination) {
			logger.Log.WithError(err).Error("scene update failed")
		}
		g.current.OnExit()
		return err
	}

	if next != nil {
		logger.Log.WithField("scene", fmt.Sprintf("%T", next)).Debug("scene transition")
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}
