// Package scene defines the screen abstraction driven by game.Game.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game. The playing scene is the only one so far.
type Scene interface {
	// Update advances the scene by dt seconds. A non-nil next replaces this
	// scene; an error (ebiten.Termination included) stops the game.
	Update(dt float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes current
	OnEnter()

	// OnExit runs when the scene is replaced or the game stops
	OnExit()
}
