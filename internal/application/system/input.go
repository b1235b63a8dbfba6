package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/tilerun/internal/domain/entity"
)

// KeyBindings maps logical actions to keys. Any bound key activates its action.
type KeyBindings struct {
	Left    []ebiten.Key
	Right   []ebiten.Key
	Jump    []ebiten.Key
	Attack  []ebiten.Key
	Pause   []ebiten.Key
	Restart []ebiten.Key
	Save    []ebiten.Key
}

// DefaultKeyBindings returns arrows/WASD movement, space to jump and J to attack
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Left:    []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right:   []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Jump:    []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp, ebiten.KeySpace},
		Attack:  []ebiten.Key{ebiten.KeyJ, ebiten.KeyX},
		Pause:   []ebiten.Key{ebiten.KeyEscape},
		Restart: []ebiten.Key{ebiten.KeyL},
		Save:    []ebiten.Key{ebiten.KeyF5},
	}
}

// KeyboardSource polls ebiten for the frame's input snapshot
type KeyboardSource struct {
	bindings KeyBindings
	pressed  func(ebiten.Key) bool
	just     func(ebiten.Key) bool
}

// NewKeyboardSource creates an input source with the given bindings
func NewKeyboardSource(b KeyBindings) *KeyboardSource {
	return &KeyboardSource{
		bindings: b,
		pressed:  ebiten.IsKeyPressed,
		just:     inpututil.IsKeyJustPressed,
	}
}

func anyKey(keys []ebiten.Key, test func(ebiten.Key) bool) bool {
	for _, k := range keys {
		if test(k) {
			return true
		}
	}
	return false
}

// Actions returns the held gameplay actions
func (s *KeyboardSource) Actions() entity.Actions {
	return entity.Actions{
		MoveLeft:  anyKey(s.bindings.Left, s.pressed),
		MoveRight: anyKey(s.bindings.Right, s.pressed),
		Jump:      anyKey(s.bindings.Jump, s.pressed),
		Attack:    anyKey(s.bindings.Attack, s.pressed),
	}
}

// PausePressed reports a pause toggle this frame
func (s *KeyboardSource) PausePressed() bool {
	return anyKey(s.bindings.Pause, s.just)
}

// RestartPressed reports a restart request this frame
func (s *KeyboardSource) RestartPressed() bool {
	return anyKey(s.bindings.Restart, s.just)
}

// SavePressed reports a manual recording save this frame
func (s *KeyboardSource) SavePressed() bool {
	return anyKey(s.bindings.Save, s.just)
}
