package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_String(t *testing.T) {
	tests := []struct {
		state    GameState
		expected string
	}{
		{StateLoading, "Loading"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateFinished, "Finished"},
		{GameState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestOf(t *testing.T) {
	tests := []struct {
		name                      string
		loading, paused, finalMap bool
		want                      GameState
	}{
		{"running", false, false, false, StatePlaying},
		{"loading beats paused", true, true, false, StateLoading},
		{"paused", false, true, true, StatePaused},
		{"credits", false, false, true, StateFinished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Of(tt.loading, tt.paused, tt.finalMap))
		})
	}
}
