package state

// GameState is the coarse phase of a session, derived from the world each frame
type GameState int

const (
	StateLoading GameState = iota
	StatePlaying
	StatePaused
	StateFinished
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Of derives the state from world flags. Loading wins over paused, and a
// final map (no next map) that is running counts as finished.
func Of(loading, paused, finalMap bool) GameState {
	switch {
	case loading:
		return StateLoading
	case paused:
		return StatePaused
	case finalMap:
		return StateFinished
	default:
		return StatePlaying
	}
}
