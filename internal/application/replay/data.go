package replay

import "github.com/younwookim/tilerun/internal/domain/entity"

// Version is written into every recording
const Version = "1.0"

// FrameInput records the actions of one simulated frame
type FrameInput struct {
	F int  `json:"f"`           // Frame number
	L bool `json:"l,omitempty"` // MoveLeft
	R bool `json:"r,omitempty"` // MoveRight
	J bool `json:"j,omitempty"` // Jump
	A bool `json:"a,omitempty"` // Attack
}

// Actions converts the record back into an input snapshot
func (fi FrameInput) Actions() entity.Actions {
	return entity.Actions{
		MoveLeft:  fi.L,
		MoveRight: fi.R,
		Jump:      fi.J,
		Attack:    fi.A,
	}
}

// FromActions builds the record for frame f
func FromActions(f int, a entity.Actions) FrameInput {
	return FrameInput{
		F: f,
		L: a.MoveLeft,
		R: a.MoveRight,
		J: a.Jump,
		A: a.Attack,
	}
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Map       string       `json:"map"` // map the recording starts on
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
