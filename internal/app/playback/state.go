// Package playback provides the Playback Selector: current-track tracking,
// next/previous resolution over the presented view and the now-playing
// indicator.
package playback

import (
	"time"

	"github.com/cockroachdb/errors"
)

// State represents the playback state.
type State int

const (
	StateIdle    State = iota // Nothing selected yet
	StatePlaying              // Track is playing
	StatePaused               // Track is selected but not playing (paused, ended or failed)
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for _, st := range []State{StateIdle, StatePlaying, StatePaused} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return errors.Newf("unknown playback state: %q", text)
}

// Status is a point-in-time copy of the controller state.
type Status struct {
	CurrentIndex int           `json:"current_index"`
	Title        string        `json:"title,omitempty"`
	File         string        `json:"file,omitempty"`
	Playing      bool          `json:"playing"`
	State        State         `json:"state"`
	Message      string        `json:"message,omitempty"`
	Position     time.Duration `json:"position"`
	Duration     time.Duration `json:"duration"`
	Volume       float64       `json:"volume"`
	Muted        bool          `json:"muted"`
	VolumeLevel  VolumeLevel   `json:"volume_level"`
	Highlighted  []int         `json:"highlighted"`
	View         []int         `json:"view"`
}
