package notification

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/osa030/radiola/internal/app/playback"
)

// Type represents a notification type.
type Type string

const (
	TypeInitialState  Type = "initial_state"
	TypePhaseChanged  Type = "phase_changed"
	TypeTrackChanged  Type = "track_changed"
	TypeStateChanged  Type = "state_changed"
	TypeProgress      Type = "progress"
	TypeVolumeChanged Type = "volume_changed"
	TypeViewChanged   Type = "view_changed"
	TypeError         Type = "error"
)

// TypeOf maps a playback event type to its notification type.
func TypeOf(t playback.EventType) Type {
	switch t {
	case playback.EventTrackChanged:
		return TypeTrackChanged
	case playback.EventStateChanged:
		return TypeStateChanged
	case playback.EventProgress:
		return TypeProgress
	case playback.EventVolumeChanged:
		return TypeVolumeChanged
	case playback.EventViewChanged:
		return TypeViewChanged
	default:
		return TypeError
	}
}

// Notification is a session change sent to subscribers.
type Notification struct {
	Type       Type             `json:"type"`
	SequenceNo uint64           `json:"sequence_no"`
	Timestamp  time.Time        `json:"timestamp"`
	Phase      string           `json:"phase"`
	Link       string           `json:"link,omitempty"`
	Status     *playback.Status `json:"status,omitempty"`
	Message    string           `json:"message,omitempty"`
}

// ErrStreamFull is returned by ChanStream when the subscriber lags.
var ErrStreamFull = errors.New("notification stream full")

// ChanStream is a Stream backed by a buffered channel.
type ChanStream struct {
	ch chan *Notification
}

// NewChanStream creates a channel stream with the given buffer size.
func NewChanStream(size int) *ChanStream {
	return &ChanStream{ch: make(chan *Notification, size)}
}

// Send enqueues without blocking.
func (s *ChanStream) Send(n *Notification) error {
	select {
	case s.ch <- n:
		return nil
	default:
		return ErrStreamFull
	}
}

// C returns the receive side of the stream.
func (s *ChanStream) C() <-chan *Notification {
	return s.ch
}
