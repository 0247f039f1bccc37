package playback

// EventType represents a playback event type.
type EventType int

const (
	EventTrackChanged  EventType = iota // A new track was selected
	EventStateChanged                   // Play/pause flipped or playback stopped
	EventProgress                       // Duration or position changed
	EventVolumeChanged                  // Volume or mute changed
	EventViewChanged                    // Presented view replaced
	EventError                          // Media failed to play the current track
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackChanged:
		return "track_changed"
	case EventStateChanged:
		return "state_changed"
	case EventProgress:
		return "progress"
	case EventVolumeChanged:
		return "volume_changed"
	case EventViewChanged:
		return "view_changed"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event represents a playback event.
type Event struct {
	Type   EventType
	Status Status // Controller state after the change
}
