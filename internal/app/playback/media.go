package playback

import "time"

// Source identifies what the media collaborator should load.
type Source struct {
	Index      int    // Canonical index
	Path       string // Catalog file path
	Generation uint64 // Load generation, echoed back in MediaEvents
}

// Media is the single shared audio output.
// Loading a new source abandons the previous one.
type Media interface {
	Load(src Source) error
	Play() error
	Pause() error
	Seek(pos time.Duration) error
	SetVolume(level float64) error
	SetMuted(muted bool) error
}

// MediaEventKind represents a media notification kind.
type MediaEventKind int

const (
	MediaMetadata   MediaEventKind = iota // Duration became known
	MediaTimeUpdate                       // Periodic position tick
	MediaEnded                            // Natural end of track
	MediaError                            // Decode or output failure
)

// String returns the string representation of the media event kind.
func (k MediaEventKind) String() string {
	switch k {
	case MediaMetadata:
		return "metadata"
	case MediaTimeUpdate:
		return "time_update"
	case MediaEnded:
		return "ended"
	case MediaError:
		return "error"
	default:
		return "unknown"
	}
}

// MediaEvent is a notification from the media collaborator.
type MediaEvent struct {
	Kind       MediaEventKind
	Generation uint64
	Position   time.Duration
	Duration   time.Duration
	Err        error
}

// MediaSink receives media notifications.
type MediaSink func(MediaEvent)
