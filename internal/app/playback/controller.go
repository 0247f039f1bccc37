package playback

import (
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radiola/internal/app/view"
	"github.com/osa030/radiola/internal/domain/catalog"
)

// DefaultFailureText is shown when the media cannot play the current track.
const DefaultFailureText = "failed to load"

// Config holds controller configuration.
type Config struct {
	Policy        Policy
	InitialVolume float64 // 0..1
	FailureText   string  // User-visible text on media failure
}

// Controller is the Playback Selector. It owns the single PlaybackState
// of a session and drives the Media collaborator.
//
// Controller is not safe for concurrent use; the session loop serializes
// every call.
type Controller struct {
	catalog *catalog.Catalog
	view    *view.View
	media   Media
	config  Config

	// PlaybackState
	current int // -1 until something is selected
	playing bool
	ended   bool // Stopped at a natural end
	failed  bool
	message string

	// Media sub-state
	generation uint64
	position   time.Duration
	duration   time.Duration
	volume     float64
	muted      bool

	indicator *Indicator

	eventCh chan Event
}

// NewController creates a controller over a loaded catalog. The initial view
// presents the whole catalog.
func NewController(cat *catalog.Catalog, media Media, config Config) *Controller {
	if config.FailureText == "" {
		config.FailureText = DefaultFailureText
	}
	if config.Policy == (Policy{}) {
		config.Policy = DefaultPolicy()
	}

	c := &Controller{
		catalog:   cat,
		view:      view.All(cat.Len()),
		media:     media,
		config:    config,
		current:   -1,
		volume:    clamp01(config.InitialVolume),
		indicator: NewIndicator(),
		eventCh:   make(chan Event, 64),
	}
	c.syncIndicator()

	if err := media.SetVolume(c.volume); err != nil {
		zlog.Warn().Err(err).Msg("playback: failed to set initial volume")
	}
	return c
}

// Events returns the event channel.
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// Policy returns the session policy.
func (c *Controller) Policy() Policy {
	return c.config.Policy
}

// Catalog returns the catalog the controller plays from.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// View returns the presented view.
func (c *Controller) View() *view.View {
	return c.view
}

// Current returns the current canonical index, or -1.
func (c *Controller) Current() int {
	return c.current
}

// IsPlaying reports whether the current track is playing.
func (c *Controller) IsPlaying() bool {
	return c.playing
}

// Indicator returns the now-playing indicator.
func (c *Controller) Indicator() *Indicator {
	return c.indicator
}

// SetView replaces the presented view. The current track is kept even when
// the new view does not present it.
func (c *Controller) SetView(v *view.View) {
	if v == nil {
		v = view.Empty()
	}
	c.view = v
	c.syncIndicator()
	c.emit(EventViewChanged)
}

// Select plays the track at canonical index i. An out-of-range index is
// logged and ignored; Select reports whether it was accepted.
func (c *Controller) Select(i int) bool {
	t, ok := c.catalog.At(i)
	if !ok {
		zlog.Warn().Msgf("playback: ignoring out-of-range index: index=%d size=%d", i, c.catalog.Len())
		return false
	}

	c.current = i
	c.playing = true
	c.ended = false
	c.failed = false
	c.message = ""
	c.position = 0
	c.duration = 0
	c.generation++
	c.syncIndicator()

	zlog.Info().Msgf("playback: selected: index=%d title=%s", i, t.Title)
	c.emit(EventTrackChanged)

	if err := c.media.Load(Source{Index: i, Path: t.File, Generation: c.generation}); err != nil {
		c.OnError(err)
		return true
	}
	if err := c.media.Play(); err != nil {
		c.OnError(err)
	}
	return true
}

// Activate handles list-item activation: the current track toggles, any
// other track is selected.
func (c *Controller) Activate(i int) bool {
	if c.current >= 0 && i == c.current {
		c.Toggle()
		return true
	}
	return c.Select(i)
}

// Toggle flips play/pause. With nothing ever selected it starts the track
// chosen by the start policy. After a natural end it replays the current
// track from the beginning.
func (c *Controller) Toggle() {
	if c.current < 0 {
		c.start()
		return
	}

	if c.playing {
		if err := c.media.Pause(); err != nil {
			zlog.Warn().Err(err).Msg("playback: pause failed")
		}
		c.playing = false
		c.syncIndicator()
		c.emit(EventStateChanged)
		return
	}

	if c.ended {
		c.position = 0
		c.ended = false
	}
	c.playing = true
	c.failed = false
	c.message = ""
	c.syncIndicator()
	c.emit(EventStateChanged)
	if err := c.media.Play(); err != nil {
		c.OnError(err)
	}
}

func (c *Controller) start() {
	switch c.config.Policy.Start {
	case StartFirstInCatalog:
		if c.catalog.Len() == 0 {
			zlog.Debug().Msg("playback: toggle ignored, catalog is empty")
			return
		}
		c.Select(0)
	default:
		first, ok := c.view.First()
		if !ok {
			zlog.Debug().Msg("playback: toggle ignored, view is empty")
			return
		}
		c.Select(first)
	}
}

// Next advances forward.
func (c *Controller) Next() bool {
	return c.Advance(1)
}

// Previous advances backward.
func (c *Controller) Previous() bool {
	return c.Advance(-1)
}

// Advance selects the next track in direction dir (+1 or -1) under the
// advance policy. It reports whether a track was selected.
func (c *Controller) Advance(dir int) bool {
	switch {
	case dir > 0:
		dir = 1
	case dir < 0:
		dir = -1
	default:
		return false
	}

	next, ok := c.resolve(dir)
	if !ok {
		return false
	}
	return c.Select(next)
}

func (c *Controller) resolve(dir int) (int, bool) {
	if c.config.Policy.Advance == AdvanceCatalog {
		n := c.catalog.Len()
		if n == 0 {
			return -1, false
		}
		if c.current < 0 {
			if dir > 0 {
				return 0, true
			}
			return n - 1, true
		}
		next := ((c.current+dir)%n + n) % n
		if next == c.current {
			return -1, false
		}
		return next, true
	}

	if c.view.Len() <= 1 {
		return -1, false
	}
	return c.view.Step(c.current, dir)
}

// HandleMedia applies a media notification. Notifications from an earlier
// load are ignored.
func (c *Controller) HandleMedia(ev MediaEvent) {
	if ev.Generation != c.generation {
		zlog.Debug().Msgf("playback: dropping stale media event: kind=%s generation=%d current=%d",
			ev.Kind, ev.Generation, c.generation)
		return
	}

	switch ev.Kind {
	case MediaMetadata:
		c.duration = ev.Duration
		c.emit(EventProgress)
	case MediaTimeUpdate:
		c.position = ev.Position
		if ev.Duration > 0 {
			c.duration = ev.Duration
		}
		c.emit(EventProgress)
	case MediaEnded:
		c.OnEnded()
	case MediaError:
		c.OnError(ev.Err)
	}
}

// OnEnded auto-advances after a natural end of track. When nothing can be
// advanced to, playback stops on the current track.
func (c *Controller) OnEnded() {
	if c.current < 0 {
		return
	}
	if c.Next() {
		return
	}
	c.playing = false
	c.ended = true
	c.position = c.duration
	c.syncIndicator()
	c.emit(EventStateChanged)
}

// OnError stops playback, clears the indicator and surfaces the failure text.
// It never advances.
func (c *Controller) OnError(err error) {
	zlog.Error().Err(err).Msgf("playback: media error: index=%d", c.current)

	c.playing = false
	c.failed = true
	c.message = c.config.FailureText
	c.syncIndicator()
	c.emit(EventError)
}

// Seek moves to fraction (0..1) of the track duration. It is ignored while
// the duration is unknown.
func (c *Controller) Seek(fraction float64) bool {
	if c.current < 0 || c.duration <= 0 {
		return false
	}
	pos := time.Duration(clamp01(fraction) * float64(c.duration))
	if err := c.media.Seek(pos); err != nil {
		zlog.Warn().Err(err).Msg("playback: seek failed")
		return false
	}
	c.position = pos
	c.emit(EventProgress)
	return true
}

// SetVolume sets the output level (0..1) and unmutes.
func (c *Controller) SetVolume(level float64) {
	c.volume = clamp01(level)
	c.muted = false
	if err := c.media.SetVolume(c.volume); err != nil {
		zlog.Warn().Err(err).Msg("playback: set volume failed")
	}
	if err := c.media.SetMuted(false); err != nil {
		zlog.Warn().Err(err).Msg("playback: unmute failed")
	}
	c.emit(EventVolumeChanged)
}

// ToggleMute flips the mute state.
func (c *Controller) ToggleMute() {
	c.muted = !c.muted
	if err := c.media.SetMuted(c.muted); err != nil {
		zlog.Warn().Err(err).Msg("playback: set mute failed")
	}
	c.emit(EventVolumeChanged)
}

// Status returns a copy of the current state.
func (c *Controller) Status() Status {
	s := Status{
		CurrentIndex: c.current,
		Playing:      c.playing,
		State:        c.state(),
		Message:      c.message,
		Position:     c.position,
		Duration:     c.duration,
		Volume:       c.volume,
		Muted:        c.muted,
		VolumeLevel:  LevelOf(c.volume, c.muted),
		Highlighted:  c.indicator.Highlighted(),
		View:         c.view.Indices(),
	}
	if t, ok := c.catalog.At(c.current); ok {
		s.Title = t.Title
		s.File = t.File
	}
	return s
}

func (c *Controller) state() State {
	switch {
	case c.current < 0:
		return StateIdle
	case c.playing:
		return StatePlaying
	default:
		return StatePaused
	}
}

// syncIndicator recomputes the indicator from the current state.
// It must run after every state mutation.
func (c *Controller) syncIndicator() {
	target := c.current
	switch {
	case c.failed:
		target = -1
	case c.config.Policy.Indicator == IndicatorPlayingOnly && !c.playing:
		target = -1
	}
	c.indicator.Sync(c.view, target)
}

// emit sends an event without blocking.
func (c *Controller) emit(t EventType) {
	select {
	case c.eventCh <- Event{Type: t, Status: c.Status()}:
	default:
		// Channel full, drop event
		zlog.Debug().Msgf("playback: event channel full, dropping: type=%s", t)
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
