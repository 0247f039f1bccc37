//go:build (linux && cgo) || windows || darwin

package audio

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radiola/internal/app/playback"
)

// Available indicates whether audio playback is supported in this build.
const Available = true

// Player is the speaker-backed playback.Media. Load returns at once; the
// file is fetched and decoded on a goroutine and the outcome is reported
// through the sink as a metadata or error notification.
type Player struct {
	mu sync.Mutex

	reader Reader
	sink   playback.MediaSink
	config Config

	initialized bool
	sampleRate  beep.SampleRate

	generation uint64
	loaded     bool // A source was requested and not stopped since
	cancelLoad context.CancelFunc
	wantPlay   bool
	ended      bool // The queued stream drained and left the mixer

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64
	muted    bool

	stopTick chan struct{}
}

// New creates a player reading files through reader and reporting to sink.
func New(reader Reader, sink playback.MediaSink, config Config) *Player {
	config.setDefaults()
	return &Player{
		reader:     reader,
		sink:       sink,
		config:     config,
		sampleRate: beep.SampleRate(44100),
		level:      1,
	}
}

// Load implements playback.Media. It abandons the current source, including
// a fetch still in flight.
func (p *Player) Load(src playback.Source) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	ctx, cancel := context.WithTimeout(context.Background(), p.config.LoadTimeout)
	p.cancelLoad = cancel
	p.generation = src.Generation
	p.loaded = true

	go p.fetch(ctx, cancel, src)
	return nil
}

func (p *Player) fetch(ctx context.Context, cancel context.CancelFunc, src playback.Source) {
	defer cancel()

	data, err := p.reader.ReadAll(ctx, src.Path)
	if err != nil {
		p.fail(src.Generation, errors.Wrapf(err, "failed to read %s", src.Path))
		return
	}

	streamer, format, err := decode(data, src.Path)
	if err != nil {
		p.fail(src.Generation, err)
		return
	}

	duration, ok, err := p.install(src.Generation, streamer, format)
	if err != nil {
		p.fail(src.Generation, err)
		return
	}
	if !ok {
		zlog.Debug().Msgf("audio: dropping abandoned load: file=%s generation=%d", src.Path, src.Generation)
		return
	}

	zlog.Debug().Msgf("audio: loaded: file=%s duration=%v generation=%d", src.Path, duration, src.Generation)
	p.emit(playback.MediaEvent{Kind: playback.MediaMetadata, Generation: src.Generation, Duration: duration})
}

// install queues a decoded stream if gen is still the requested source.
func (p *Player) install(gen uint64, streamer beep.StreamSeekCloser, format beep.Format) (time.Duration, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.currentLocked(gen) {
		streamer.Close()
		return 0, false, nil
	}

	if !p.initialized {
		if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			return 0, true, errors.Wrap(err, "failed to initialize speaker")
		}
		p.initialized = true
	}

	p.streamer = streamer
	p.format = format
	p.queueLocked()
	if p.wantPlay {
		p.startTickLocked()
	}
	return format.SampleRate.D(streamer.Len()), true, nil
}

// fail reports a load failure unless the load was abandoned.
func (p *Player) fail(gen uint64, err error) {
	p.mu.Lock()
	current := p.currentLocked(gen)
	p.mu.Unlock()

	if !current {
		zlog.Debug().Err(err).Msgf("audio: ignoring failure of abandoned load: generation=%d", gen)
		return
	}
	p.emit(playback.MediaEvent{Kind: playback.MediaError, Generation: gen, Err: err})
}

// finish marks the stream of gen as drained and reports the natural end.
func (p *Player) finish(gen uint64) {
	p.mu.Lock()
	if !p.currentLocked(gen) || p.streamer == nil {
		p.mu.Unlock()
		return
	}
	p.ended = true
	p.stopTickLocked()
	p.mu.Unlock()

	p.emit(playback.MediaEvent{Kind: playback.MediaEnded, Generation: gen})
}

func (p *Player) currentLocked(gen uint64) bool {
	return p.loaded && p.generation == gen
}

// queueLocked hands the current stream to the speaker mixer.
func (p *Player) queueLocked() {
	p.ended = false
	p.ctrl = &beep.Ctrl{Streamer: beep.Resample(4, p.format.SampleRate, p.sampleRate, p.streamer), Paused: !p.wantPlay}
	exponent, silent := gain(p.level, p.muted)
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2, Volume: exponent, Silent: silent}

	gen := p.generation
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		// Run in a separate goroutine; the speaker lock is held here.
		go p.finish(gen)
	})))
}

// Play implements playback.Media. Before the source is ready it only records
// the intent. A drained stream is rewound and queued again.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		return errors.New("nothing loaded")
	}
	p.wantPlay = true
	if p.streamer == nil {
		return nil
	}

	if p.ended {
		if _, err := rewind(p.streamer); err != nil {
			return errors.Wrap(err, "failed to rewind")
		}
		p.queueLocked()
	} else {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
	}

	p.startTickLocked()
	return nil
}

// Pause implements playback.Media.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.wantPlay = false
	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
	}
	p.stopTickLocked()
	return nil
}

// Seek implements playback.Media.
func (p *Player) Seek(pos time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return nil
	}

	speaker.Lock()
	defer speaker.Unlock()

	samples := p.format.SampleRate.N(pos)
	if last := p.streamer.Len() - 1; samples > last {
		samples = last
	}
	if samples < 0 {
		samples = 0
	}
	return p.streamer.Seek(samples)
}

// SetVolume implements playback.Media.
func (p *Player) SetVolume(level float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.level = level
	p.applyVolumeLocked()
	return nil
}

// SetMuted implements playback.Media.
func (p *Player) SetMuted(muted bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = muted
	p.applyVolumeLocked()
	return nil
}

// Stop stops playback and releases the current source.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Close stops playback and closes the speaker.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	return nil
}

func (p *Player) applyVolumeLocked() {
	if p.volume == nil {
		return
	}
	exponent, silent := gain(p.level, p.muted)
	speaker.Lock()
	p.volume.Volume = exponent
	p.volume.Silent = silent
	speaker.Unlock()
}

// stopLocked stops playback and abandons any load in flight (must be called
// with lock held).
func (p *Player) stopLocked() {
	p.stopTickLocked()
	if p.cancelLoad != nil {
		p.cancelLoad()
		p.cancelLoad = nil
	}
	p.loaded = false
	p.wantPlay = false
	p.ended = false
	if p.initialized {
		speaker.Clear()
	}
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	p.ctrl = nil
	p.volume = nil
}

func (p *Player) startTickLocked() {
	p.stopTickLocked()

	stop := make(chan struct{})
	p.stopTick = stop
	gen := p.generation

	go func() {
		ticker := time.NewTicker(p.config.Tick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				pos, dur, ok := p.progress(gen)
				if !ok {
					return
				}
				p.emit(playback.MediaEvent{Kind: playback.MediaTimeUpdate, Generation: gen, Position: pos, Duration: dur})
			}
		}
	}()
}

func (p *Player) stopTickLocked() {
	if p.stopTick != nil {
		close(p.stopTick)
		p.stopTick = nil
	}
}

func (p *Player) progress(gen uint64) (time.Duration, time.Duration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil || p.generation != gen {
		return 0, 0, false
	}
	speaker.Lock()
	pos := p.streamer.Position()
	length := p.streamer.Len()
	speaker.Unlock()
	return p.format.SampleRate.D(pos), p.format.SampleRate.D(length), true
}

func (p *Player) emit(ev playback.MediaEvent) {
	if p.sink != nil {
		p.sink(ev)
	}
}
