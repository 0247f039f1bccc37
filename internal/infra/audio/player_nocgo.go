//go:build !((linux && cgo) || windows || darwin)

package audio

import (
	"time"

	"github.com/osa030/radiola/internal/app/playback"
)

// Available indicates whether audio playback is supported in this build.
// Audio requires CGO for native sound libraries on Linux.
const Available = false

// Player is a playback.Media that fails every load, so the player shows
// its failure text instead of playing.
type Player struct{}

// New creates a player that cannot play.
func New(reader Reader, sink playback.MediaSink, config Config) *Player {
	return &Player{}
}

func (p *Player) Load(src playback.Source) error { return ErrUnavailable }
func (p *Player) Play() error                    { return ErrUnavailable }
func (p *Player) Pause() error                   { return nil }
func (p *Player) Seek(pos time.Duration) error   { return nil }
func (p *Player) SetVolume(level float64) error  { return nil }
func (p *Player) SetMuted(muted bool) error      { return nil }
func (p *Player) Stop()                          {}
func (p *Player) Close() error                   { return nil }
