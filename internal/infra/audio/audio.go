// Package audio plays catalog files on the local speaker.
package audio

import (
	"bytes"
	"context"
	"math"
	"path"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"
)

// Errors
var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrUnavailable       = errors.New("audio output not available in this build")
)

// Reader reads named files (a source.Fetcher).
type Reader interface {
	ReadAll(ctx context.Context, name string) ([]byte, error)
}

// Config represents player configuration.
type Config struct {
	Tick        time.Duration // Interval of time-update notifications
	LoadTimeout time.Duration // Timeout for reading a file
}

func (c *Config) setDefaults() {
	if c.Tick <= 0 {
		c.Tick = 500 * time.Millisecond
	}
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = 30 * time.Second
	}
}

// decode decodes an in-memory file by extension. Whole files are kept in
// memory so seeking works for remote sources too.
func decode(data []byte, name string) (beep.StreamSeekCloser, beep.Format, error) {
	reader := nopCloser{bytes.NewReader(data)}

	switch strings.ToLower(path.Ext(name)) {
	case ".mp3":
		s, f, err := mp3.Decode(reader)
		if err != nil {
			return nil, beep.Format{}, errors.Wrap(err, "failed to decode mp3")
		}
		return s, f, nil
	case ".wav":
		s, f, err := wav.Decode(reader)
		if err != nil {
			return nil, beep.Format{}, errors.Wrap(err, "failed to decode wav")
		}
		return s, f, nil
	default:
		return nil, beep.Format{}, errors.Wrapf(ErrUnsupportedFormat, "file=%s", name)
	}
}

// rewind seeks a drained streamer back to its start. A streamer that still
// has samples left keeps its position. It reports whether it rewound.
func rewind(s beep.StreamSeeker) (bool, error) {
	if s.Position() < s.Len() {
		return false, nil
	}
	if err := s.Seek(0); err != nil {
		return false, err
	}
	return true, nil
}

// gain maps a 0..1 level onto an effects.Volume exponent with base 2.
// Level 0 (or mute) is silent.
func gain(level float64, muted bool) (exponent float64, silent bool) {
	if muted || level <= 0 {
		return 0, true
	}
	if level > 1 {
		level = 1
	}
	return math.Log2(level), false
}

// nopCloser wraps a bytes.Reader to implement io.ReadCloser.
type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }
