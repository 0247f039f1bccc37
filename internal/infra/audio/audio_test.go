package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGain(t *testing.T) {
	tests := []struct {
		name       string
		level      float64
		muted      bool
		wantExp    float64
		wantSilent bool
	}{
		{name: "full", level: 1, wantExp: 0},
		{name: "half", level: 0.5, wantExp: -1},
		{name: "quarter", level: 0.25, wantExp: -2},
		{name: "zero", level: 0, wantSilent: true},
		{name: "muted", level: 0.8, muted: true, wantSilent: true},
		{name: "clamped", level: 3, wantExp: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, silent := gain(tt.level, tt.muted)
			assert.Equal(t, tt.wantSilent, silent)
			if !tt.wantSilent {
				assert.InDelta(t, tt.wantExp, exp, 1e-9)
			}
		})
	}
}

func TestDecode_WAV(t *testing.T) {
	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}

	file, err := os.Create(filepath.Join(t.TempDir(), "tone.wav"))
	require.NoError(t, err)
	require.NoError(t, wav.Encode(file, beep.Silence(8000), format))
	require.NoError(t, file.Close())

	data, err := os.ReadFile(file.Name())
	require.NoError(t, err)

	streamer, got, err := decode(data, "music/tone.WAV")
	require.NoError(t, err)
	defer streamer.Close()

	assert.Equal(t, format.SampleRate, got.SampleRate)
	assert.Equal(t, 8000, streamer.Len())
	assert.InDelta(t, 1.0, got.SampleRate.D(streamer.Len()).Seconds(), 1e-6)
}

func TestDecode_Errors(t *testing.T) {
	_, _, err := decode([]byte("hello"), "notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, _, err = decode([]byte("not a wav"), "broken.wav")
	assert.Error(t, err)
}

func TestRewind(t *testing.T) {
	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}

	file, err := os.Create(filepath.Join(t.TempDir(), "tone.wav"))
	require.NoError(t, err)
	require.NoError(t, wav.Encode(file, beep.Silence(800), format))
	require.NoError(t, file.Close())

	data, err := os.ReadFile(file.Name())
	require.NoError(t, err)

	streamer, _, err := decode(data, "tone.wav")
	require.NoError(t, err)
	defer streamer.Close()

	t.Run("partially played keeps position", func(t *testing.T) {
		require.NoError(t, streamer.Seek(100))
		rewound, err := rewind(streamer)
		require.NoError(t, err)
		assert.False(t, rewound)
		assert.Equal(t, 100, streamer.Position())
	})

	t.Run("drained restarts", func(t *testing.T) {
		buf := make([][2]float64, 512)
		for {
			if _, ok := streamer.Stream(buf); !ok {
				break
			}
		}
		require.Equal(t, streamer.Len(), streamer.Position())

		rewound, err := rewind(streamer)
		require.NoError(t, err)
		assert.True(t, rewound)
		assert.Equal(t, 0, streamer.Position())

		n, ok := streamer.Stream(buf)
		assert.True(t, ok)
		assert.Positive(t, n)
	})
}
