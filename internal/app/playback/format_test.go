package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{0, "0:00"},
		{5 * time.Second, "0:05"},
		{65*time.Second + 900*time.Millisecond, "1:05"},
		{10 * time.Minute, "10:00"},
		{-time.Second, "0:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatTime(tt.in))
	}
}

func TestLevelOf(t *testing.T) {
	assert.Equal(t, VolumeMuted, LevelOf(0.9, true))
	assert.Equal(t, VolumeMuted, LevelOf(0, false))
	assert.Equal(t, VolumeLow, LevelOf(0.49, false))
	assert.Equal(t, VolumeHigh, LevelOf(0.5, false))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("", "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), p)

	p, err = ParsePolicy("catalog", "first_in_catalog", "selected")
	require.NoError(t, err)
	assert.Equal(t, Policy{Advance: AdvanceCatalog, Start: StartFirstInCatalog, Indicator: IndicatorSelected}, p)

	_, err = ParsePolicy("random", "", "")
	assert.Error(t, err)
	_, err = ParsePolicy("", "middle", "")
	assert.Error(t, err)
	_, err = ParsePolicy("", "", "blink")
	assert.Error(t, err)
}
