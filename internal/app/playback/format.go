package playback

import (
	"fmt"
	"time"
)

// FormatTime renders a position as M:SS. Negative values render as 0:00.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// VolumeLevel is the icon class for the volume control.
type VolumeLevel string

const (
	VolumeMuted VolumeLevel = "muted"
	VolumeLow   VolumeLevel = "low"
	VolumeHigh  VolumeLevel = "high"
)

// LevelOf returns the icon class for a volume and mute state.
func LevelOf(volume float64, muted bool) VolumeLevel {
	switch {
	case muted || volume <= 0:
		return VolumeMuted
	case volume < 0.5:
		return VolumeLow
	default:
		return VolumeHigh
	}
}

// Icon returns a terminal glyph for the level.
func (l VolumeLevel) Icon() string {
	switch l {
	case VolumeMuted:
		return "🔇"
	case VolumeLow:
		return "🔉"
	default:
		return "🔊"
	}
}
