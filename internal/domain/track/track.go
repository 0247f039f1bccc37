// Package track provides the Track domain entity.
package track

import (
	"path"
	"strings"
)

// Track represents a single catalog entry.
// Tracks are immutable once the catalog is loaded; identity is the
// position in the catalog, not any field of the track.
type Track struct {
	Title string   `json:"title" yaml:"title" validate:"required"` // Display title
	File  string   `json:"file" yaml:"file" validate:"required"`   // Path relative to the media root
	Genre string   `json:"genre" yaml:"genre"`                     // Free-form genre label
	Tags  []string `json:"tags,omitempty" yaml:"tags"`             // Optional tags
}

// HasTag reports whether the track carries the given tag (case-insensitive, exact).
func (t *Track) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if strings.EqualFold(tg, tag) {
			return true
		}
	}
	return false
}

// MatchesGenre reports whether the genre contains the given text (case-insensitive).
func (t *Track) MatchesGenre(genre string) bool {
	return strings.Contains(strings.ToLower(t.Genre), strings.ToLower(genre))
}

// FileName returns the final path segment of the track file.
// This is the suggested name when the file is saved locally.
func (t *Track) FileName() string {
	return FileName(t.File)
}

// FileName returns the final path segment of a slash-separated file path.
func FileName(file string) string {
	file = strings.TrimRight(file, "/")
	if file == "" {
		return ""
	}
	return path.Base(file)
}
