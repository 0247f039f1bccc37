package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaylist_Contains(t *testing.T) {
	tests := []struct {
		name     string
		titles   []string
		title    string
		expected bool
	}{
		{
			name:     "empty playlist",
			titles:   []string{},
			title:    "Song A",
			expected: false,
		},
		{
			name:     "member",
			titles:   []string{"Song A", "Song B"},
			title:    "Song B",
			expected: true,
		},
		{
			name:     "titles are case sensitive",
			titles:   []string{"Song A"},
			title:    "song a",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Playlist{Name: "road trip", Titles: tt.titles}
			assert.Equal(t, tt.expected, p.Contains(tt.title))
		})
	}
}

func TestPlaylist_Len(t *testing.T) {
	p := &Playlist{Name: "road trip", Titles: []string{"Song A", "Song B", "Song C"}}

	assert.Equal(t, "road trip", p.Name)
	assert.Equal(t, 3, p.Len())
}
