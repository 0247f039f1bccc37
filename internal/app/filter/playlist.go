package filter

import (
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radiola/internal/domain/catalog"
)

// PlaylistFilter keeps tracks listed in a named playlist of the catalog.
// An unknown playlist leaves the candidates untouched.
type PlaylistFilter struct {
	name string
}

// NewPlaylistFilter creates a playlist filter for the named playlist.
func NewPlaylistFilter(name string) *PlaylistFilter {
	return &PlaylistFilter{name: name}
}

func (f *PlaylistFilter) Name() string {
	return "playlist"
}

func (f *PlaylistFilter) Description() string {
	return "Keeps tracks listed in a named playlist (unknown playlists show everything)"
}

func (f *PlaylistFilter) ValidateConfig(settings map[string]any) error {
	// No configuration needed
	return nil
}

func (f *PlaylistFilter) Apply(c *catalog.Catalog, candidates []int) []int {
	p, ok := c.Playlist(f.name)
	if !ok {
		zlog.Warn().Msgf("filter: unknown playlist, showing all tracks: playlist=%s", f.name)
		return candidates
	}

	result := make([]int, 0, len(candidates))
	for _, idx := range candidates {
		if t, ok := c.At(idx); ok && p.Contains(t.Title) {
			result = append(result, idx)
		}
	}
	return result
}

func init() {
	Register("playlist", func() Filter { return NewPlaylistFilter("") })
}
