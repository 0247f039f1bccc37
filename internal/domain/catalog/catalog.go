// Package catalog provides the Catalog domain entity.
package catalog

import (
	"sort"
	"strings"

	"github.com/osa030/radiola/internal/domain/playlist"
	"github.com/osa030/radiola/internal/domain/track"
)

// Catalog is the ordered, session-wide list of playable tracks.
// Insertion order is the canonical index space used for playback and deep links.
// A Catalog never changes after construction.
type Catalog struct {
	tracks    []track.Track
	playlists map[string]playlist.Playlist
	byFile    map[string]int
}

// New creates a catalog from tracks in canonical order and named playlists.
// When several tracks share a file, the first one owns it.
func New(tracks []track.Track, playlists map[string][]string) *Catalog {
	c := &Catalog{
		tracks:    make([]track.Track, len(tracks)),
		playlists: make(map[string]playlist.Playlist, len(playlists)),
		byFile:    make(map[string]int, len(tracks)),
	}
	copy(c.tracks, tracks)

	for i, t := range c.tracks {
		if _, ok := c.byFile[t.File]; !ok {
			c.byFile[t.File] = i
		}
	}

	for name, titles := range playlists {
		c.playlists[name] = playlist.Playlist{
			Name:   name,
			Titles: append([]string(nil), titles...),
		}
	}

	return c
}

// Len returns the number of tracks.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tracks)
}

// Valid reports whether i is a canonical index of this catalog.
func (c *Catalog) Valid(i int) bool {
	return i >= 0 && i < c.Len()
}

// At returns the track at canonical index i.
func (c *Catalog) At(i int) (track.Track, bool) {
	if !c.Valid(i) {
		return track.Track{}, false
	}
	return c.tracks[i], true
}

// Tracks returns a copy of all tracks in canonical order.
func (c *Catalog) Tracks() []track.Track {
	result := make([]track.Track, c.Len())
	copy(result, c.tracks)
	return result
}

// IndexOfFile returns the canonical index owning the given file, or -1.
func (c *Catalog) IndexOfFile(file string) int {
	if i, ok := c.byFile[file]; ok {
		return i
	}
	return -1
}

// IndexOfTitle returns the canonical index of the first track whose title
// equals the given one (case-insensitive), or -1.
func (c *Catalog) IndexOfTitle(title string) int {
	for i, t := range c.tracks {
		if strings.EqualFold(t.Title, title) {
			return i
		}
	}
	return -1
}

// Playlist returns the named playlist.
func (c *Catalog) Playlist(name string) (playlist.Playlist, bool) {
	p, ok := c.playlists[name]
	return p, ok
}

// PlaylistNames returns the playlist names in lexical order.
func (c *Catalog) PlaylistNames() []string {
	names := make([]string, 0, len(c.playlists))
	for name := range c.playlists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Genres returns the distinct genres in first-seen order.
func (c *Catalog) Genres() []string {
	seen := make(map[string]bool)
	var genres []string
	for _, t := range c.tracks {
		key := strings.ToLower(t.Genre)
		if t.Genre == "" || seen[key] {
			continue
		}
		seen[key] = true
		genres = append(genres, t.Genre)
	}
	return genres
}
