// Package playlist provides the named Playlist domain entity.
package playlist

// Playlist is a named, ordered list of track titles defined by the catalog document.
type Playlist struct {
	Name   string   // Playlist name (key in the catalog document)
	Titles []string // Member track titles
}

// Contains reports whether the playlist lists the given title.
// Titles are matched exactly, as they appear in the catalog.
func (p *Playlist) Contains(title string) bool {
	for _, t := range p.Titles {
		if t == title {
			return true
		}
	}
	return false
}

// Len returns the number of titles in the playlist.
func (p *Playlist) Len() int {
	return len(p.Titles)
}
