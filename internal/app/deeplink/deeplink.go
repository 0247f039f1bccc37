// Package deeplink parses and builds addressable player URLs.
//
// Two schemes exist and a session uses exactly one of them:
//
//	query:    ?genre=rock  ?tag=live  ?playlist=road+trip  &play=<title>
//	fragment: #/track/<canonical index>
package deeplink

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/osa030/radiola/internal/app/filter"
	"github.com/osa030/radiola/internal/domain/catalog"
)

// Scheme is the deep-link addressing scheme.
type Scheme string

const (
	SchemeQuery    Scheme = "query"
	SchemeFragment Scheme = "fragment"
)

const fragmentPrefix = "/track/"

// Errors
var (
	ErrUnknownScheme = errors.New("unknown deep-link scheme")
	ErrInvalidIndex  = errors.New("invalid track index")
)

// Link is a parsed deep link.
type Link struct {
	Criteria filter.Criteria // View selection (query scheme)
	Play     string          // Title to autoplay (query scheme)
	Track    int             // Canonical index (fragment scheme), -1 if absent
}

// HasTrack reports whether the link addresses a specific track.
func (l Link) HasTrack() bool {
	return l.Track >= 0 || l.Play != ""
}

// Resolve returns the canonical index the link addresses in cat, or -1.
// A play title resolves to its first case-insensitive match.
func (l Link) Resolve(cat *catalog.Catalog) int {
	if l.Track >= 0 {
		if cat.Valid(l.Track) {
			return l.Track
		}
		return -1
	}
	if l.Play != "" {
		return cat.IndexOfTitle(l.Play)
	}
	return -1
}

// Parse parses a raw URL (absolute, relative or just "?..." / "#...")
// under the given scheme.
func Parse(raw string, scheme Scheme) (Link, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Link{Track: -1}, errors.Wrap(err, "failed to parse link")
	}

	switch scheme {
	case SchemeQuery:
		return FromQuery(u.Query()), nil
	case SchemeFragment:
		fragment := u.Fragment
		if fragment == "" {
			return Link{Track: -1}, nil
		}
		idx, err := ParseFragment(fragment)
		if err != nil {
			return Link{Track: -1}, err
		}
		return Link{Track: idx}, nil
	default:
		return Link{Track: -1}, errors.Wrapf(ErrUnknownScheme, "scheme=%s", scheme)
	}
}

// FromQuery reads genre, tag, playlist and play parameters.
// Only the winning selector (genre, then tag, then playlist) is kept.
func FromQuery(values url.Values) Link {
	var c filter.Criteria
	switch {
	case values.Get("genre") != "":
		c.Genre = values.Get("genre")
	case values.Get("tag") != "":
		c.Tag = values.Get("tag")
	case values.Get("playlist") != "":
		c.Playlist = values.Get("playlist")
	}
	c.Query = values.Get("q")

	return Link{
		Criteria: c,
		Play:     values.Get("play"),
		Track:    -1,
	}
}

// ParseFragment parses "/track/<i>" (with or without a leading "#").
func ParseFragment(fragment string) (int, error) {
	fragment = strings.TrimPrefix(fragment, "#")
	rest, ok := strings.CutPrefix(fragment, fragmentPrefix)
	if !ok {
		return -1, errors.Wrapf(ErrInvalidIndex, "fragment=%s", fragment)
	}
	idx, err := strconv.Atoi(strings.TrimSuffix(rest, "/"))
	if err != nil || idx < 0 {
		return -1, errors.Wrapf(ErrInvalidIndex, "fragment=%s", fragment)
	}
	return idx, nil
}

// Fragment renders the fragment for a canonical index (without "#").
func Fragment(index int) string {
	return fragmentPrefix + strconv.Itoa(index)
}
