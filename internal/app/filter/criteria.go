package filter

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Criteria describes which part of the catalog is presented.
// Genre, Tag and Playlist are exclusive selectors with that precedence;
// Query narrows the selected tracks further by title.
type Criteria struct {
	Genre    string `json:"genre,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Playlist string `json:"playlist,omitempty"`
	Query    string `json:"query,omitempty"`
}

// IsZero reports whether the criteria present the full catalog.
func (c Criteria) IsZero() bool {
	return c.Genre == "" && c.Tag == "" && c.Playlist == "" && strings.TrimSpace(c.Query) == ""
}

// Selector returns the name and value of the winning exclusive selector.
// It returns empty strings when none is set.
func (c Criteria) Selector() (string, string) {
	switch {
	case c.Genre != "":
		return "genre", c.Genre
	case c.Tag != "":
		return "tag", c.Tag
	case c.Playlist != "":
		return "playlist", c.Playlist
	default:
		return "", ""
	}
}

// String renders the criteria in search-box syntax (see ParseSearch).
func (c Criteria) String() string {
	var parts []string
	if name, value := c.Selector(); name != "" {
		parts = append(parts, name+":"+quoteIfNeeded(value))
	}
	if q := strings.TrimSpace(c.Query); q != "" {
		parts = append(parts, q)
	}
	return strings.Join(parts, " ")
}

// Build creates the filter chain for the criteria.
// settings holds per-filter settings keyed by filter name.
func Build(c Criteria, settings map[string]map[string]any) (*Chain, error) {
	chain := NewChain()

	var selector Filter
	switch name, value := c.Selector(); name {
	case "genre":
		selector = NewGenreFilter(value)
	case "tag":
		selector = NewTagFilter(value)
	case "playlist":
		selector = NewPlaylistFilter(value)
	}
	if selector != nil {
		if err := selector.ValidateConfig(settings[selector.Name()]); err != nil {
			return nil, errors.Wrapf(err, "filter %s", selector.Name())
		}
		chain.Add(selector)
	}

	if q := strings.TrimSpace(c.Query); q != "" {
		search := NewTitleSearchFilter(q)
		if err := search.ValidateConfig(settings[search.Name()]); err != nil {
			return nil, errors.Wrapf(err, "filter %s", search.Name())
		}
		chain.Add(search)
	}

	return chain, nil
}

// ParseSearch parses search-box input into criteria.
// Tokens of the form genre:x, tag:x and playlist:x set selectors; values may
// be double-quoted to include spaces. Remaining words form the title query.
func ParseSearch(input string) Criteria {
	var c Criteria
	var words []string

	for _, tok := range tokenize(input) {
		key, value, found := strings.Cut(tok, ":")
		if !found || value == "" {
			words = append(words, tok)
			continue
		}
		switch strings.ToLower(key) {
		case "genre", "g":
			c.Genre = value
		case "tag", "t":
			c.Tag = value
		case "playlist", "p":
			c.Playlist = value
		default:
			words = append(words, tok)
		}
	}

	c.Query = strings.Join(words, " ")
	return c
}

// tokenize splits on whitespace, keeping double-quoted runs together and
// dropping the quotes.
func tokenize(input string) []string {
	var tokens []string
	var cur strings.Builder
	inQuotes := false

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case !inQuotes && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()

	return tokens
}

func quoteIfNeeded(value string) string {
	if strings.ContainsAny(value, " \t") {
		return `"` + value + `"`
	}
	return value
}
