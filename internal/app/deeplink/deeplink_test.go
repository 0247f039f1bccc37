package deeplink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/radiola/internal/app/filter"
	"github.com/osa030/radiola/internal/domain/catalog"
	"github.com/osa030/radiola/internal/domain/track"
)

func newTestCatalog() *catalog.Catalog {
	return catalog.New([]track.Track{
		{Title: "A", File: "music/a.mp3", Genre: "Rock"},
		{Title: "Blue Hour", File: "music/b.mp3", Genre: "Jazz"},
		{Title: "C", File: "music/c.mp3", Genre: "Rock"},
	}, nil)
}

func TestParse_Query(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Link
	}{
		{
			name:     "genre wins",
			raw:      "https://example.com/?tag=live&genre=rock&playlist=x",
			expected: Link{Criteria: filter.Criteria{Genre: "rock"}, Track: -1},
		},
		{
			name:     "tag over playlist",
			raw:      "?playlist=x&tag=live",
			expected: Link{Criteria: filter.Criteria{Tag: "live"}, Track: -1},
		},
		{
			name:     "playlist and play",
			raw:      "/player?playlist=road+trip&play=Blue%20Hour",
			expected: Link{Criteria: filter.Criteria{Playlist: "road trip"}, Play: "Blue Hour", Track: -1},
		},
		{
			name:     "empty",
			raw:      "https://example.com/",
			expected: Link{Track: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := Parse(tt.raw, SchemeQuery)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, link)
		})
	}
}

func TestParse_Fragment(t *testing.T) {
	link, err := Parse("https://example.com/#/track/2", SchemeFragment)
	require.NoError(t, err)
	assert.Equal(t, 2, link.Track)

	link, err = Parse("https://example.com/?genre=rock", SchemeFragment)
	require.NoError(t, err)
	assert.Equal(t, Link{Track: -1}, link, "query parameters are ignored under the fragment scheme")

	for _, raw := range []string{"#/track/x", "#/track/-3", "#/album/1"} {
		_, err := Parse(raw, SchemeFragment)
		assert.ErrorIs(t, err, ErrInvalidIndex, raw)
	}

	_, err = Parse("#/track/1", Scheme("path"))
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestLink_Resolve(t *testing.T) {
	c := newTestCatalog()

	assert.Equal(t, 1, Link{Play: "blue hour", Track: -1}.Resolve(c))
	assert.Equal(t, -1, Link{Play: "missing", Track: -1}.Resolve(c))
	assert.Equal(t, 2, Link{Track: 2}.Resolve(c))
	assert.Equal(t, -1, Link{Track: 9}.Resolve(c))
	assert.Equal(t, -1, Link{Track: -1}.Resolve(c))
	assert.False(t, Link{Track: -1}.HasTrack())
}

func TestBuilder(t *testing.T) {
	c := newTestCatalog()

	t.Run("query scheme", func(t *testing.T) {
		b, err := NewBuilder("https://radio.example.com/listen", SchemeQuery)
		require.NoError(t, err)

		got, err := b.Track(c, 1, filter.Criteria{Genre: "jazz"})
		require.NoError(t, err)
		assert.Equal(t, "https://radio.example.com/listen?genre=jazz&play=Blue+Hour", got)

		link, err := Parse(got, SchemeQuery)
		require.NoError(t, err)
		assert.Equal(t, 1, link.Resolve(c))

		assert.Equal(t, "https://radio.example.com/listen?tag=live", b.View(filter.Criteria{Tag: "live"}))
	})

	t.Run("fragment scheme", func(t *testing.T) {
		b, err := NewBuilder("https://radio.example.com/?old=1#/track/0", SchemeFragment)
		require.NoError(t, err)

		got, err := b.Track(c, 2, filter.Criteria{Genre: "rock"})
		require.NoError(t, err)
		assert.Equal(t, "https://radio.example.com/#/track/2", got)

		link, err := Parse(got, SchemeFragment)
		require.NoError(t, err)
		assert.Equal(t, 2, link.Track)
	})

	t.Run("invalid index", func(t *testing.T) {
		b, err := NewBuilder("https://radio.example.com/", SchemeFragment)
		require.NoError(t, err)
		_, err = b.Track(c, 7, filter.Criteria{})
		assert.ErrorIs(t, err, ErrInvalidIndex)
	})

	t.Run("relative base rejected", func(t *testing.T) {
		_, err := NewBuilder("/listen", SchemeQuery)
		assert.Error(t, err)
	})
}
