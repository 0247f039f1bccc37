package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/radiola/internal/domain/catalog"
	"github.com/osa030/radiola/internal/domain/track"
)

func newTestCatalog() *catalog.Catalog {
	return catalog.New([]track.Track{
		{Title: "Morning Light", File: "m/0.mp3", Genre: "Indie Rock", Tags: []string{"calm"}},
		{Title: "Night Drive", File: "m/1.mp3", Genre: "Synthwave", Tags: []string{"Drive", "night"}},
		{Title: "Rock Bottom", File: "m/2.mp3", Genre: "Rock"},
		{Title: "Blue Hour", File: "m/3.mp3", Genre: "Jazz", Tags: []string{"calm"}},
	}, map[string][]string{
		"road trip": {"Night Drive", "Rock Bottom", "Unknown Title"},
	})
}

func TestGenreFilter_Apply(t *testing.T) {
	c := newTestCatalog()

	tests := []struct {
		name     string
		genre    string
		settings map[string]any
		expected []int
	}{
		{
			name:     "contains match",
			genre:    "rock",
			expected: []int{0, 2},
		},
		{
			name:     "exact match",
			genre:    "rock",
			settings: map[string]any{"match": "exact"},
			expected: []int{2},
		},
		{
			name:     "no match",
			genre:    "classical",
			expected: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewGenreFilter(tt.genre)
			require.NoError(t, f.ValidateConfig(tt.settings))
			assert.Equal(t, tt.expected, f.Apply(c, []int{0, 1, 2, 3}))
		})
	}
}

func TestGenreFilter_ValidateConfig(t *testing.T) {
	f := NewGenreFilter("rock")
	err := f.ValidateConfig(map[string]any{"match": "regex"})
	assert.Error(t, err)
}

func TestTagFilter_Apply(t *testing.T) {
	c := newTestCatalog()

	assert.Equal(t, []int{0, 3}, NewTagFilter("CALM").Apply(c, []int{0, 1, 2, 3}))
	assert.Equal(t, []int{1}, NewTagFilter("drive").Apply(c, []int{0, 1, 2, 3}))
	assert.Equal(t, []int{}, NewTagFilter("dri").Apply(c, []int{0, 1, 2, 3}))
}

func TestPlaylistFilter_Apply(t *testing.T) {
	c := newTestCatalog()

	assert.Equal(t, []int{1, 2}, NewPlaylistFilter("road trip").Apply(c, []int{0, 1, 2, 3}),
		"members keep catalog order and unknown titles are skipped")
	assert.Equal(t, []int{0, 1, 2, 3}, NewPlaylistFilter("missing").Apply(c, []int{0, 1, 2, 3}),
		"unknown playlist shows everything")
}

func TestTitleSearchFilter_Apply(t *testing.T) {
	c := newTestCatalog()

	tests := []struct {
		name     string
		query    string
		settings map[string]any
		expected []int
	}{
		{
			name:     "substring mode keeps catalog order",
			query:    "o",
			settings: map[string]any{"mode": "substring"},
			expected: []int{0, 2, 3},
		},
		{
			name:     "empty query passes everything",
			query:    "  ",
			expected: []int{0, 1, 2, 3},
		},
		{
			name:     "fuzzy finds subsequence",
			query:    "ndrv",
			expected: []int{1},
		},
		{
			name:     "limit truncates",
			query:    "o",
			settings: map[string]any{"mode": "substring", "limit": 1},
			expected: []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTitleSearchFilter(tt.query)
			require.NoError(t, f.ValidateConfig(tt.settings))
			assert.Equal(t, tt.expected, f.Apply(c, []int{0, 1, 2, 3}))
		})
	}
}

func TestChain_Execute(t *testing.T) {
	c := newTestCatalog()

	t.Run("empty chain presents everything", func(t *testing.T) {
		v := NewChain().Execute(c)
		assert.Equal(t, []int{0, 1, 2, 3}, v.Indices())
	})

	t.Run("filters compose", func(t *testing.T) {
		chain := NewChain()
		chain.Add(NewTagFilter("calm"))
		search := NewTitleSearchFilter("blue")
		require.NoError(t, search.ValidateConfig(map[string]any{"mode": "substring"}))
		chain.Add(search)

		v := chain.Execute(c)
		assert.Equal(t, []int{3}, v.Indices())
		assert.Len(t, chain.Filters(), 2)
	})
}

func TestRegistry(t *testing.T) {
	registered := GetRegistered()
	for _, name := range []string{"genre", "tag", "playlist", "title_search"} {
		factory, ok := registered[name]
		require.True(t, ok, "filter %s should be registered", name)
		assert.Equal(t, name, factory().Name())
		assert.NotEmpty(t, factory().Description())
	}
}
