package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteria_Selector_Precedence(t *testing.T) {
	tests := []struct {
		name      string
		criteria  Criteria
		wantName  string
		wantValue string
	}{
		{
			name:      "genre wins over tag and playlist",
			criteria:  Criteria{Genre: "rock", Tag: "calm", Playlist: "road trip"},
			wantName:  "genre",
			wantValue: "rock",
		},
		{
			name:      "tag wins over playlist",
			criteria:  Criteria{Tag: "calm", Playlist: "road trip"},
			wantName:  "tag",
			wantValue: "calm",
		},
		{
			name:      "playlist alone",
			criteria:  Criteria{Playlist: "road trip"},
			wantName:  "playlist",
			wantValue: "road trip",
		},
		{
			name:     "none",
			criteria: Criteria{Query: "night"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, value := tt.criteria.Selector()
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestBuild(t *testing.T) {
	c := newTestCatalog()

	tests := []struct {
		name     string
		criteria Criteria
		expected []int
	}{
		{name: "zero criteria", criteria: Criteria{}, expected: []int{0, 1, 2, 3}},
		{name: "genre only", criteria: Criteria{Genre: "rock", Tag: "calm"}, expected: []int{0, 2}},
		{name: "tag only", criteria: Criteria{Tag: "calm"}, expected: []int{0, 3}},
		{name: "playlist", criteria: Criteria{Playlist: "road trip"}, expected: []int{1, 2}},
		{name: "unknown playlist", criteria: Criteria{Playlist: "nope"}, expected: []int{0, 1, 2, 3}},
		{name: "genre and query", criteria: Criteria{Genre: "rock", Query: "bottom"}, expected: []int{2}},
	}

	settings := map[string]map[string]any{
		"title_search": {"mode": "substring"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := Build(tt.criteria, settings)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, chain.Execute(c).Indices())
		})
	}
}

func TestBuild_InvalidSettings(t *testing.T) {
	_, err := Build(Criteria{Query: "x"}, map[string]map[string]any{
		"title_search": {"mode": "telepathy"},
	})
	assert.Error(t, err)
}

func TestParseSearch(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Criteria
	}{
		{
			name:     "plain words",
			input:    "night drive",
			expected: Criteria{Query: "night drive"},
		},
		{
			name:     "genre prefix",
			input:    "genre:rock bottom",
			expected: Criteria{Genre: "rock", Query: "bottom"},
		},
		{
			name:     "short prefixes",
			input:    "t:calm g:jazz",
			expected: Criteria{Tag: "calm", Genre: "jazz"},
		},
		{
			name:     "quoted playlist",
			input:    `playlist:"road trip" night`,
			expected: Criteria{Playlist: "road trip", Query: "night"},
		},
		{
			name:     "unknown prefix stays in query",
			input:    "mood:happy",
			expected: Criteria{Query: "mood:happy"},
		},
		{
			name:     "empty",
			input:    "   ",
			expected: Criteria{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSearch(tt.input))
		})
	}
}

func TestCriteria_String_RoundTrip(t *testing.T) {
	c := Criteria{Playlist: "road trip", Query: "night"}
	assert.Equal(t, `playlist:"road trip" night`, c.String())
	assert.Equal(t, c, ParseSearch(c.String()))
	assert.True(t, Criteria{}.IsZero())
	assert.False(t, c.IsZero())
}
