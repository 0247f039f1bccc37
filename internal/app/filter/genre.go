package filter

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/osa030/radiola/internal/domain/catalog"
)

// GenreConfig represents the configuration for GenreFilter.
type GenreConfig struct {
	Match string `yaml:"match" mapstructure:"match" default:"contains" validate:"oneof=contains exact"`
}

// GenreFilter keeps tracks whose genre matches, ignoring case.
type GenreFilter struct {
	genre  string
	config GenreConfig
}

// NewGenreFilter creates a genre filter for the given genre.
func NewGenreFilter(genre string) *GenreFilter {
	return &GenreFilter{genre: genre, config: GenreConfig{Match: "contains"}}
}

func (f *GenreFilter) Name() string {
	return "genre"
}

func (f *GenreFilter) Description() string {
	return "Keeps tracks whose genre contains (or equals) the requested genre"
}

func (f *GenreFilter) ValidateConfig(settings map[string]any) error {
	var config GenreConfig
	if err := mapstructure.Decode(settings, &config); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&config); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(config); err != nil {
		return errors.Wrap(err, "validation failed")
	}
	f.config = config
	return nil
}

func (f *GenreFilter) Apply(c *catalog.Catalog, candidates []int) []int {
	result := make([]int, 0, len(candidates))
	for _, idx := range candidates {
		t, ok := c.At(idx)
		if !ok {
			continue
		}
		if f.config.Match == "exact" {
			if strings.EqualFold(t.Genre, f.genre) {
				result = append(result, idx)
			}
			continue
		}
		if t.MatchesGenre(f.genre) {
			result = append(result, idx)
		}
	}
	return result
}

func init() {
	Register("genre", func() Filter { return NewGenreFilter("") })
}
