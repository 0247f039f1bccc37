package filter

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/sahilm/fuzzy"

	"github.com/osa030/radiola/internal/domain/catalog"
)

// TitleSearchConfig represents the configuration for TitleSearchFilter.
type TitleSearchConfig struct {
	Mode  string `yaml:"mode" mapstructure:"mode" default:"fuzzy" validate:"oneof=fuzzy substring"`
	Limit int    `yaml:"limit" mapstructure:"limit" validate:"gte=0"` // 0 means no limit
}

// TitleSearchFilter keeps tracks whose title matches a search query.
// In fuzzy mode results are reordered best match first.
type TitleSearchFilter struct {
	query  string
	config TitleSearchConfig
}

// NewTitleSearchFilter creates a title search filter.
func NewTitleSearchFilter(query string) *TitleSearchFilter {
	return &TitleSearchFilter{query: query, config: TitleSearchConfig{Mode: "fuzzy"}}
}

func (f *TitleSearchFilter) Name() string {
	return "title_search"
}

func (f *TitleSearchFilter) Description() string {
	return "Searches titles (fuzzy, best match first, or plain substring)"
}

func (f *TitleSearchFilter) ValidateConfig(settings map[string]any) error {
	var config TitleSearchConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &config,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}
	if err := decoder.Decode(settings); err != nil {
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

func (f *TitleSearchFilter) Apply(c *catalog.Catalog, candidates []int) []int {
	query := strings.TrimSpace(f.query)
	if query == "" {
		return candidates
	}

	result := make([]int, 0, len(candidates))
	if f.config.Mode == "substring" {
		lower := strings.ToLower(query)
		for _, idx := range candidates {
			if t, ok := c.At(idx); ok && strings.Contains(strings.ToLower(t.Title), lower) {
				result = append(result, idx)
			}
		}
	} else {
		titles := make([]string, len(candidates))
		for i, idx := range candidates {
			t, _ := c.At(idx)
			titles[i] = t.Title
		}
		for _, m := range fuzzy.Find(query, titles) {
			result = append(result, candidates[m.Index])
		}
	}

	if f.config.Limit > 0 && len(result) > f.config.Limit {
		result = result[:f.config.Limit]
	}
	return result
}

func init() {
	Register("title_search", func() Filter { return NewTitleSearchFilter("") })
}
