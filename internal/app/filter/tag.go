package filter

import (
	"github.com/osa030/radiola/internal/domain/catalog"
)

// TagFilter keeps tracks carrying a tag, ignoring case.
type TagFilter struct {
	tag string
}

// NewTagFilter creates a tag filter for the given tag.
func NewTagFilter(tag string) *TagFilter {
	return &TagFilter{tag: tag}
}

func (f *TagFilter) Name() string {
	return "tag"
}

func (f *TagFilter) Description() string {
	return "Keeps tracks carrying the requested tag"
}

func (f *TagFilter) ValidateConfig(settings map[string]any) error {
	// No configuration needed
	return nil
}

func (f *TagFilter) Apply(c *catalog.Catalog, candidates []int) []int {
	result := make([]int, 0, len(candidates))
	for _, idx := range candidates {
		if t, ok := c.At(idx); ok && t.HasTag(f.tag) {
			result = append(result, idx)
		}
	}
	return result
}

func init() {
	Register("tag", func() Filter { return NewTagFilter("") })
}
