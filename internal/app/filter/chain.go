package filter

import (
	"github.com/osa030/radiola/internal/app/view"
	"github.com/osa030/radiola/internal/domain/catalog"
)

// Chain executes filters in sequence.
type Chain struct {
	filters []Filter
}

// NewChain creates a new filter chain.
func NewChain() *Chain {
	return &Chain{
		filters: make([]Filter, 0),
	}
}

// Add adds a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Execute runs all filters over the full catalog and returns the resulting view.
// An empty chain presents the whole catalog in canonical order.
func (c *Chain) Execute(cat *catalog.Catalog) *view.View {
	candidates := view.All(cat.Len()).Indices()
	for _, f := range c.filters {
		candidates = f.Apply(cat, candidates)
		if len(candidates) == 0 {
			break
		}
	}
	return view.New(candidates)
}

// Filters returns all filters in the chain.
func (c *Chain) Filters() []Filter {
	return c.filters
}
