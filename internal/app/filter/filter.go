// Package filter provides the filter chain that builds the presented view.
package filter

import (
	"github.com/osa030/radiola/internal/domain/catalog"
)

// Filter narrows and/or reorders candidate canonical indices.
type Filter interface {
	// Name returns the filter name (used in config).
	Name() string
	// Description returns a human-readable description.
	Description() string
	// ValidateConfig validates and applies the filter settings.
	ValidateConfig(settings map[string]any) error
	// Apply returns the candidates that pass the filter, in presentation order.
	Apply(c *catalog.Catalog, candidates []int) []int
}

// registry holds registered filter factories.
var registry = make(map[string]func() Filter)

// Register registers a filter factory.
func Register(name string, factory func() Filter) {
	registry[name] = factory
}

// GetRegistered returns all registered filter factories.
func GetRegistered() map[string]func() Filter {
	return registry
}
