// Package share hands share URLs to the first working share surface.
package share

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// ErrNoSurface is returned when no surface accepted the share.
var ErrNoSurface = errors.New("no share surface available")

// Surface is a place a share URL can be handed to (a native share command,
// the system clipboard).
type Surface interface {
	// Name returns the surface name for logs and results.
	Name() string
	// Available reports whether the surface can be used on this host.
	Available() bool
	// Share hands the URL over.
	Share(ctx context.Context, title, url string) error
}

// Result describes a completed share.
type Result struct {
	URL     string `json:"url"`
	Surface string `json:"surface"`
}

// Sharer tries surfaces in order; native surfaces first, clipboard last.
type Sharer struct {
	surfaces []Surface
}

// NewSharer creates a sharer over surfaces in preference order.
func NewSharer(surfaces ...Surface) *Sharer {
	return &Sharer{surfaces: surfaces}
}

// Share hands url to the first available surface that succeeds.
// Failures never change player state; the caller shows an alert.
func (s *Sharer) Share(ctx context.Context, title, url string) (Result, error) {
	var errs error
	for _, surface := range s.surfaces {
		if !surface.Available() {
			continue
		}
		if err := surface.Share(ctx, title, url); err != nil {
			zlog.Warn().Err(err).Msgf("share: surface failed: surface=%s", surface.Name())
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "surface %s", surface.Name()))
			continue
		}
		zlog.Info().Msgf("share: shared: surface=%s url=%s", surface.Name(), url)
		return Result{URL: url, Surface: surface.Name()}, nil
	}

	if errs != nil {
		return Result{URL: url}, errors.WithSecondaryError(ErrNoSurface, errs)
	}
	return Result{URL: url}, ErrNoSurface
}

// Surfaces returns the names of the available surfaces.
func (s *Sharer) Surfaces() []string {
	names := make([]string, 0, len(s.surfaces))
	for _, surface := range s.surfaces {
		if surface.Available() {
			names = append(names, surface.Name())
		}
	}
	return names
}
