// Package state provides session state management.
package state

import "github.com/cockroachdb/errors"

// Phase represents the session lifecycle phase.
type Phase int

const (
	PhaseLoading Phase = iota // Catalog is being fetched; transport is inert
	PhaseReady                // Catalog loaded; player usable
	PhaseFailed               // Catalog load failed; transport stays inert
	PhaseClosed               // Session torn down
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, ph := range []Phase{PhaseLoading, PhaseReady, PhaseFailed, PhaseClosed} {
		if ph.String() == string(text) {
			*p = ph
			return nil
		}
	}
	return errors.Newf("unknown phase: %q", text)
}
