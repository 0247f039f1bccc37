package playback

import (
	"github.com/cockroachdb/errors"
)

// AdvancePolicy decides what next/previous cycle over.
type AdvancePolicy string

const (
	AdvanceView    AdvancePolicy = "view"    // Cycle over the presented view
	AdvanceCatalog AdvancePolicy = "catalog" // Cycle over canonical indices, ignoring the view
)

// StartPolicy decides what toggle starts when nothing was ever selected.
type StartPolicy string

const (
	StartFirstVisible   StartPolicy = "first_visible"
	StartFirstInCatalog StartPolicy = "first_in_catalog"
)

// IndicatorPolicy decides when the now-playing indicator is shown.
type IndicatorPolicy string

const (
	IndicatorPlayingOnly IndicatorPolicy = "playing_only" // Cleared on pause, restored on resume
	IndicatorSelected    IndicatorPolicy = "selected"     // Kept until another track is chosen
)

// Policy is the set of selection policies. It is fixed for a session.
type Policy struct {
	Advance   AdvancePolicy
	Start     StartPolicy
	Indicator IndicatorPolicy
}

// DefaultPolicy returns the default selection policies.
func DefaultPolicy() Policy {
	return Policy{
		Advance:   AdvanceView,
		Start:     StartFirstVisible,
		Indicator: IndicatorPlayingOnly,
	}
}

// ParsePolicy builds a Policy from config strings. Empty strings take defaults.
func ParsePolicy(advance, start, indicator string) (Policy, error) {
	p := DefaultPolicy()

	switch AdvancePolicy(advance) {
	case "":
	case AdvanceView, AdvanceCatalog:
		p.Advance = AdvancePolicy(advance)
	default:
		return Policy{}, errors.Newf("unknown advance policy: %s", advance)
	}

	switch StartPolicy(start) {
	case "":
	case StartFirstVisible, StartFirstInCatalog:
		p.Start = StartPolicy(start)
	default:
		return Policy{}, errors.Newf("unknown start policy: %s", start)
	}

	switch IndicatorPolicy(indicator) {
	case "":
	case IndicatorPlayingOnly, IndicatorSelected:
		p.Indicator = IndicatorPolicy(indicator)
	default:
		return Policy{}, errors.Newf("unknown indicator policy: %s", indicator)
	}

	return p, nil
}
