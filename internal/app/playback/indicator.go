package playback

import "github.com/osa030/radiola/internal/app/view"

// Indicator holds the now-playing marks for every presented entry.
type Indicator struct {
	target int
	marks  []bool
}

// NewIndicator creates an indicator with nothing highlighted.
func NewIndicator() *Indicator {
	return &Indicator{target: -1}
}

// Sync marks the entry presenting canonical index target and unmarks all
// others. A negative target clears every mark. Sync is idempotent.
func (ind *Indicator) Sync(v *view.View, target int) {
	n := v.Len()
	if cap(ind.marks) < n {
		ind.marks = make([]bool, n)
	}
	ind.marks = ind.marks[:n]

	for pos := 0; pos < n; pos++ {
		canonical, _ := v.CanonicalAt(pos)
		ind.marks[pos] = target >= 0 && canonical == target
	}
	ind.target = target
}

// Target returns the canonical index the indicator points at, or -1.
func (ind *Indicator) Target() int {
	return ind.target
}

// IsHighlighted reports whether the entry at view position pos is marked.
func (ind *Indicator) IsHighlighted(pos int) bool {
	return pos >= 0 && pos < len(ind.marks) && ind.marks[pos]
}

// Highlighted returns the marked view positions.
func (ind *Indicator) Highlighted() []int {
	result := make([]int, 0, 1)
	for pos, marked := range ind.marks {
		if marked {
			result = append(result, pos)
		}
	}
	return result
}
