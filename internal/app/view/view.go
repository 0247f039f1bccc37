// Package view provides the presented view: the displayed subset of the catalog.
package view

// View is an ordered sequence of canonical catalog indices, as presented to
// the user. It keeps an explicit canonical-to-position map so lookups never
// scan the presented entries.
// A View is immutable; filtering produces a new one.
type View struct {
	indices    []int
	positionOf map[int]int
}

// New creates a view from canonical indices in presentation order.
// Duplicate indices are dropped, keeping the first occurrence.
func New(indices []int) *View {
	v := &View{
		indices:    make([]int, 0, len(indices)),
		positionOf: make(map[int]int, len(indices)),
	}
	for _, idx := range indices {
		if _, dup := v.positionOf[idx]; dup {
			continue
		}
		v.positionOf[idx] = len(v.indices)
		v.indices = append(v.indices, idx)
	}
	return v
}

// All creates a view presenting every canonical index 0..n-1 in order.
func All(n int) *View {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return New(indices)
}

// Empty returns a view with no entries.
func Empty() *View {
	return New(nil)
}

// Len returns the number of presented entries.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.indices)
}

// IsEmpty reports whether nothing is presented.
func (v *View) IsEmpty() bool {
	return v.Len() == 0
}

// CanonicalAt returns the canonical index presented at position pos.
func (v *View) CanonicalAt(pos int) (int, bool) {
	if pos < 0 || pos >= v.Len() {
		return -1, false
	}
	return v.indices[pos], true
}

// PositionOf returns the presentation position of a canonical index.
func (v *View) PositionOf(canonical int) (int, bool) {
	if v == nil {
		return -1, false
	}
	pos, ok := v.positionOf[canonical]
	if !ok {
		return -1, false
	}
	return pos, true
}

// Contains reports whether a canonical index is presented.
func (v *View) Contains(canonical int) bool {
	_, ok := v.PositionOf(canonical)
	return ok
}

// First returns the canonical index of the first presented entry.
func (v *View) First() (int, bool) {
	return v.CanonicalAt(0)
}

// Indices returns a copy of the presented canonical indices.
func (v *View) Indices() []int {
	result := make([]int, v.Len())
	if v != nil {
		copy(result, v.indices)
	}
	return result
}

// Step moves from the entry presenting canonical by dir positions, wrapping
// around the view, and returns the canonical index found there.
// When canonical is not presented the first entry is returned.
func (v *View) Step(canonical, dir int) (int, bool) {
	n := v.Len()
	if n == 0 {
		return -1, false
	}
	pos, ok := v.PositionOf(canonical)
	if !ok {
		return v.indices[0], true
	}
	next := ((pos+dir)%n + n) % n
	return v.indices[next], true
}
