// SPDX-License-Identifier: EPL-2.0

package bridge

import "math"

// ChangeSet is a bit set of group positions within a layout.
type ChangeSet uint32

func (c ChangeSet) Has(group int) bool { return c&(1<<uint(group)) != 0 }
func (c ChangeSet) Empty() bool        { return c == 0 }

func (c ChangeSet) with(group int) ChangeSet { return c | 1<<uint(group) }

// Detector keeps the last applied value of every channel and reports which
// groups of a new snapshot differ from it.
type Detector struct {
	groups    []Group
	prev      []float32
	tolerance float32
}

// NewDetector starts from all zeros. A zero tolerance means strict
// inequality, so NaN always counts as a change.
func NewDetector(layout *Layout, tolerance float32) *Detector {
	return &Detector{
		groups:    layout.Groups(),
		prev:      make([]float32, layout.Channels()),
		tolerance: tolerance,
	}
}

// Changed compares values with the last applied snapshot without updating it.
func (d *Detector) Changed(values []float32) ChangeSet {
	var set ChangeSet
	for gi, g := range d.groups {
		from, to := g.Channels()
		for ch := from; ch < to; ch++ {
			if d.differs(values[ch], d.prev[ch]) {
				set = set.with(gi)
				break
			}
		}
	}

	return set
}

func (d *Detector) differs(a, b float32) bool {
	if d.tolerance == 0 {
		return a != b
	}
	diff := math.Abs(float64(a) - float64(b))

	return diff > float64(d.tolerance) || math.IsNaN(diff)
}

// Commit records the groups in set as applied with values.
func (d *Detector) Commit(values []float32, set ChangeSet) {
	for gi, g := range d.groups {
		if !set.Has(gi) {
			continue
		}
		from, to := g.Channels()
		copy(d.prev[from:to], values[from:to])
	}
}

// Previous returns a copy of the last applied values.
func (d *Detector) Previous() []float32 {
	return append([]float32(nil), d.prev...)
}
