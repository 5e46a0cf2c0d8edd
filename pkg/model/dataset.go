package model

import "fmt"

// Dataset is the ordered, fixed-length sequence of points behind a chart.
// Insertion order defines the x axis. Only the highlight flags change after
// construction, and only through ApplyHighlights and ResetHighlights.
type Dataset struct {
	points []DataPoint
}

// NewDataset copies points into a dataset, renumbering Index to match the
// position of each point and clearing any highlight flags.
func NewDataset(points []DataPoint) (*Dataset, error) {
	ds := &Dataset{points: make([]DataPoint, len(points))}
	for i, p := range points {
		p.Index = i
		p.Highlighted = false
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		ds.points[i] = p
	}
	return ds, nil
}

// Len returns the number of points.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.points)
}

// At returns a copy of the point at index i.
func (d *Dataset) At(i int) DataPoint {
	return d.points[i]
}

// Label returns the label of the point at index i.
func (d *Dataset) Label(i int) string {
	return d.points[i].Label
}

// Points returns a copy of every point in order.
func (d *Dataset) Points() []DataPoint {
	if d == nil {
		return nil
	}
	out := make([]DataPoint, len(d.points))
	copy(out, d.points)
	return out
}

// Slice returns copies of the points in [lo, hi] inclusive. Bounds are
// clamped to the dataset; an inverted range yields nil.
func (d *Dataset) Slice(lo, hi int) []DataPoint {
	n := d.Len()
	if n == 0 {
		return nil
	}
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	if lo > hi {
		return nil
	}
	out := make([]DataPoint, hi-lo+1)
	copy(out, d.points[lo:hi+1])
	return out
}

// HighlightFlags returns the highlight flag of every point in order.
func (d *Dataset) HighlightFlags() []bool {
	flags := make([]bool, d.Len())
	for i := range flags {
		flags[i] = d.points[i].Highlighted
	}
	return flags
}

// HighlightedCount returns how many points are currently highlighted.
func (d *Dataset) HighlightedCount() int {
	n := 0
	for i := 0; i < d.Len(); i++ {
		if d.points[i].Highlighted {
			n++
		}
	}
	return n
}

// ApplyHighlights rewrites every flag in one pass: points at indices are
// highlighted, all others are cleared. Out-of-range indices are ignored.
func (d *Dataset) ApplyHighlights(indices []int) {
	if d == nil {
		return
	}
	marked := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		marked[i] = struct{}{}
	}
	for i := range d.points {
		_, ok := marked[i]
		d.points[i].Highlighted = ok
	}
}

// ResetHighlights clears every highlight flag.
func (d *Dataset) ResetHighlights() {
	d.ApplyHighlights(nil)
}
