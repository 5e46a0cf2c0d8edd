// Package viewport implements the zoom/pan/search state machine behind the
// dual-axis chart.
//
// A Viewport owns the current ZoomDomain (the visible window on the x axis
// and on both y axes) and the highlight flags of its dataset. Every input
// (wheel, drag, button, search) produces a candidate domain which passes
// through a single Guard before it becomes visible state:
//
//	vp, _ := viewport.New(ds)
//	b := vp.Mount()
//	defer b.Release()
//	b.Wheel(viewport.WheelEvent{Delta: -1, CursorX: 0.5})
//	visible := vp.Visible()
//
// The type is driven from a single event loop and does no locking.
package viewport

import (
	"errors"
	"fmt"
	"math"
)

// Fixed scale limits of the chart.
const (
	// Y1Ceil is the top of the left axis (series A).
	Y1Ceil = 5.0
	// Y2Ceil is the top of the right axis (series B).
	Y2Ceil = 10.0
	// MinRange is the smallest width any axis may be zoomed to.
	MinRange = 0.5
	// ZoomStep is the fraction of an axis width consumed per zoom step.
	ZoomStep = 0.1
)

// gridScale is the resolution accepted domains are snapped to (2^-32). Sums
// and differences of on-grid values below 2^21 are exact in float64, so a
// pan never changes a width.
const gridScale = 1 << 32

// snap rounds v to the nearest multiple of 1/gridScale.
func snap(v float64) float64 {
	return math.Round(v*gridScale) / gridScale
}

var (
	// ErrInvariant is returned by the guard for a rejected candidate domain.
	ErrInvariant = errors.New("zoom domain violates invariants")
	// ErrInsufficientData is returned when a dataset cannot span an x range.
	ErrInsufficientData = errors.New("dataset needs at least two points")
)

// Range is a closed interval on one axis.
type Range struct {
	Min float64
	Max float64
}

// Width returns Max - Min.
func (r Range) Width() float64 {
	return r.Max - r.Min
}

// Shift moves the range by delta without changing its width.
func (r Range) Shift(delta float64) Range {
	return Range{Min: r.Min + delta, Max: r.Max + delta}
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// contract pulls each end inward by the given fraction of the width.
// Negative fractions expand the range.
func (r Range) contract(lowFrac, highFrac float64) Range {
	w := r.Width()
	return Range{Min: r.Min + w*lowFrac, Max: r.Max - w*highFrac}
}

// clamp limits each end to [0, ceil] independently.
func (r Range) clamp(ceil float64) Range {
	return Range{Min: math.Max(0, r.Min), Max: math.Min(ceil, r.Max)}
}

// reflect repositions the range flush against whichever limit it crosses,
// keeping its width. The width must not exceed ceil.
func (r Range) reflect(ceil float64) Range {
	w := r.Width()
	if r.Min < 0 {
		r = Range{Min: 0, Max: w}
	}
	if r.Max > ceil {
		r = Range{Min: ceil - w, Max: ceil}
	}
	return r
}

func (r Range) snap() Range {
	return Range{Min: snap(r.Min), Max: snap(r.Max)}
}

func (r Range) finite() bool {
	return !math.IsNaN(r.Min) && !math.IsNaN(r.Max) &&
		!math.IsInf(r.Min, 0) && !math.IsInf(r.Max, 0)
}

func (r Range) String() string {
	return fmt.Sprintf("[%.3f, %.3f]", r.Min, r.Max)
}

// ZoomDomain is the visible window: the x range in index space and one range
// per y axis in value space. Domains are replaced, never edited in place.
type ZoomDomain struct {
	X  Range
	Y1 Range
	Y2 Range
}

func (d ZoomDomain) String() string {
	return fmt.Sprintf("x=%s y1=%s y2=%s", d.X, d.Y1, d.Y2)
}

// Bounds holds the upper limit of each axis; every lower limit is zero.
type Bounds struct {
	X  float64
	Y1 float64
	Y2 float64
}

// BoundsFor returns the axis limits for a dataset of n points.
func BoundsFor(n int) Bounds {
	return Bounds{X: float64(n - 1), Y1: Y1Ceil, Y2: Y2Ceil}
}

// FullExtent returns the default domain for a dataset of n points.
func FullExtent(n int) ZoomDomain {
	b := BoundsFor(n)
	return ZoomDomain{
		X:  Range{Min: 0, Max: b.X},
		Y1: Range{Min: 0, Max: b.Y1},
		Y2: Range{Min: 0, Max: b.Y2},
	}
}

// Guard enforces the domain invariants. It is the only place they are checked.
type Guard struct {
	bounds Bounds
}

// NewGuard returns a guard for a dataset of n points.
func NewGuard(n int) Guard {
	return Guard{bounds: BoundsFor(n)}
}

// Bounds returns the limits the guard clamps to.
func (g Guard) Bounds() Bounds {
	return g.bounds
}

// ClampOrReject clamps every axis of candidate to its limits, snaps it to
// the domain grid and accepts the result only if every axis still spans at
// least MinRange. A rejected candidate is discarded as a whole; no axis is
// applied on its own.
func (g Guard) ClampOrReject(candidate ZoomDomain) (ZoomDomain, error) {
	out := ZoomDomain{
		X:  candidate.X.clamp(g.bounds.X).snap(),
		Y1: candidate.Y1.clamp(g.bounds.Y1).snap(),
		Y2: candidate.Y2.clamp(g.bounds.Y2).snap(),
	}
	for _, ax := range []struct {
		name string
		r    Range
	}{{"x", out.X}, {"y1", out.Y1}, {"y2", out.Y2}} {
		if !ax.r.finite() {
			return ZoomDomain{}, fmt.Errorf("%w: %s is not finite", ErrInvariant, ax.name)
		}
		if ax.r.Width() < MinRange {
			return ZoomDomain{}, fmt.Errorf("%w: %s width %.3f below %.1f", ErrInvariant, ax.name, ax.r.Width(), MinRange)
		}
	}
	return out, nil
}

// Validate reports whether d already satisfies every invariant unchanged.
func (g Guard) Validate(d ZoomDomain) error {
	got, err := g.ClampOrReject(d)
	if err != nil {
		return err
	}
	if got != d {
		return fmt.Errorf("%w: %s outside bounds", ErrInvariant, d)
	}
	return nil
}
