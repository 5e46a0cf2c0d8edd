package viewport

import "math"

// WheelEvent is one wheel notch over the chart. Delta follows the DOM
// convention: negative scrolls up (zoom in), positive scrolls down (zoom out).
// CursorX is the pointer position across the plot area, 0 at the left edge and
// 1 at the right edge.
type WheelEvent struct {
	Delta   float64
	CursorX float64
}

// ZoomInCandidate contracts every axis by ZoomStep of its width on each side.
func ZoomInCandidate(d ZoomDomain) ZoomDomain {
	return ZoomDomain{
		X:  d.X.contract(ZoomStep, ZoomStep),
		Y1: d.Y1.contract(ZoomStep, ZoomStep),
		Y2: d.Y2.contract(ZoomStep, ZoomStep),
	}
}

// ZoomOutCandidate expands every axis by ZoomStep of its width on each side.
// The guard clamps the result to the axis limits.
func ZoomOutCandidate(d ZoomDomain) ZoomDomain {
	return ZoomDomain{
		X:  d.X.contract(-ZoomStep, -ZoomStep),
		Y1: d.Y1.contract(-ZoomStep, -ZoomStep),
		Y2: d.Y2.contract(-ZoomStep, -ZoomStep),
	}
}

// WheelCandidate zooms about the cursor on the x axis and about the center on
// both y axes. The x contraction is split cursorX on the left and 1-cursorX on
// the right, so the data under the cursor stays put. ok is false for a zero
// delta.
func WheelCandidate(d ZoomDomain, ev WheelEvent) (ZoomDomain, bool) {
	if ev.Delta == 0 {
		return d, false
	}
	mx := clamp01(ev.CursorX)
	step := ZoomStep
	if ev.Delta > 0 {
		step = -ZoomStep
	}
	return ZoomDomain{
		X:  d.X.contract(step*mx, step*(1-mx)),
		Y1: d.Y1.contract(step*0.5, step*0.5),
		Y2: d.Y2.contract(step*0.5, step*0.5),
	}, true
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0.5
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
