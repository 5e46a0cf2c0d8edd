package testutil

import (
	"math"
	"testing"

	"github.com/vanderheijden86/chartview/pkg/model"
)

// AssertPointCount verifies the expected number of points.
func AssertPointCount(t *testing.T, points []model.DataPoint, expected int) {
	t.Helper()
	if len(points) != expected {
		t.Errorf("expected %d points, got %d", expected, len(points))
	}
}

// AssertSamePoints verifies labels and values match in order. Index and
// highlight state are ignored.
func AssertSamePoints(t *testing.T, got, want []model.DataPoint) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Label != w.Label {
			t.Errorf("point %d: label %q, want %q", i, g.Label, w.Label)
		}
		if !approxEqual(g.ValueA, w.ValueA) || !approxEqual(g.ValueB, w.ValueB) {
			t.Errorf("point %d (%s): values (%v, %v), want (%v, %v)",
				i, w.Label, g.ValueA, g.ValueB, w.ValueA, w.ValueB)
		}
	}
}

// AssertSequentialIndices verifies point i carries Index i.
func AssertSequentialIndices(t *testing.T, points []model.DataPoint) {
	t.Helper()
	for i, p := range points {
		if p.Index != i {
			t.Errorf("point %d (%s) has index %d", i, p.Label, p.Index)
		}
	}
}

// AssertHighlighted verifies exactly the given indices are highlighted.
func AssertHighlighted(t *testing.T, ds *model.Dataset, want ...int) {
	t.Helper()
	expected := make(map[int]bool, len(want))
	for _, i := range want {
		expected[i] = true
	}
	for i, on := range ds.HighlightFlags() {
		if on != expected[i] {
			t.Errorf("point %d (%s): highlighted=%v, want %v", i, ds.Label(i), on, expected[i])
		}
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
