package viewport

import (
	"math"

	"github.com/vanderheijden86/chartview/pkg/model"
)

// VisibleBounds converts the continuous x range into inclusive point indices:
// floor of the left edge through ceil of the right edge, so partly visible
// edge points are kept. The result is cut to [0, n-1].
func VisibleBounds(d ZoomDomain, n int) (lo, hi int) {
	lo = int(math.Floor(d.X.Min))
	hi = int(math.Ceil(d.X.Max))
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}

// Project returns the points inside the domain's x range. It has no side
// effects and is cheap enough to call on every render.
func Project(d ZoomDomain, ds *model.Dataset) []model.DataPoint {
	if ds.Len() == 0 {
		return nil
	}
	lo, hi := VisibleBounds(d, ds.Len())
	return ds.Slice(lo, hi)
}
