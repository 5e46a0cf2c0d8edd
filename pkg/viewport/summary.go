package viewport

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/chartview/pkg/model"
)

// SeriesSummary describes one series over a set of points.
type SeriesSummary struct {
	Mean float64
	Min  float64
	Max  float64
}

// Summary describes both series over the visible slice.
type Summary struct {
	Count int
	A     SeriesSummary
	B     SeriesSummary
}

// Summarize computes per-series statistics for points. An empty slice yields
// the zero Summary.
func Summarize(points []model.DataPoint) Summary {
	if len(points) == 0 {
		return Summary{}
	}
	a := make([]float64, len(points))
	b := make([]float64, len(points))
	for i, p := range points {
		a[i] = p.ValueA
		b[i] = p.ValueB
	}
	return Summary{
		Count: len(points),
		A:     SeriesSummary{Mean: stat.Mean(a, nil), Min: floats.Min(a), Max: floats.Max(a)},
		B:     SeriesSummary{Mean: stat.Mean(b, nil), Min: floats.Min(b), Max: floats.Max(b)},
	}
}
