package viewport

import "strconv"

// DefaultTickCount is the number of labeled ticks drawn on each y axis.
const DefaultTickCount = 6

// Ticks returns n evenly spaced values from r.Min to r.Max inclusive.
func Ticks(r Range, n int) []float64 {
	if n < 2 {
		return []float64{r.Min}
	}
	step := r.Width() / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Min + step*float64(i)
	}
	out[n-1] = r.Max
	return out
}

// FormatTick renders an axis value with one decimal.
func FormatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
