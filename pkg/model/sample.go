package model

// SamplePoints returns the built-in demo series used when no data source is
// configured: order counts and payment totals for January.
func SamplePoints() []DataPoint {
	return []DataPoint{
		{Label: "Jan 03", ValueA: 1.4, ValueB: 1.0},
		{Label: "Jan 06", ValueA: 2.0, ValueB: 3.0},
		{Label: "Jan 09", ValueA: 2.5, ValueB: 3.5},
		{Label: "Jan 12", ValueA: 1.5, ValueB: 4.0},
		{Label: "Jan 15", ValueA: 2.4, ValueB: 4.2},
		{Label: "Jan 18", ValueA: 2.7, ValueB: 4.8},
		{Label: "Jan 21", ValueA: 3.8, ValueB: 6.5},
		{Label: "Jan 27", ValueA: 4.5, ValueB: 8.2},
	}
}
