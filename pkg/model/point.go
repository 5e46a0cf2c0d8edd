// Package model defines the chart data shared by the viewport, the renderers
// and the data sources.
package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrEmptyLabel is returned by Validate for a point without a label.
var ErrEmptyLabel = errors.New("point label is empty")

// DataPoint is one labeled x-axis position carrying a value for each series.
// Series A is plotted against the left axis, series B against the right one.
type DataPoint struct {
	Index       int     `json:"index"`
	Label       string  `json:"label"`
	ValueA      float64 `json:"a"`
	ValueB      float64 `json:"b"`
	Highlighted bool    `json:"highlighted,omitempty"`
}

// Validate reports whether the point can be placed on the chart.
func (p DataPoint) Validate() error {
	if strings.TrimSpace(p.Label) == "" {
		return ErrEmptyLabel
	}
	if p.Index < 0 {
		return fmt.Errorf("point %q: negative index %d", p.Label, p.Index)
	}
	if math.IsNaN(p.ValueA) || math.IsInf(p.ValueA, 0) {
		return fmt.Errorf("point %q: series A value is not finite", p.Label)
	}
	if math.IsNaN(p.ValueB) || math.IsInf(p.ValueB, 0) {
		return fmt.Errorf("point %q: series B value is not finite", p.Label)
	}
	return nil
}
