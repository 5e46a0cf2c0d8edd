package model

import (
	"errors"
	"math"
	"testing"
)

func TestNewDatasetRenumbersAndClears(t *testing.T) {
	points := []DataPoint{
		{Index: 7, Label: "a", Highlighted: true},
		{Index: 3, Label: "b"},
	}
	ds, err := NewDataset(points)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	for i := 0; i < ds.Len(); i++ {
		p := ds.At(i)
		if p.Index != i {
			t.Errorf("point %d has index %d", i, p.Index)
		}
		if p.Highlighted {
			t.Errorf("point %d should not be highlighted", i)
		}
	}
	// The caller's slice is not aliased.
	points[0].Label = "changed"
	if ds.Label(0) != "a" {
		t.Errorf("dataset aliased caller slice, label = %q", ds.Label(0))
	}
}

func TestNewDatasetRejectsInvalidPoints(t *testing.T) {
	tests := []struct {
		name  string
		point DataPoint
	}{
		{"empty label", DataPoint{Label: "  "}},
		{"nan a", DataPoint{Label: "x", ValueA: math.NaN()}},
		{"inf b", DataPoint{Label: "x", ValueB: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDataset([]DataPoint{tt.point}); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	_, err := NewDataset([]DataPoint{{Label: ""}})
	if !errors.Is(err, ErrEmptyLabel) {
		t.Errorf("expected ErrEmptyLabel, got %v", err)
	}
}

func TestApplyHighlightsIsFullPass(t *testing.T) {
	ds, _ := NewDataset(SamplePoints())

	ds.ApplyHighlights([]int{1, 2})
	ds.ApplyHighlights([]int{4, 99, -1})

	want := []bool{false, false, false, false, true, false, false, false}
	got := ds.HighlightFlags()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("flags = %v, want %v", got, want)
		}
	}
	if ds.HighlightedCount() != 1 {
		t.Errorf("HighlightedCount = %d, want 1", ds.HighlightedCount())
	}

	ds.ResetHighlights()
	if ds.HighlightedCount() != 0 {
		t.Errorf("ResetHighlights left %d flags set", ds.HighlightedCount())
	}
}

func TestSliceClampsBounds(t *testing.T) {
	ds, _ := NewDataset(SamplePoints())

	tests := []struct {
		lo, hi  int
		wantLen int
		first   string
	}{
		{2, 6, 5, "Jan 09"},
		{-3, 1, 2, "Jan 03"},
		{6, 20, 2, "Jan 21"},
		{5, 4, 0, ""},
	}
	for _, tt := range tests {
		got := ds.Slice(tt.lo, tt.hi)
		if len(got) != tt.wantLen {
			t.Errorf("Slice(%d,%d) len = %d, want %d", tt.lo, tt.hi, len(got), tt.wantLen)
			continue
		}
		if tt.wantLen > 0 && got[0].Label != tt.first {
			t.Errorf("Slice(%d,%d)[0] = %q, want %q", tt.lo, tt.hi, got[0].Label, tt.first)
		}
	}
}

func TestNilDataset(t *testing.T) {
	var ds *Dataset
	if ds.Len() != 0 {
		t.Error("nil dataset should have length 0")
	}
	if ds.Points() != nil {
		t.Error("nil dataset should have no points")
	}
	ds.ApplyHighlights([]int{0})
}
