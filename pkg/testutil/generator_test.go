package testutil

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestPoints_Deterministic(t *testing.T) {
	a := NewDefault().Points(20)
	b := NewDefault().Points(20)
	AssertSamePoints(t, a, b)
	AssertSequentialIndices(t, a)
}

func TestPoints_Labels(t *testing.T) {
	tests := []struct {
		name  string
		cfg   GeneratorConfig
		first string
		third string
	}{
		{"default", DefaultConfig(), "Jan 1", "Jan 3"},
		{"weekly", GeneratorConfig{Seed: 1, Step: 7 * 24 * time.Hour}, "Jan 1", "Jan 15"},
		{"iso", GeneratorConfig{Seed: 1, Layout: "2006-01-02"}, "2025-01-01", "2025-01-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := New(tt.cfg).Points(3)
			if pts[0].Label != tt.first || pts[2].Label != tt.third {
				t.Errorf("labels = %q, %q; want %q, %q", pts[0].Label, pts[2].Label, tt.first, tt.third)
			}
		})
	}
}

func TestPoints_WithinCeilings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Integers = true
	for _, p := range New(cfg).Points(200) {
		if p.ValueA < 0 || p.ValueA >= cfg.MaxA || p.ValueB < 0 || p.ValueB >= cfg.MaxB {
			t.Fatalf("point %s out of range: %v %v", p.Label, p.ValueA, p.ValueB)
		}
		if p.ValueA != float64(int(p.ValueA)) {
			t.Fatalf("point %s: %v is not whole", p.Label, p.ValueA)
		}
	}
}

func TestDataset(t *testing.T) {
	ds := NewDefault().Dataset(t, 7)
	if ds.Len() != 7 {
		t.Fatalf("Len = %d, want 7", ds.Len())
	}
	ds.ApplyHighlights([]int{1, 4})
	AssertHighlighted(t, ds, 1, 4)
}

func TestWriters(t *testing.T) {
	dir := t.TempDir()
	pts := Labeled("Jan 1", "Jan 2, 2025", "Jan 3")

	csvPath := WriteCSV(t, dir, "points.csv", pts)
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"Jan 2, 2025"`) {
		t.Errorf("label with comma not quoted:\n%s", data)
	}

	jsonPath := WriteJSON(t, dir, "points.json", pts)
	data, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"label": "Jan 3"`) {
		t.Errorf("unexpected json:\n%s", data)
	}

	dbPath := WriteSQLite(t, dir, "points.db", "points", pts)
	if fi, err := os.Stat(dbPath); err != nil || fi.Size() == 0 {
		t.Errorf("sqlite fixture missing: %v", err)
	}
}

func TestLabeled(t *testing.T) {
	pts := Labeled("a", "b")
	AssertPointCount(t, pts, 2)
	for _, p := range pts {
		if err := p.Validate(); err != nil {
			t.Errorf("%s: %v", p.Label, err)
		}
	}
}
