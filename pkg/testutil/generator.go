// Package testutil provides deterministic dataset fixtures for tests and
// writers that put them on disk in each supported source format.
package testutil

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/chartview/pkg/model"
)

// GeneratorConfig controls point generation.
type GeneratorConfig struct {
	Seed     int64         // Random seed for determinism (0 = use current time)
	BaseTime time.Time     // Date of the first label (default: fixed date)
	Step     time.Duration // Distance between labels (default: one day)
	Layout   string        // Label time layout (default: "Jan 2")
	MaxA     float64       // Series A values fall in [0, MaxA)
	MaxB     float64       // Series B values fall in [0, MaxB)
	Integers bool          // Round values to whole numbers
}

// DefaultConfig returns a config whose values fit the default y axes.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:     42, // Deterministic
		BaseTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Step:     24 * time.Hour,
		Layout:   "Jan 2",
		MaxA:     5,
		MaxB:     10,
	}
}

// Generator creates point fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	def := DefaultConfig()
	if cfg.BaseTime.IsZero() {
		cfg.BaseTime = def.BaseTime
	}
	if cfg.Step <= 0 {
		cfg.Step = def.Step
	}
	if cfg.Layout == "" {
		cfg.Layout = def.Layout
	}
	if cfg.MaxA <= 0 {
		cfg.MaxA = def.MaxA
	}
	if cfg.MaxB <= 0 {
		cfg.MaxB = def.MaxB
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// Points returns n consecutive dated points.
func (g *Generator) Points(n int) []model.DataPoint {
	points := make([]model.DataPoint, n)
	for i := range points {
		points[i] = model.DataPoint{
			Index:  i,
			Label:  g.cfg.BaseTime.Add(time.Duration(i) * g.cfg.Step).Format(g.cfg.Layout),
			ValueA: g.value(g.cfg.MaxA),
			ValueB: g.value(g.cfg.MaxB),
		}
	}
	return points
}

// Dataset returns n points wrapped in a Dataset. It fails the test when the
// points are rejected.
func (g *Generator) Dataset(t testing.TB, n int) *model.Dataset {
	t.Helper()
	ds, err := model.NewDataset(g.Points(n))
	if err != nil {
		t.Fatalf("generated dataset: %v", err)
	}
	return ds
}

// Labeled returns one point per label with values derived from the index.
func Labeled(labels ...string) []model.DataPoint {
	points := make([]model.DataPoint, len(labels))
	for i, l := range labels {
		points[i] = model.DataPoint{
			Index:  i,
			Label:  l,
			ValueA: float64(i%5) + 0.5,
			ValueB: float64(i%10) + 0.25,
		}
	}
	return points
}

func (g *Generator) value(ceil float64) float64 {
	v := g.rng.Float64() * ceil
	if g.cfg.Integers {
		return float64(int(v))
	}
	return v
}

// ============================================================================
// Fixture writers
// ============================================================================

// WriteCSV writes points to dir/name as label,value_a,value_b with a header.
func WriteCSV(t testing.TB, dir, name string, points []model.DataPoint) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := [][]string{{"label", "value_a", "value_b"}}
	for _, p := range points {
		rows = append(rows, []string{
			p.Label,
			strconv.FormatFloat(p.ValueA, 'f', -1, 64),
			strconv.FormatFloat(p.ValueB, 'f', -1, 64),
		})
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteJSON writes points to dir/name as an array of {label, a, b}.
func WriteJSON(t testing.TB, dir, name string, points []model.DataPoint) string {
	t.Helper()
	type row struct {
		Label string  `json:"label"`
		A     float64 `json:"a"`
		B     float64 `json:"b"`
	}
	rows := make([]row, len(points))
	for i, p := range points {
		rows[i] = row{Label: p.Label, A: p.ValueA, B: p.ValueB}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteSQLite creates dir/name holding points in table, inserted in order.
func WriteSQLite(t testing.TB, dir, name, table string, points []model.DataPoint) string {
	t.Helper()
	path := filepath.Join(dir, name)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()

	stmt := fmt.Sprintf("CREATE TABLE %s (label TEXT NOT NULL, value_a REAL, value_b REAL)", table)
	if _, err := db.Exec(stmt); err != nil {
		t.Fatalf("create table: %v", err)
	}
	insert := fmt.Sprintf("INSERT INTO %s (label, value_a, value_b) VALUES (?, ?, ?)", table)
	for _, p := range points {
		if _, err := db.Exec(insert, p.Label, p.ValueA, p.ValueB); err != nil {
			t.Fatalf("insert %q: %v", p.Label, err)
		}
	}
	return path
}
