package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/vanderheijden86/chartview/pkg/debug"
	"github.com/vanderheijden86/chartview/pkg/metrics"
	"github.com/vanderheijden86/chartview/pkg/model"
)

// Columns names the label column and the two series in exported files.
type Columns struct {
	Label   string
	SeriesA string
	SeriesB string
}

// DefaultColumns matches the original orders dashboard.
func DefaultColumns() Columns {
	return Columns{Label: "Date", SeriesA: "Number of orders", SeriesB: "Payments"}
}

func (c Columns) withDefaults() Columns {
	def := DefaultColumns()
	if c.Label == "" {
		c.Label = def.Label
	}
	if c.SeriesA == "" {
		c.SeriesA = def.SeriesA
	}
	if c.SeriesB == "" {
		c.SeriesB = def.SeriesB
	}
	return c
}

// Header returns the header row.
func (c Columns) Header() []string {
	c = c.withDefaults()
	return []string{c.Label, c.SeriesA, c.SeriesB}
}

// WriteCSV writes a header row followed by one row per point, in order.
func WriteCSV(w io.Writer, points []model.DataPoint, cols Columns) error {
	defer metrics.TimerWithCallback(metrics.CSVExport, func(d time.Duration) {
		debug.LogTiming(fmt.Sprintf("csv export (%d rows)", len(points)), d)
	})()

	cw := csv.NewWriter(w)
	if err := cw.Write(cols.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range points {
		rec := []string{p.Label, formatValue(p.ValueA), formatValue(p.ValueB)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", p.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVString renders points as CSV text, for the clipboard.
func CSVString(points []model.DataPoint, cols Columns) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, points, cols); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
