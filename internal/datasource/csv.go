package datasource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vanderheijden86/chartview/pkg/model"
)

func readCSVFile(path string) ([]model.DataPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses a header row followed by label,a,b records. The header's
// names are ignored so files written by the CSV export read back unchanged.
func ReadCSV(r io.Reader) ([]model.DataPoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv")
		}
		return nil, fmt.Errorf("csv header: %w", err)
	}

	var points []model.DataPoint
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		a, err := parseValue(rec[1])
		if err != nil {
			return nil, fmt.Errorf("csv line %d: series a: %w", line, err)
		}
		b, err := parseValue(rec[2])
		if err != nil {
			return nil, fmt.Errorf("csv line %d: series b: %w", line, err)
		}
		points = append(points, model.DataPoint{Label: strings.TrimSpace(rec[0]), ValueA: a, ValueB: b})
	}
	return points, nil
}

func parseValue(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
