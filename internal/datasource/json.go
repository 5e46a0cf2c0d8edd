package datasource

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/chartview/pkg/model"
)

// jsonPoint is the on-disk shape of one point.
type jsonPoint struct {
	Label string   `json:"label"`
	A     *float64 `json:"a"`
	B     *float64 `json:"b"`
}

func readJSONFile(path string) ([]model.DataPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// ReadJSON parses an array of {"label","a","b"} objects. Both values are
// required.
func ReadJSON(r io.Reader) ([]model.DataPoint, error) {
	var raw []jsonPoint
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	points := make([]model.DataPoint, 0, len(raw))
	for i, p := range raw {
		if p.A == nil || p.B == nil {
			return nil, fmt.Errorf("entry %d (%q): missing value", i, p.Label)
		}
		points = append(points, model.DataPoint{Label: p.Label, ValueA: *p.A, ValueB: *p.B})
	}
	return points, nil
}
