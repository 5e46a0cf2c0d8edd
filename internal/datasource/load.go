package datasource

import (
	"fmt"
	"time"

	"github.com/vanderheijden86/chartview/pkg/debug"
	"github.com/vanderheijden86/chartview/pkg/metrics"
	"github.com/vanderheijden86/chartview/pkg/model"
)

// Load resolves path and reads a dataset from it. An empty path yields the
// built-in sample.
func Load(path, table string) (*model.Dataset, Source, error) {
	src, err := Resolve(path, table)
	if err != nil {
		return nil, src, err
	}
	ds, err := LoadFromSource(src)
	return ds, src, err
}

// LoadFromSource reads a dataset, dispatching to the reader for the
// source's type.
func LoadFromSource(src Source) (*model.Dataset, error) {
	defer metrics.TimerWithCallback(metrics.DatasetLoad, func(d time.Duration) {
		debug.LogTiming("load "+src.String(), d)
	})()

	var (
		points []model.DataPoint
		err    error
	)
	switch src.Type {
	case SourceTypeSample:
		points = model.SamplePoints()
	case SourceTypeCSV:
		points, err = readCSVFile(src.Path)
	case SourceTypeJSON:
		points, err = readJSONFile(src.Path)
	case SourceTypeSQLite:
		var r *SQLiteReader
		r, err = NewSQLiteReader(src)
		if err == nil {
			defer r.Close()
			points, err = r.LoadPoints()
		}
	default:
		err = fmt.Errorf("unknown source type: %s", src.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, src, err)
	}

	ds, err := model.NewDataset(points)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, src, err)
	}
	debug.Log("loaded %d points from %s", ds.Len(), src)
	return ds, nil
}
