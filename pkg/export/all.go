package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Formats written for --format all. "sqlite" is also accepted by ExportAll
// but only when named.
var Formats = []string{"csv", "png", "svg"}

// ExpandFormat turns a --format value into the list of formats to write.
func ExpandFormat(format string) ([]string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", "all":
		return Formats, nil
	case "csv", "png", "svg", "sqlite":
		return []string{f}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want csv, png, svg, sqlite or all)", format)
	}
}

// ExportAll writes the snapshot in each format concurrently. base is the
// output path without extension; the written paths are returned in format
// order.
func ExportAll(ctx context.Context, base string, formats []string, opts SnapshotOptions) ([]string, error) {
	base = strings.TrimSuffix(base, filepath.Ext(base))
	paths := make([]string, len(formats))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		path := base + "." + f
		paths[i] = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			switch f {
			case "csv":
				return writeCSVFile(path, opts)
			case "sqlite":
				return WriteSQLite(path, opts)
			}
			o := opts
			o.Path, o.Format = path, f
			return SaveSnapshot(o)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func writeCSVFile(path string, opts SnapshotOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	rows := opts.All
	if len(rows) == 0 {
		rows = opts.Points
	}
	if err := WriteCSV(f, rows, opts.Columns); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
