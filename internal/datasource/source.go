// Package datasource loads the points behind a chart from a CSV, JSON or
// SQLite file, or from the built-in sample when no path is configured.
// Every failure wraps ErrUnavailable so the UI can fall back to its
// "data unavailable" display.
package datasource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrUnavailable marks any failure to obtain chart data.
var ErrUnavailable = errors.New("data unavailable")

// SourceType identifies the type of data source
type SourceType string

const (
	SourceTypeSample SourceType = "sample"
	SourceTypeCSV    SourceType = "csv"
	SourceTypeJSON   SourceType = "json"
	SourceTypeSQLite SourceType = "sqlite"
)

// DefaultTable is the SQLite table read when none is configured.
const DefaultTable = "points"

// Source describes where a dataset comes from.
type Source struct {
	Type SourceType `json:"type"`
	// Path is the absolute path to the source file; empty for the sample.
	Path string `json:"path,omitempty"`
	// Table is the SQLite table name.
	Table   string    `json:"table,omitempty"`
	ModTime time.Time `json:"mod_time,omitempty"`
	Size    int64     `json:"size,omitempty"`
}

// String returns a human-readable description of the source
func (s Source) String() string {
	switch s.Type {
	case SourceTypeSample:
		return "built-in sample"
	case SourceTypeSQLite:
		return fmt.Sprintf("sqlite %s (table %s)", s.Path, s.Table)
	default:
		return fmt.Sprintf("%s %s", s.Type, s.Path)
	}
}

// DetectType maps a file extension to a source type.
func DetectType(path string) (SourceType, error) {
	if path == "" {
		return SourceTypeSample, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return SourceTypeCSV, nil
	case ".json":
		return SourceTypeJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return SourceTypeSQLite, nil
	default:
		return "", fmt.Errorf("%w: unsupported file type %q", ErrUnavailable, filepath.Ext(path))
	}
}

// Resolve builds a Source for path, checking that the file exists and is a
// regular file.
func Resolve(path, table string) (Source, error) {
	typ, err := DetectType(path)
	if err != nil {
		return Source{}, err
	}
	if typ == SourceTypeSample {
		return Source{Type: typ}, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if info.IsDir() {
		return Source{}, fmt.Errorf("%w: %s is a directory", ErrUnavailable, abs)
	}

	src := Source{Type: typ, Path: abs, ModTime: info.ModTime(), Size: info.Size()}
	if typ == SourceTypeSQLite {
		src.Table = table
		if src.Table == "" {
			src.Table = DefaultTable
		}
	}
	return src, nil
}
