package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/chartview/pkg/metrics"
	"github.com/vanderheijden86/chartview/pkg/model"
	"github.com/vanderheijden86/chartview/pkg/version"
)

// SchemaVersion is stored in export_meta so readers can detect layout changes.
const SchemaVersion = 1

// PointsTable holds the exported rows. cv --data file.sqlite reads it back
// with the default table name.
const PointsTable = "points"

// WriteSQLite writes the full dataset to a fresh database at path, replacing
// any existing file. Rows keep dataset order so rowid order matches the x
// axis.
func WriteSQLite(path string, opts SnapshotOptions) error {
	defer metrics.Timer(metrics.SQLiteExport)()

	rows := opts.All
	if len(rows) == 0 {
		rows = opts.Points
	}
	if len(rows) == 0 {
		return fmt.Errorf("no points to export")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	dbClosed := false
	defer func() {
		if !dbClosed {
			db.Close()
		}
	}()

	if err := createSchema(db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := insertPoints(db, rows); err != nil {
		return fmt.Errorf("insert points: %w", err)
	}

	cols := opts.Columns.withDefaults()
	meta := [][2]string{
		{"schema_version", fmt.Sprint(SchemaVersion)},
		{"title", opts.Title},
		{"label_header", cols.Label},
		{"series_a", cols.SeriesA},
		{"series_b", cols.SeriesB},
		{"point_count", fmt.Sprint(len(rows))},
		{"exported_at", time.Now().UTC().Format(time.RFC3339)},
		{"version", version.Version},
	}
	for _, kv := range meta {
		if err := insertMetaValue(db, kv[0], kv[1]); err != nil {
			return fmt.Errorf("insert meta %s: %w", kv[0], err)
		}
	}

	// Single file mode so the export can be copied as-is.
	_, _ = db.Exec(`PRAGMA journal_mode=DELETE`)

	dbClosed = true
	if err := db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + PointsTable + ` (
			label TEXT NOT NULL,
			value_a REAL NOT NULL,
			value_b REAL NOT NULL,
			highlighted INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS export_meta (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func insertPoints(db *sql.DB, points []model.DataPoint) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO ` + PointsTable + ` (label, value_a, value_b, highlighted) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range points {
		hi := 0
		if p.Highlighted {
			hi = 1
		}
		if _, err := stmt.Exec(p.Label, p.ValueA, p.ValueB, hi); err != nil {
			return fmt.Errorf("point %d (%s): %w", p.Index, p.Label, err)
		}
	}
	return tx.Commit()
}

func insertMetaValue(db *sql.DB, key, value string) error {
	_, err := db.Exec(`INSERT OR REPLACE INTO export_meta (key, value) VALUES (?, ?)`, key, value)
	return err
}
