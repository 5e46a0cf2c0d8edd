package datasource

import (
	"database/sql"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/chartview/pkg/debug"
	"github.com/vanderheijden86/chartview/pkg/model"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteReader provides read access to a points table.
type SQLiteReader struct {
	db    *sql.DB
	path  string
	table string
}

// NewSQLiteReader opens a SQLite database for reading
func NewSQLiteReader(source Source) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}
	if !tableName.MatchString(source.Table) {
		return nil, fmt.Errorf("invalid table name %q", source.Table)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA temp_store = MEMORY"); err != nil {
		debug.Log("sqlite pragma: %v", err)
	}

	return &SQLiteReader{db: db, path: source.Path, table: source.Table}, nil
}

// Close closes the database connection
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadPoints reads every row in insertion order.
func (r *SQLiteReader) LoadPoints() ([]model.DataPoint, error) {
	query := fmt.Sprintf(`SELECT label, value_a, value_b FROM %s ORDER BY rowid`, r.table)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.table, err)
	}
	defer rows.Close()

	var points []model.DataPoint
	for rows.Next() {
		var (
			label string
			a, b  sql.NullFloat64
		)
		if err := rows.Scan(&label, &a, &b); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if !a.Valid || !b.Valid {
			return nil, fmt.Errorf("row %q: null value", label)
		}
		points = append(points, model.DataPoint{Label: label, ValueA: a.Float64, ValueB: b.Float64})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return points, nil
}

// Count returns the number of rows in the points table.
func (r *SQLiteReader) Count() (int, error) {
	var n int
	err := r.db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.table)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table, err)
	}
	return n, nil
}
