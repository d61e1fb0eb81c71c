package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Table is a tabular export: a header row and the data rows beneath it.
// Rows may be shorter than Columns; missing cells read as empty.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Source produces the raw inventory table. CSV files, database tables and
// API responses all fit behind it.
type Source interface {
	// Name identifies the source in logs and errors (a path, DSN host, etc.).
	Name() string

	// Read returns the complete table.
	Read(ctx context.Context) (*Table, error)
}

// ErrDataSource matches every DataSourceError via errors.Is.
var ErrDataSource = errors.New("catalog data source error")

// DataSourceError reports an unreadable source or a header missing required
// columns. It is fatal to the session.
type DataSourceError struct {
	Source  string
	Missing []string
	Err     error
}

func (e *DataSourceError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return fmt.Sprintf("catalog source %q: missing required columns: %s",
			e.Source, strings.Join(e.Missing, ", "))
	case e.Err != nil:
		return fmt.Sprintf("catalog source %q: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("catalog source %q: unreadable", e.Source)
	}
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDataSource) true for any DataSourceError.
func (e *DataSourceError) Is(target error) bool { return target == ErrDataSource }

// FieldCoercionWarning records a cell that could not be coerced and was
// replaced by its documented default. It is never returned as an error.
type FieldCoercionWarning struct {
	Row    int
	Column string
	Value  string
}

func (w FieldCoercionWarning) String() string {
	return fmt.Sprintf("row %d column %s: cannot coerce %q", w.Row, w.Column, w.Value)
}
