package source

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/HerbHall/stampcatalog/internal/store"
)

// importMigrations create the bookkeeping table for CSV imports.
func importMigrations() []store.Migration {
	return []store.Migration{
		{
			Version:     1,
			Description: "create imports table",
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`CREATE TABLE imports (
					id          INTEGER PRIMARY KEY AUTOINCREMENT,
					table_name  TEXT     NOT NULL,
					row_count   INTEGER  NOT NULL,
					imported_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`)
				return err
			},
		},
	}
}

// ImportCSV replaces table in st with the contents of the CSV export read
// from r. Every column is stored as TEXT under its header name. It returns
// the number of rows imported.
func ImportCSV(ctx context.Context, st *store.SQLiteStore, table string, r io.Reader) (int, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	t, err := ReadCSV(r)
	if err != nil {
		return 0, err
	}
	if err := st.Migrate(ctx, "source", importMigrations()); err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}

	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if c == "" {
			c = fmt.Sprintf("column_%d", i+1)
		}
		cols[i] = quoteIdent(c)
	}
	name := quoteIdent(table)

	err = st.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
		defs := make([]string, len(cols))
		for i, c := range cols {
			defs[i] = c + " TEXT"
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(defs, ", "))); err != nil {
			return fmt.Errorf("create %s: %w", table, err)
		}

		stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			name, strings.Join(cols, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")))
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		args := make([]any, len(cols))
		for n, row := range t.Rows {
			for i := range args {
				args[i] = nil
				if i < len(row) {
					args[i] = row[i]
				}
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("insert row %d: %w", n+1, err)
			}
		}

		_, err = tx.ExecContext(ctx, "INSERT INTO imports (table_name, row_count) VALUES (?, ?)", table, len(t.Rows))
		return err
	})
	if err != nil {
		return 0, err
	}
	return len(t.Rows), nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
