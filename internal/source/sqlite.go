package source

import (
	"context"
	"fmt"

	"github.com/HerbHall/stampcatalog/internal/store"
	"github.com/HerbHall/stampcatalog/pkg/catalog"
)

// Compile-time interface guard.
var _ catalog.Source = (*SQLiteSource)(nil)

// SQLiteSource reads the inventory from a table in the catalog database,
// in insertion order.
type SQLiteSource struct {
	store *store.SQLiteStore
	table string
}

// NewSQLiteSource creates a source over table in st.
func NewSQLiteSource(st *store.SQLiteStore, table string) (*SQLiteSource, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	return &SQLiteSource{store: st, table: table}, nil
}

// Name implements catalog.Source.
func (s *SQLiteSource) Name() string { return "sqlite:" + s.table }

// Read implements catalog.Source.
func (s *SQLiteSource) Read(ctx context.Context) (*catalog.Table, error) {
	return queryTable(ctx, s.store.DB(), fmt.Sprintf(`SELECT * FROM %s ORDER BY rowid`, quoteIdent(s.table)))
}
