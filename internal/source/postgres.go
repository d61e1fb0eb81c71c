package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/HerbHall/stampcatalog/pkg/catalog"
)

// Compile-time interface guard.
var _ catalog.Source = (*PostgresSource)(nil)

// PostgresSource reads the inventory from a PostgreSQL table. Rows come back
// in physical order, which matches insertion order for an append-only
// import table.
type PostgresSource struct {
	db    *sql.DB
	table string
}

// OpenPostgres opens a connection pool for dsn and verifies it with a ping.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// NewPostgresSource creates a source over table in db.
func NewPostgresSource(db *sql.DB, table string) (*PostgresSource, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	return &PostgresSource{db: db, table: table}, nil
}

// Name implements catalog.Source. The DSN is left out so credentials never
// reach the logs.
func (s *PostgresSource) Name() string { return "postgres:" + s.table }

// Read implements catalog.Source.
func (s *PostgresSource) Read(ctx context.Context) (*catalog.Table, error) {
	query := fmt.Sprintf(`SELECT * FROM %s ORDER BY ctid`, pgx.Identifier{s.table}.Sanitize())
	return queryTable(ctx, s.db, query)
}
