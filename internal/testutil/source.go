package testutil

import (
	"context"
	"strconv"
	"sync"

	"github.com/HerbHall/stampcatalog/pkg/catalog"
	"github.com/HerbHall/stampcatalog/pkg/models"
)

// Compile-time interface guard.
var _ catalog.Source = (*StaticSource)(nil)

// StaticSource is an in-memory catalog.Source that counts its reads.
type StaticSource struct {
	mu    sync.Mutex
	table *catalog.Table
	err   error
	reads int
}

// NewStaticSource returns a source serving the given stamps.
func NewStaticSource(stamps ...models.Stamp) *StaticSource {
	return &StaticSource{table: TableOf(stamps...)}
}

// Name implements catalog.Source.
func (s *StaticSource) Name() string { return "static" }

// Read implements catalog.Source.
func (s *StaticSource) Read(context.Context) (*catalog.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return s.table, s.err
}

// SetStamps replaces the served table.
func (s *StaticSource) SetStamps(stamps ...models.Stamp) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = TableOf(stamps...)
}

// SetError makes subsequent reads fail with err.
func (s *StaticSource) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Reads returns how many times Read was called.
func (s *StaticSource) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// TableOf renders stamps as an export table with the default column layout.
func TableOf(stamps ...models.Stamp) *catalog.Table {
	schema, err := catalog.DefaultSchema()
	if err != nil {
		panic("testutil.TableOf: " + err.Error())
	}
	t := &catalog.Table{Columns: schema.Columns.Required()}
	for _, s := range stamps {
		price := ""
		if s.Price.Valid {
			price = strconv.FormatFloat(s.Price.Amount, 'f', -1, 64)
		}
		t.Rows = append(t.Rows, []string{
			s.Name, s.CategoryID, s.Currency, price, s.Description, s.Image,
			s.Country, s.CatalogNumber, s.StampType, s.Condition, s.StampFormat,
			s.Centering, s.HasCertificate, s.CertificateGrade,
		})
	}
	return t
}

// NewCatalog returns a catalog over the given stamps.
func NewCatalog(stamps ...models.Stamp) *catalog.Catalog {
	return catalog.NewCatalog(NewStaticSource(stamps...), nil)
}
