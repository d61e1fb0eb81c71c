package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/HerbHall/stampcatalog/pkg/catalog"
)

// Compile-time interface guard.
var _ catalog.Source = (*CSVSource)(nil)

// ErrEmptyFile is returned when a CSV export has no header row.
var ErrEmptyFile = errors.New("empty csv file")

// CSVSource reads the inventory from a CSV export on disk.
type CSVSource struct {
	path string
}

// NewCSVSource creates a source for the file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Name implements catalog.Source.
func (s *CSVSource) Name() string { return s.path }

// Read implements catalog.Source.
func (s *CSVSource) Read(_ context.Context) (*catalog.Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses a CSV export. The first record is the header; later records
// may have any number of fields.
func ReadCSV(r io.Reader) (*catalog.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &catalog.Table{Columns: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}
