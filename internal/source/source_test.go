package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HerbHall/stampcatalog/internal/testutil"
	"github.com/HerbHall/stampcatalog/pkg/catalog"
)

const sampleCSV = "\ufeffname,buyout_price,image\n" +
	"Inverted Jenny,100000,https://example.com/a.jpg||https://example.com/b.jpg\n" +
	"\"Penny Black, plate 1a\",,\n" +
	"Short Row\n"

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	wantCols := []string{"name", "buyout_price", "image"}
	if strings.Join(tbl.Columns, ",") != strings.Join(wantCols, ",") {
		t.Errorf("Columns = %v, want %v", tbl.Columns, wantCols)
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(tbl.Rows))
	}
	if tbl.Rows[1][0] != "Penny Black, plate 1a" {
		t.Errorf("quoted cell = %q", tbl.Rows[1][0])
	}
	if len(tbl.Rows[2]) != 1 {
		t.Errorf("short row len = %d, want 1", len(tbl.Rows[2]))
	}
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("ReadCSV(\"\") error = %v, want ErrEmptyFile", err)
	}
}

func TestCSVSource_MissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "missing.csv"))
	if _, err := src.Read(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Read() error = %v, want not-exist", err)
	}
}

func TestCSVSource_FeedsCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	// The sample lacks most required columns, so the catalog rejects it.
	cat := catalog.NewCatalog(NewCSVSource(path), testutil.Logger())
	_, err := cat.Records(context.Background())
	var dsErr *catalog.DataSourceError
	if !errors.As(err, &dsErr) {
		t.Fatalf("Records() error = %v, want DataSourceError", err)
	}
	if len(dsErr.Missing) == 0 {
		t.Error("expected missing columns to be reported")
	}
}

func TestImportCSV_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewStore(t)

	n, err := ImportCSV(ctx, st, "inventory", strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if n != 3 {
		t.Errorf("ImportCSV() = %d rows, want 3", n)
	}

	src, err := NewSQLiteSource(st, "inventory")
	if err != nil {
		t.Fatalf("NewSQLiteSource() error = %v", err)
	}
	tbl, err := src.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if tbl.Columns[0] != "name" {
		t.Errorf("Columns[0] = %q, want name (BOM stripped)", tbl.Columns[0])
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(tbl.Rows))
	}
	// Insertion order is preserved.
	for i, want := range []string{"Inverted Jenny", "Penny Black, plate 1a", "Short Row"} {
		if tbl.Rows[i][0] != want {
			t.Errorf("Rows[%d][0] = %q, want %q", i, tbl.Rows[i][0], want)
		}
	}
	// Missing cells come back empty.
	if tbl.Rows[2][1] != "" || tbl.Rows[2][2] != "" {
		t.Errorf("short row = %v, want empty trailing cells", tbl.Rows[2])
	}
}

func TestImportCSV_ReplacesTable(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewStore(t)

	if _, err := ImportCSV(ctx, st, "inventory", strings.NewReader(sampleCSV)); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportCSV(ctx, st, "inventory", strings.NewReader("name\nOnly\n")); err != nil {
		t.Fatalf("second ImportCSV() error = %v", err)
	}

	src, _ := NewSQLiteSource(st, "inventory")
	tbl, err := src.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Columns) != 1 || len(tbl.Rows) != 1 {
		t.Errorf("table = %v cols, %d rows; want 1 col, 1 row", tbl.Columns, len(tbl.Rows))
	}

	var imports int
	if err := st.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM imports").Scan(&imports); err != nil {
		t.Fatal(err)
	}
	if imports != 2 {
		t.Errorf("imports = %d, want 2", imports)
	}
}

func TestInvalidTableNames(t *testing.T) {
	st := testutil.NewStore(t)
	for _, name := range []string{"", "1abc", "inv; DROP TABLE x", `inv"entory`} {
		if _, err := NewSQLiteSource(st, name); !errors.Is(err, ErrInvalidTable) {
			t.Errorf("NewSQLiteSource(%q) error = %v, want ErrInvalidTable", name, err)
		}
		if _, err := NewPostgresSource(nil, name); !errors.Is(err, ErrInvalidTable) {
			t.Errorf("NewPostgresSource(%q) error = %v, want ErrInvalidTable", name, err)
		}
		if _, err := ImportCSV(context.Background(), st, name, strings.NewReader("a\n1\n")); !errors.Is(err, ErrInvalidTable) {
			t.Errorf("ImportCSV(%q) error = %v, want ErrInvalidTable", name, err)
		}
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{[]byte("y"), "y"},
		{int64(42), "42"},
		{12.5, "12.5"},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := cellString(tt.in); got != tt.want {
			t.Errorf("cellString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
