package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/HerbHall/stampcatalog/internal/source"
	"github.com/HerbHall/stampcatalog/internal/store"
)

func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	input := fs.String("input", "inventory.csv", "CSV export to import")
	dbPath := fs.String("db", "stampcatalog.db", "SQLite catalog database")
	table := fs.String("table", "inventory", "table to (re)create")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	f, err := os.Open(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	st, err := store.New(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	n, err := source.ImportCSV(context.Background(), st, *table, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d rows into %s (table %s)\n", n, *dbPath, *table)
}
