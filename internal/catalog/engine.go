// Package catalog provides the browsing engine that filters, searches, sorts
// and paginates the loaded stamp inventory, and the HTTP API over it.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/sahilm/fuzzy"

	pkgcatalog "github.com/HerbHall/stampcatalog/pkg/catalog"
	"github.com/HerbHall/stampcatalog/pkg/models"
)

// ErrItemNotFound is returned for a record index outside the catalog.
var ErrItemNotFound = errors.New("item not found")

// Result is the view produced for one state.
type Result struct {
	// Total counts every record matching the criteria.
	Total   int            `json:"total"`
	Limit   int            `json:"limit"`
	HasMore bool           `json:"has_more"`
	Items   []models.Stamp `json:"items"`
}

// Engine runs browsing queries over a catalog.
type Engine struct {
	cat     *pkgcatalog.Catalog
	schema  *pkgcatalog.Schema
	matcher Matcher
}

// NewEngine creates an engine backed by cat. A nil matcher searches with
// the default fuzzy matcher.
func NewEngine(cat *pkgcatalog.Catalog, matcher Matcher) (*Engine, error) {
	schema, err := pkgcatalog.DefaultSchema()
	if err != nil {
		return nil, err
	}
	if matcher == nil {
		matcher = NewFuzzyMatcher(DefaultFuzzyThreshold)
	}
	return &Engine{cat: cat, schema: schema, matcher: matcher}, nil
}

// Schema returns the schema the engine parses records with.
func (e *Engine) Schema() *pkgcatalog.Schema { return e.schema }

// Options returns the filter choices for attr.
func (e *Engine) Options(ctx context.Context, attr models.Attribute) ([]string, error) {
	records, err := e.cat.Records(ctx)
	if err != nil {
		return nil, err
	}
	return e.schema.OptionsFor(records, attr), nil
}

// AllOptions returns the filter choices for every filterable attribute.
func (e *Engine) AllOptions(ctx context.Context) (map[models.Attribute][]string, error) {
	records, err := e.cat.Records(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[models.Attribute][]string, len(models.FilterableAttributes))
	for _, attr := range models.FilterableAttributes {
		out[attr] = e.schema.OptionsFor(records, attr)
	}
	return out, nil
}

// Suggest returns the options of attr that fuzzily match q, best match
// first. An empty q returns all options in their usual order.
func (e *Engine) Suggest(ctx context.Context, attr models.Attribute, q string) ([]string, error) {
	opts, err := e.Options(ctx, attr)
	if err != nil || q == "" {
		return opts, err
	}
	matches := fuzzy.Find(q, opts)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out, nil
}

// Apply filters, sorts and paginates the catalog for state.
func (e *Engine) Apply(ctx context.Context, state State) (*Result, error) {
	records, err := e.cat.Records(ctx)
	if err != nil {
		return nil, err
	}

	filtered := Filter(records, state.Criteria, state.Search, e.matcher)
	sorted, err := Sort(filtered, state.Sort)
	if err != nil {
		return nil, err
	}

	page := state.Page
	page.normalize()
	return &Result{
		Total:   len(sorted),
		Limit:   page.Limit,
		HasMore: page.HasMore(len(sorted)),
		Items:   page.Visible(sorted),
	}, nil
}

// Item returns the record at index.
func (e *Engine) Item(ctx context.Context, index int) (models.Stamp, error) {
	records, err := e.cat.Records(ctx)
	if err != nil {
		return models.Stamp{}, err
	}
	if index < 0 || index >= len(records) {
		return models.Stamp{}, fmt.Errorf("%w: %d", ErrItemNotFound, index)
	}
	return records[index], nil
}
