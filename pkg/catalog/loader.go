package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/HerbHall/stampcatalog/pkg/models"
)

// Catalog provides lazy-loaded, memoized access to the inventory. The loaded
// records are never mutated; readers receive copies.
type Catalog struct {
	src    Source
	logger *zap.Logger

	mu       sync.RWMutex
	loaded   bool
	records  []models.Stamp
	warnings int
	err      error
}

// NewCatalog creates a Catalog that reads src on first access.
func NewCatalog(src Source, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{src: src, logger: logger}
}

// Records returns a copy of all records, loading the source on first call.
// A failed first load is remembered until a Reload succeeds.
func (c *Catalog) Records(ctx context.Context) ([]models.Stamp, error) {
	c.mu.RLock()
	if c.loaded {
		defer c.mu.RUnlock()
		return c.snapshot()
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		_ = c.load(ctx)
	}
	return c.snapshot()
}

// Reload re-reads the source and replaces the snapshot in one step. On
// failure the previous snapshot, if any, keeps serving and the error is
// returned.
func (c *Catalog) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Len returns the number of loaded records, or 0 before a successful load.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Warnings returns how many cells were coerced during the last load.
func (c *Catalog) Warnings() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.warnings
}

// snapshot must be called with c.mu held.
func (c *Catalog) snapshot() ([]models.Stamp, error) {
	if c.err != nil {
		return nil, c.err
	}
	cp := make([]models.Stamp, len(c.records))
	copy(cp, c.records)
	return cp, nil
}

// load must be called with c.mu held for writing. Nothing is assigned until
// the source has been read and normalized. A failure only sticks when there
// is no good snapshot to fall back on.
func (c *Catalog) load(ctx context.Context) error {
	records, warnings, err := c.read(ctx)
	if err != nil {
		if c.loaded && c.err == nil {
			c.logger.Warn("catalog reload failed, keeping previous snapshot",
				zap.String("source", c.src.Name()),
				zap.Int("records", len(c.records)),
				zap.Error(err),
			)
			return err
		}
		c.loaded = true
		c.records, c.warnings, c.err = nil, 0, err
		return err
	}

	c.loaded = true
	c.records, c.warnings, c.err = records, warnings, nil
	c.logger.Info("catalog loaded",
		zap.String("source", c.src.Name()),
		zap.Int("records", len(records)),
	)
	return nil
}

func (c *Catalog) read(ctx context.Context) ([]models.Stamp, int, error) {
	schema, err := DefaultSchema()
	if err != nil {
		return nil, 0, err
	}

	table, err := c.src.Read(ctx)
	if err != nil {
		c.logger.Error("catalog source unreadable", zap.String("source", c.src.Name()), zap.Error(err))
		return nil, 0, &DataSourceError{Source: c.src.Name(), Err: fmt.Errorf("read: %w", err)}
	}

	records, warnings, err := schema.Normalize(c.src.Name(), table)
	if err != nil {
		c.logger.Error("catalog source rejected", zap.String("source", c.src.Name()), zap.Error(err))
		return nil, 0, err
	}

	for _, w := range warnings {
		c.logger.Debug("field coerced to default",
			zap.Int("row", w.Row),
			zap.String("column", w.Column),
			zap.String("value", w.Value),
		)
	}
	if len(warnings) > 0 {
		c.logger.Warn("catalog loaded with coerced fields",
			zap.String("source", c.src.Name()),
			zap.Int("count", len(warnings)),
		)
	}
	return records, len(warnings), nil
}
