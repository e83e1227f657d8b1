package server

import (
	"errors"
	"sync"
	"time"

	"github.com/vegasq/catfilter/table"
)

// ErrNotLoaded is returned while the catalog has no table yet
var ErrNotLoaded = errors.New("catalog not loaded")

// Loader produces a fresh copy of the catalog table
type Loader func() (*table.Table, error)

// Catalog holds the current table. Reload swaps it atomically, so searches
// in flight keep the table they started with.
type Catalog struct {
	reloadMu sync.Mutex // one load at a time, so the last Reload call wins

	mu       sync.RWMutex
	table    *table.Table
	loadedAt time.Time
	load     Loader
}

// NewCatalog creates an empty catalog. Call Reload to load it.
func NewCatalog(load Loader) *Catalog {
	return &Catalog{load: load}
}

// Reload runs the loader and replaces the table. On error the previous
// table stays in place. Concurrent calls run one after another; searches
// are not blocked while a load is running.
func (c *Catalog) Reload() (*table.Table, error) {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	t, err := c.load()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.table = t
	c.loadedAt = time.Now()
	c.mu.Unlock()

	return t, nil
}

// Table returns the current table or ErrNotLoaded
func (c *Catalog) Table() (*table.Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.table == nil {
		return nil, ErrNotLoaded
	}
	return c.table, nil
}

// LoadedAt returns when the current table was loaded
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}
