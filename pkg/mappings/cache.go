// Package mappings provides the operator-curated name-correction cache.
// Corrections (raw source name -> canonical team name) live in a backing
// store and are cached in memory with a short TTL; they take priority
// over every resolution heuristic, which makes them the self-healing
// mechanism for persistent resolution failures.
package mappings

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/favron1/ev-ace-advisor/pkg/normalize"
)

// Row is one correction from the backing store.
type Row struct {
	SourceName    string `json:"source_name"`
	CanonicalName string `json:"canonical_name"`
	SportCode     string `json:"sport_code"`
}

// Store supplies correction rows from persistent storage.
type Store interface {
	// Fetch returns all corrections for one sport code.
	Fetch(ctx context.Context, sportCode string) ([]Row, error)
	// FetchAll returns corrections for every sport.
	FetchAll(ctx context.Context) ([]Row, error)
}

// Clock abstracts time for TTL testing.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// DefaultTTL is how long a fetched sport entry stays fresh.
const DefaultTTL = 5 * time.Minute

// Cache is the process-wide mapping cache. Entries are immutable maps
// replaced wholesale on refresh, so concurrent readers either see the
// previous complete map or the new one, never a partial state. A failed
// refresh keeps the last good entry.
type Cache struct {
	store Store
	clock Clock
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	byName    map[string]string
	fetchedAt time.Time
}

// Option configures the cache.
type Option func(*Cache)

// WithTTL overrides the entry TTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock injects a clock (tests).
func WithClock(clock Clock) Option {
	return func(c *Cache) { c.clock = clock }
}

// NewCache creates a mapping cache over the given store.
func NewCache(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:   store,
		clock:   systemClock{},
		ttl:     DefaultTTL,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the corrections for a sport code, keyed by normalized
// source name. A fresh cached entry is returned as-is; a stale or
// missing entry triggers a refresh. On refresh failure the last good
// map is returned (or an empty map when there has never been one).
// Get never returns an error: resolution must not block on the store.
func (c *Cache) Get(ctx context.Context, sportCode string) map[string]string {
	c.mu.RLock()
	e, ok := c.entries[sportCode]
	if ok && c.clock.Now().Sub(e.fetchedAt) < c.ttl {
		m := e.byName
		c.mu.RUnlock()
		return m
	}
	c.mu.RUnlock()

	rows, err := c.store.Fetch(ctx, sportCode)
	if err != nil {
		log.Printf("[MAP-CACHE] fetch failed for %s, keeping last good entry: %v", sportCode, err)
		if ok {
			return e.byName
		}
		return map[string]string{}
	}

	byName := make(map[string]string, len(rows))
	for _, r := range rows {
		byName[normalize.Normalize(r.SourceName)] = r.CanonicalName
	}

	c.mu.Lock()
	c.entries[sportCode] = &entry{byName: byName, fetchedAt: c.clock.Now()}
	c.mu.Unlock()

	return byName
}

// GetAll returns every correction across sports, keyed by
// "sportCode|normalizedSourceName". Intended for batch tooling; there is
// no TTL slicing and a fetch failure yields an empty map.
func (c *Cache) GetAll(ctx context.Context) map[string]string {
	rows, err := c.store.FetchAll(ctx)
	if err != nil {
		log.Printf("[MAP-CACHE] fetch-all failed: %v", err)
		return map[string]string{}
	}

	all := make(map[string]string, len(rows))
	for _, r := range rows {
		all[r.SportCode+"|"+normalize.Normalize(r.SourceName)] = r.CanonicalName
	}
	return all
}

// Clear drops every cached entry. Used by tests and after bulk updates
// to the backing table.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
}
