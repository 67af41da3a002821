// Package iconcache holds decoded app icons under a cost budget.
//
// Hits are served without locking. A miss takes a single cache-wide mutex,
// checks the index again and only then asks the Loader. Because the lock is
// cache-wide, misses for different keys wait on each other: at most one load
// runs at any time. Per-key locking would raise parallel miss throughput but
// is not implemented.
package iconcache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

var ErrInvalidBudget = errors.New("icon cache budget must be positive")

// Loader produces the value for a key together with its cost.
// ok is false when no value could be produced; Load must not panic.
type Loader[V any] interface {
	Load(ctx context.Context, key string) (value V, cost int64, ok bool)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc[V any] func(ctx context.Context, key string) (V, int64, bool)

func (f LoaderFunc[V]) Load(ctx context.Context, key string) (V, int64, bool) {
	return f(ctx, key)
}

// Observer receives cache activity. All methods may be called concurrently.
type Observer interface {
	Hit()
	Miss()
	LoadFailed()
	Evicted(cost int64)
	Resident(cost int64, entries int)
}

type entry[V any] struct {
	key     string
	value   V
	cost    int64
	lastUse atomic.Uint64
}

// Cache is a bounded LRU keyed by string
type Cache[V any] struct {
	loader   Loader[V]
	budget   int64
	observer Observer
	logger   *slog.Logger

	index sync.Map // string -> *entry[V], read without locking
	ticks atomic.Uint64

	mu       sync.Mutex // serialises misses and guards everything below
	resident map[string]*entry[V]
	used     int64
}

type Option func(*options)

type options struct {
	observer Observer
	logger   *slog.Logger
}

func WithObserver(o Observer) Option {
	return func(opts *options) { opts.observer = o }
}

func WithLogger(l *slog.Logger) Option {
	return func(opts *options) { opts.logger = l }
}

// New creates a cache holding at most budget cost units
func New[V any](loader Loader[V], budget int64, opts ...Option) (*Cache[V], error) {
	if budget <= 0 {
		return nil, ErrInvalidBudget
	}
	o := options{observer: nopObserver{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[V]{
		loader:   loader,
		budget:   budget,
		observer: o.observer,
		logger:   o.logger.With("component", "iconcache"),
		resident: make(map[string]*entry[V]),
	}, nil
}

// Get returns the value for key, loading it on a miss.
// A failed load returns false and leaves nothing behind, so the next call loads again.
func (c *Cache[V]) Get(ctx context.Context, key string) (V, bool) {
	if e, ok := c.lookup(key); ok {
		c.observer.Hit()
		return e.value, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A concurrent miss for the same key may have filled it while we waited.
	if e, ok := c.lookup(key); ok {
		c.observer.Hit()
		return e.value, true
	}
	c.observer.Miss()

	value, cost, ok := c.loader.Load(ctx, key)
	if !ok {
		c.observer.LoadFailed()
		c.logger.Debug("icon load failed", "key", key)
		var zero V
		return zero, false
	}
	if cost < 0 {
		cost = 0
	}

	if cost > c.budget {
		c.logger.Debug("icon exceeds cache budget, not retained", "key", key, "cost", cost, "budget", c.budget)
		return value, true
	}

	c.evictLocked(c.budget - cost)

	e := &entry[V]{key: key, value: value, cost: cost}
	e.lastUse.Store(c.ticks.Add(1))
	c.resident[key] = e
	c.used += cost
	c.index.Store(key, e)
	c.observer.Resident(c.used, len(c.resident))

	return value, true
}

// Peek returns a resident value without loading or touching recency
func (c *Cache[V]) Peek(key string) (V, bool) {
	if v, ok := c.index.Load(key); ok {
		return v.(*entry[V]).value, true
	}
	var zero V
	return zero, false
}

// Remove drops key from the cache
func (c *Cache[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.resident[key]
	if !ok {
		return false
	}
	c.dropLocked(e)
	c.observer.Resident(c.used, len(c.resident))
	return true
}

// Clear drops every entry
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.resident {
		c.dropLocked(e)
	}
	c.observer.Resident(c.used, len(c.resident))
}

// Stats returns the resident cost, entry count and budget
func (c *Cache[V]) Stats() (used int64, entries int, budget int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used, len(c.resident), c.budget
}

func (c *Cache[V]) lookup(key string) (*entry[V], bool) {
	v, ok := c.index.Load(key)
	if !ok {
		return nil, false
	}
	e := v.(*entry[V])
	e.lastUse.Store(c.ticks.Add(1))
	return e, true
}

// evictLocked drops least recently used entries until used <= limit
func (c *Cache[V]) evictLocked(limit int64) {
	for c.used > limit && len(c.resident) > 0 {
		var oldest *entry[V]
		for _, e := range c.resident {
			if oldest == nil || e.lastUse.Load() < oldest.lastUse.Load() {
				oldest = e
			}
		}
		c.dropLocked(oldest)
		c.observer.Evicted(oldest.cost)
		c.logger.Debug("icon evicted", "key", oldest.key, "cost", oldest.cost)
	}
}

func (c *Cache[V]) dropLocked(e *entry[V]) {
	c.index.Delete(e.key)
	delete(c.resident, e.key)
	c.used -= e.cost
}

type nopObserver struct{}

func (nopObserver) Hit()                {}
func (nopObserver) Miss()               {}
func (nopObserver) LoadFailed()         {}
func (nopObserver) Evicted(int64)       {}
func (nopObserver) Resident(int64, int) {}
