// Package cache provides a write-through key-value cache with time-based
// expiry on top of a cdpdoc.CacheStore.
package cache

import (
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/cdpdoc"
)

// Cache maps keys to values that expire a fixed duration after being stored.
// The whole map is loaded once when the cache is created and persisted after
// every change, before the changing call returns. Safe for concurrent use.
type Cache[V any] struct {
	mu      sync.Mutex
	store   cdpdoc.CacheStore[V]
	entries map[string]cdpdoc.CacheEntry[V]

	expiry time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Cache.
type Option func(*config)

type config struct {
	expiry time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// WithExpiry sets how long entries stay fresh.
// Defaults to cdpdoc.DefaultCacheExpiry (24h).
func WithExpiry(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.expiry = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// WithLogger sets the logger used to report store failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New loads the persisted entries from store. A store that cannot be read
// is logged and treated as empty.
func New[V any](store cdpdoc.CacheStore[V], opts ...Option) *Cache[V] {
	cfg := config{
		expiry: cdpdoc.DefaultCacheExpiry,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	entries, err := store.LoadCache()
	if err != nil {
		cfg.logger.Warn("cache unreadable, starting empty", "error", err)
		entries = nil
	}
	if entries == nil {
		entries = make(map[string]cdpdoc.CacheEntry[V])
	}

	return &Cache[V]{
		store:   store,
		entries: entries,
		expiry:  cfg.expiry,
		now:     cfg.now,
		logger:  cfg.logger,
	}
}

// Get returns the value stored under key if it is younger than the expiry.
// An expired entry is removed and the removal persisted.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(entry.Timestamp) < c.expiry {
		return entry.Value, true
	}

	delete(c.entries, key)
	if err := c.store.SaveCache(c.entries); err != nil {
		c.logger.Warn("failed to persist cache eviction", "key", key, "error", err)
	}
	return zero, false
}

// Set stores value under key with the current time and persists the whole
// cache before returning.
func (c *Cache[V]) Set(key string, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cdpdoc.CacheEntry[V]{Value: value, Timestamp: c.now()}
	return c.store.SaveCache(c.entries)
}

// Len returns the number of stored entries, including expired ones not yet
// evicted.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
