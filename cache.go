package cdpdoc

import "time"

// DefaultCacheExpiry is how long a cached result stays fresh.
const DefaultCacheExpiry = 24 * time.Hour

// CacheEntry is a cached value and the time it was stored.
type CacheEntry[V any] struct {
	Value     V
	Timestamp time.Time
}

// CacheStore persists the whole cache map as one unit.
type CacheStore[V any] interface {
	// LoadCache returns the persisted map. A missing store yields an empty
	// map and no error.
	LoadCache() (map[string]CacheEntry[V], error)

	// SaveCache durably replaces the persisted map before returning.
	SaveCache(entries map[string]CacheEntry[V]) error
}
