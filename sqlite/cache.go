package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/cdpdoc"
)

// CacheStore implements cdpdoc.CacheStore using SQLite. Values are stored as
// JSON under a cache name, so several caches can share one database.
type CacheStore[V any] struct {
	db   *DB
	name string
}

// NewCacheStore creates a CacheStore for the named cache.
func NewCacheStore[V any](db *DB, name string) *CacheStore[V] {
	return &CacheStore[V]{db: db, name: name}
}

// LoadCache returns every entry of the cache. An undecodable entry yields an
// empty map and an EINVALID error.
func (s *CacheStore[V]) LoadCache() (map[string]cdpdoc.CacheEntry[V], error) {
	ctx := context.Background()
	entries := make(map[string]cdpdoc.CacheEntry[V])

	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value, stored_at FROM cache_entries WHERE name = ?", s.name)
	if err != nil {
		return entries, err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value, storedAt string
		if err := rows.Scan(&key, &value, &storedAt); err != nil {
			return make(map[string]cdpdoc.CacheEntry[V]), err
		}

		var entry cdpdoc.CacheEntry[V]
		if err := json.Unmarshal([]byte(value), &entry.Value); err != nil {
			return make(map[string]cdpdoc.CacheEntry[V]), cdpdoc.Errorf(cdpdoc.EINVALID, "cache entry %q: %v", key, err)
		}
		if entry.Timestamp, err = parseRFC3339(storedAt, "stored_at"); err != nil {
			return make(map[string]cdpdoc.CacheEntry[V]), cdpdoc.Errorf(cdpdoc.EINVALID, "cache entry %q: %v", key, err)
		}
		entries[key] = entry
	}

	return entries, rows.Err()
}

// SaveCache replaces every entry of the cache in one transaction.
func (s *CacheStore[V]) SaveCache(entries map[string]cdpdoc.CacheEntry[V]) error {
	ctx := context.Background()

	return s.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM cache_entries WHERE name = ?", s.name); err != nil {
			return fmt.Errorf("failed to clear cache %s: %w", s.name, err)
		}
		for key, entry := range entries {
			value, err := json.Marshal(entry.Value)
			if err != nil {
				return fmt.Errorf("failed to encode cache entry %q: %w", key, err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO cache_entries (name, key, value, stored_at)
				VALUES (?, ?, ?, ?)
			`, s.name, key, string(value), formatRFC3339(entry.Timestamp)); err != nil {
				return fmt.Errorf("failed to insert cache entry %q: %w", key, err)
			}
		}
		return nil
	})
}
