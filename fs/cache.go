package fs

import (
	"encoding/gob"
	"errors"
	"os"

	"github.com/fwojciec/cdpdoc"
)

// Ensure CacheFile implements cdpdoc.CacheStore at compile time.
var _ cdpdoc.CacheStore[[]cdpdoc.Passage] = (*CacheFile[[]cdpdoc.Passage])(nil)

// CacheFile persists a cache map as a single gob-encoded file.
type CacheFile[V any] struct {
	path string
}

// NewCacheFile creates a CacheFile at path.
func NewCacheFile[V any](path string) *CacheFile[V] {
	return &CacheFile[V]{path: path}
}

// LoadCache decodes the cache file. A missing file yields an empty map and no
// error. An undecodable file yields an empty map and an EINVALID error so the
// caller can report it and carry on.
func (c *CacheFile[V]) LoadCache() (map[string]cdpdoc.CacheEntry[V], error) {
	entries := make(map[string]cdpdoc.CacheEntry[V])

	f, err := os.Open(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return entries, nil
	} else if err != nil {
		return entries, err
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(&entries); err != nil {
		return make(map[string]cdpdoc.CacheEntry[V]), cdpdoc.Errorf(cdpdoc.EINVALID, "corrupt cache file %s: %v", c.path, err)
	}
	return entries, nil
}

// SaveCache replaces the cache file with entries.
func (c *CacheFile[V]) SaveCache(entries map[string]cdpdoc.CacheEntry[V]) error {
	return writeAtomic(c.path, func(f *os.File) error {
		return gob.NewEncoder(f).Encode(entries)
	})
}
