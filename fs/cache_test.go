package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/cdpdoc"
	"github.com/fwojciec/cdpdoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Cache file
// The whole cache map lives in one binary file; a bad file is an empty cache.

func TestCacheFile_RoundTrip(t *testing.T) {
	t.Parallel()

	// Given a cache file path in a fresh directory
	path := filepath.Join(t.TempDir(), "doc_cache.gob")
	cache := fs.NewCacheFile[[]cdpdoc.Passage](path)
	stored := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// When I save entries
	entries := map[string]cdpdoc.CacheEntry[[]cdpdoc.Passage]{
		"https://docs.lytics.com/_audience": {
			Value:     []cdpdoc.Passage{{Title: "Audiences", Content: "Build an audience", Score: 2, URL: "https://docs.lytics.com/"}},
			Timestamp: stored,
		},
	}
	require.NoError(t, cache.SaveCache(entries))

	// Then loading returns the same entries
	got, err := cache.LoadCache()
	require.NoError(t, err)
	require.Contains(t, got, "https://docs.lytics.com/_audience")
	entry := got["https://docs.lytics.com/_audience"]
	assert.Equal(t, entries["https://docs.lytics.com/_audience"].Value, entry.Value)
	assert.True(t, stored.Equal(entry.Timestamp))
}

func TestCacheFile_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	cache := fs.NewCacheFile[string](filepath.Join(t.TempDir(), "absent.gob"))

	got, err := cache.LoadCache()

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCacheFile_CorruptFileIsEmpty(t *testing.T) {
	t.Parallel()

	// Given a file that is not a gob stream
	path := filepath.Join(t.TempDir(), "doc_cache.gob")
	require.NoError(t, os.WriteFile(path, []byte("definitely not gob"), 0644))
	cache := fs.NewCacheFile[string](path)

	// When I load it
	got, err := cache.LoadCache()

	// Then the cache is empty and the problem is reported
	assert.Equal(t, cdpdoc.EINVALID, cdpdoc.ErrorCode(err))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCacheFile_SaveOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc_cache.gob")
	cache := fs.NewCacheFile[string](path)
	now := time.Now()

	require.NoError(t, cache.SaveCache(map[string]cdpdoc.CacheEntry[string]{"a": {Value: "1", Timestamp: now}}))
	require.NoError(t, cache.SaveCache(map[string]cdpdoc.CacheEntry[string]{"b": {Value: "2", Timestamp: now}}))

	got, err := cache.LoadCache()
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "2", got["b"].Value)
}
