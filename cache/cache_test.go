package cache_test

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/cdpdoc"
	"github.com/fwojciec/cdpdoc/cache"
	"github.com/fwojciec/cdpdoc/fs"
	"github.com/fwojciec/cdpdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore records every saved snapshot of the map.
func memoryStore(initial map[string]cdpdoc.CacheEntry[string]) (*mock.CacheStore[string], *[]map[string]cdpdoc.CacheEntry[string]) {
	var mu sync.Mutex
	var saves []map[string]cdpdoc.CacheEntry[string]
	return &mock.CacheStore[string]{
		LoadCacheFn: func() (map[string]cdpdoc.CacheEntry[string], error) {
			return initial, nil
		},
		SaveCacheFn: func(entries map[string]cdpdoc.CacheEntry[string]) error {
			mu.Lock()
			defer mu.Unlock()
			saves = append(saves, maps.Clone(entries))
			return nil
		},
	}, &saves
}

// clock is a manually advanced time source.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestCache(t *testing.T) {
	t.Parallel()

	t.Run("set then get returns the value", func(t *testing.T) {
		t.Parallel()

		store, saves := memoryStore(nil)
		c := cache.New[string](store)

		require.NoError(t, c.Set("k", "v"))
		got, ok := c.Get("k")

		assert.True(t, ok)
		assert.Equal(t, "v", got)
		require.Len(t, *saves, 1)
		assert.Equal(t, "v", (*saves)[0]["k"].Value)
	})

	t.Run("missing key is absent", func(t *testing.T) {
		t.Parallel()

		store, saves := memoryStore(nil)
		c := cache.New[string](store)

		_, ok := c.Get("nope")
		assert.False(t, ok)
		assert.Empty(t, *saves)
	})

	t.Run("expired entry is absent and its removal persisted", func(t *testing.T) {
		t.Parallel()

		clk := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
		store, saves := memoryStore(nil)
		c := cache.New[string](store, cache.WithClock(clk.now))

		require.NoError(t, c.Set("k", "v"))
		clk.advance(cdpdoc.DefaultCacheExpiry)

		_, ok := c.Get("k")
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
		require.Len(t, *saves, 2)
		assert.Empty(t, (*saves)[1])
	})

	t.Run("entry just inside the expiry is fresh", func(t *testing.T) {
		t.Parallel()

		clk := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
		store, _ := memoryStore(nil)
		c := cache.New[string](store, cache.WithClock(clk.now), cache.WithExpiry(time.Hour))

		require.NoError(t, c.Set("k", "v"))
		clk.advance(time.Hour - time.Nanosecond)

		got, ok := c.Get("k")
		assert.True(t, ok)
		assert.Equal(t, "v", got)
	})

	t.Run("loads persisted entries", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		store, _ := memoryStore(map[string]cdpdoc.CacheEntry[string]{
			"fresh": {Value: "a", Timestamp: now.Add(-time.Hour)},
			"stale": {Value: "b", Timestamp: now.Add(-25 * time.Hour)},
		})
		c := cache.New[string](store)

		got, ok := c.Get("fresh")
		assert.True(t, ok)
		assert.Equal(t, "a", got)
		_, ok = c.Get("stale")
		assert.False(t, ok)
	})

	t.Run("unreadable store starts empty", func(t *testing.T) {
		t.Parallel()

		store := &mock.CacheStore[string]{
			LoadCacheFn: func() (map[string]cdpdoc.CacheEntry[string], error) {
				return nil, errors.New("corrupt")
			},
			SaveCacheFn: func(map[string]cdpdoc.CacheEntry[string]) error { return nil },
		}
		c := cache.New[string](store)

		assert.Equal(t, 0, c.Len())
		require.NoError(t, c.Set("k", "v"))
		assert.Equal(t, 1, c.Len())
	})

	t.Run("set reports persistence failures", func(t *testing.T) {
		t.Parallel()

		store := &mock.CacheStore[string]{
			LoadCacheFn: func() (map[string]cdpdoc.CacheEntry[string], error) { return nil, nil },
			SaveCacheFn: func(map[string]cdpdoc.CacheEntry[string]) error {
				return errors.New("disk full")
			},
		}
		c := cache.New[string](store)

		assert.EqualError(t, c.Set("k", "v"), "disk full")
	})

	t.Run("concurrent writers all persist", func(t *testing.T) {
		t.Parallel()

		store, saves := memoryStore(nil)
		c := cache.New[string](store)

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = c.Set(fmt.Sprintf("k%d", i), "v")
			}()
		}
		wg.Wait()

		assert.Equal(t, 20, c.Len())
		assert.Len(t, *saves, 20)
	})

	t.Run("survives a restart with a file store", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc_cache.gob")
		first := cache.New[[]cdpdoc.Passage](fs.NewCacheFile[[]cdpdoc.Passage](path))
		passages := []cdpdoc.Passage{{Title: "Sources", Content: "Add a source", Score: 2, URL: "https://segment.com/docs/"}}
		require.NoError(t, first.Set("https://segment.com/docs/_source", passages))

		second := cache.New[[]cdpdoc.Passage](fs.NewCacheFile[[]cdpdoc.Passage](path))
		got, ok := second.Get("https://segment.com/docs/_source")

		assert.True(t, ok)
		assert.Equal(t, passages, got)
	})
}
