package mock

import "github.com/fwojciec/cdpdoc"

var _ cdpdoc.CacheStore[string] = (*CacheStore[string])(nil)

// CacheStore is a mock implementation of cdpdoc.CacheStore.
type CacheStore[V any] struct {
	LoadCacheFn func() (map[string]cdpdoc.CacheEntry[V], error)
	SaveCacheFn func(entries map[string]cdpdoc.CacheEntry[V]) error
}

func (s *CacheStore[V]) LoadCache() (map[string]cdpdoc.CacheEntry[V], error) {
	return s.LoadCacheFn()
}

func (s *CacheStore[V]) SaveCache(entries map[string]cdpdoc.CacheEntry[V]) error {
	return s.SaveCacheFn(entries)
}
