// Package bloom provides URL deduplication backed by Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/cdpdoc"
)

var _ cdpdoc.VisitedSet = (*VisitedSet)(nil)

// VisitedSet is the exact set of URLs claimed during one crawl run.
// A Bloom filter answers most negative lookups before the map is consulted;
// a positive filter answer is always confirmed against the map, so false
// positives never drop a URL. Safe for concurrent use.
type VisitedSet struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
	urls   map[string]struct{}
}

// NewVisitedSet creates a VisitedSet sized for n expected URLs with the
// given Bloom filter false positive rate.
func NewVisitedSet(n uint, fpRate float64) *VisitedSet {
	return &VisitedSet{
		filter: bloom.NewWithEstimates(n, fpRate),
		urls:   make(map[string]struct{}),
	}
}

// Visit marks url as visited. Returns false if it already was.
func (v *VisitedSet) Visit(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.contains(url) {
		return false
	}
	v.filter.AddString(url)
	v.urls[url] = struct{}{}
	return true
}

// Visited reports whether url has been marked.
func (v *VisitedSet) Visited(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.contains(url)
}

// Len returns the number of visited URLs.
func (v *VisitedSet) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.urls)
}

func (v *VisitedSet) contains(url string) bool {
	if !v.filter.TestString(url) {
		return false
	}
	_, ok := v.urls[url]
	return ok
}
