package mock

import "github.com/fwojciec/cdpdoc"

var _ cdpdoc.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of cdpdoc.Searcher.
type Searcher struct {
	SearchFn  func(query string, opts cdpdoc.SearchOptions) []cdpdoc.SearchResult
	CompareFn func(feature string) string
	LenFn     func() int
}

func (s *Searcher) Search(query string, opts cdpdoc.SearchOptions) []cdpdoc.SearchResult {
	return s.SearchFn(query, opts)
}

func (s *Searcher) Compare(feature string) string {
	return s.CompareFn(feature)
}

func (s *Searcher) Len() int {
	return s.LenFn()
}
