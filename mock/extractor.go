package mock

import "github.com/fwojciec/cdpdoc"

var _ cdpdoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of cdpdoc.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL, seedURL string) (*cdpdoc.Page, error)
}

func (e *Extractor) Extract(html, pageURL, seedURL string) (*cdpdoc.Page, error) {
	return e.ExtractFn(html, pageURL, seedURL)
}

var _ cdpdoc.PassageFinder = (*PassageFinder)(nil)

// PassageFinder is a mock implementation of cdpdoc.PassageFinder.
type PassageFinder struct {
	FindPassagesFn func(html, pageURL string, terms []string) ([]cdpdoc.Passage, error)
}

func (f *PassageFinder) FindPassages(html, pageURL string, terms []string) ([]cdpdoc.Passage, error) {
	return f.FindPassagesFn(html, pageURL, terms)
}
