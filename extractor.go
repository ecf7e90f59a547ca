package cdpdoc

// Page holds what the crawler keeps from one fetched HTML page.
type Page struct {
	// Title is the trimmed <title> text; empty if the page has none.
	Title string

	// Content is the plain text of the main content region with
	// script, style, nav, header and footer subtrees removed.
	Content string

	// Links are the hrefs found inside the main content region,
	// resolved against the crawl seed URL, in document order.
	Links []string
}

// Extractor locates the main content of a documentation page.
type Extractor interface {
	// Extract parses html fetched from pageURL. Relative links are resolved
	// against seedURL. Returns ENOTFOUND if the page has no main content
	// region; such a page contributes neither a document nor links.
	Extract(html, pageURL, seedURL string) (*Page, error)
}

// PassageFinder scores documentation sections of a page against search terms.
type PassageFinder interface {
	// FindPassages returns the sections of html containing any of terms,
	// sorted by descending score.
	FindPassages(html, pageURL string, terms []string) ([]Passage, error)
}
