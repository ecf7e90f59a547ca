package cdpdoc

// DefaultTopK is the number of results returned when no limit is given.
const DefaultTopK = 3

// CompareNotFound is returned by Compare when no document mentions the feature.
const CompareNotFound = "I couldn't find enough information to compare this feature across platforms."

// Searcher ranks documents against free-text queries.
type Searcher interface {
	// Search returns documents ordered by descending similarity to the query.
	Search(query string, opts SearchOptions) []SearchResult

	// Compare summarizes how each platform documents a feature.
	// Returns CompareNotFound if no document mentions it.
	Compare(feature string) string

	// Len returns the number of indexed documents.
	Len() int
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Maximum number of results to return. Zero means DefaultTopK.
	Limit int

	// Drop results with zero similarity. By default every document is
	// ranked and the top Limit are returned whatever their score.
	RelevantOnly bool

	// Restrict results to these platforms. Empty means all platforms.
	Platforms []Platform
}

// SearchResult represents a ranked document.
type SearchResult struct {
	Document *Document
	Score    float64
}
