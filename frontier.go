package cdpdoc

import "context"

// VisitedSet records the URLs a single crawl run has claimed.
// URLs are compared as exact strings.
type VisitedSet interface {
	// Visit marks url as visited. Returns false if it already was.
	Visit(url string) bool

	// Visited reports whether url has been marked.
	Visited(url string) bool

	// Len returns the number of visited URLs.
	Len() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
