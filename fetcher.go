package cdpdoc

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch makes a single attempt to retrieve the page and returns its HTML.
	// Any status other than 200 is an error with code EUNAVAILABLE.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}
