package crawl

import (
	"net/url"
	"strings"
)

// skippedExtensions are binary and document files never fetched.
var skippedExtensions = []string{".png", ".jpg", ".gif", ".pdf"}

// skippedPathWords mark login and search pages.
var skippedPathWords = []string{"login", "sign-in", "search"}

// Admit reports whether target may be crawled from seed: its host must end
// with the seed host, and its path must neither end in a skipped extension
// nor contain a login or search word. Path checks are case-sensitive.
func Admit(seed, target string) bool {
	s, err := url.Parse(seed)
	if err != nil || s.Host == "" {
		return false
	}
	t, err := url.Parse(target)
	if err != nil || t.Host == "" {
		return false
	}
	if t.Scheme != "http" && t.Scheme != "https" {
		return false
	}
	if !strings.HasSuffix(t.Host, s.Host) {
		return false
	}

	for _, ext := range skippedExtensions {
		if strings.HasSuffix(t.Path, ext) {
			return false
		}
	}
	for _, w := range skippedPathWords {
		if strings.Contains(t.Path, w) {
			return false
		}
	}
	return true
}
