package crawl

import "fmt"

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatSummary renders one line describing a platform crawl.
func FormatSummary(s Summary) string {
	if s.Err != nil {
		return fmt.Sprintf("%s: failed: %v", s.Platform, s.Err)
	}
	return fmt.Sprintf("%s: %d documents (%d new, %d changed, %d unchanged, %d removed), %d pages visited, %d failed",
		s.Platform,
		len(s.Result.Documents),
		s.Added, s.Changed, s.Unchanged, s.Removed,
		s.Result.Visited, s.Result.Failed,
	)
}
