package crawl

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cdpdoc"
)

// Summary reports the outcome of crawling one platform in CrawlAll.
type Summary struct {
	Platform cdpdoc.Platform
	Result   *Result

	// Changes against the previously saved document set, matched by URL.
	Added     int
	Changed   int
	Unchanged int
	Removed   int

	// Err is set if the crawl or the save failed; the previous set is kept.
	Err error
}

// CrawlAll crawls every platform that has a seed, one after another in
// cdpdoc.Platforms order, and replaces each platform's document set in store.
// A failing platform is logged and reported in its Summary; the remaining
// platforms are still crawled. Only context cancellation stops the loop.
func (c *Crawler) CrawlAll(ctx context.Context, seeds map[cdpdoc.Platform]string, store cdpdoc.DocumentStore) ([]Summary, error) {
	logger := c.logger()

	var summaries []Summary
	for _, platform := range cdpdoc.Platforms() {
		seed, ok := seeds[platform]
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summaries, err
		}

		summary := Summary{Platform: platform}
		result, err := c.Crawl(ctx, platform, seed)
		summary.Result = result
		if err != nil {
			summary.Err = err
			logger.Error("failed to crawl platform", "platform", platform, "error", err)
			summaries = append(summaries, summary)
			if ctx.Err() != nil {
				return summaries, ctx.Err()
			}
			continue
		}

		previous, err := store.LoadDocuments(ctx, platform)
		if err != nil && cdpdoc.ErrorCode(err) != cdpdoc.ENOTFOUND {
			logger.Warn("failed to load previous documents", "platform", platform, "error", err)
		}
		summary.Added, summary.Changed, summary.Unchanged, summary.Removed = diff(previous, result.Documents)

		if err := store.SaveDocuments(ctx, platform, result.Documents); err != nil {
			summary.Err = fmt.Errorf("save %s documents: %w", platform, err)
			logger.Error("failed to save documents", "platform", platform, "error", err)
		} else {
			logger.Info("saved documents",
				"platform", platform,
				"documents", len(result.Documents),
				"added", summary.Added,
				"changed", summary.Changed,
				"unchanged", summary.Unchanged,
				"removed", summary.Removed,
			)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ContentHash returns a short hex fingerprint of a document's title and content.
func ContentHash(doc *cdpdoc.Document) string {
	d := xxhash.New()
	_, _ = d.WriteString(doc.Title)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(doc.Content)
	return fmt.Sprintf("%016x", d.Sum64())
}

func diff(previous, current []*cdpdoc.Document) (added, changed, unchanged, removed int) {
	old := make(map[string]string, len(previous))
	for _, d := range previous {
		old[d.URL] = ContentHash(d)
	}
	for _, d := range current {
		h, ok := old[d.URL]
		switch {
		case !ok:
			added++
		case h == ContentHash(d):
			unchanged++
		default:
			changed++
		}
		delete(old, d.URL)
	}
	return added, changed, unchanged, len(old)
}
