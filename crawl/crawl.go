// Package crawl turns vendor documentation sites into classified documents.
// A crawl walks same-site links breadth first in fixed-size batches with a
// politeness delay between batches. Each batch takes the head of the
// frontier; the next frontier is only the links that batch discovered.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/cdpdoc"
	"github.com/fwojciec/cdpdoc/bloom"
	"github.com/fwojciec/cdpdoc/classify"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Crawl defaults.
const (
	DefaultBatchSize = 5
	DefaultDelay     = time.Second
)

// Visited set sizing.
const (
	visitedExpectedURLs      = 10000
	visitedFalsePositiveRate = 0.01
)

// Crawler walks one documentation site per call to Crawl.
type Crawler struct {
	Fetcher   cdpdoc.Fetcher
	Extractor cdpdoc.Extractor

	// Sitemaps, if set, adds sitemap URLs after the seed in the first frontier.
	Sitemaps cdpdoc.SitemapService

	// Limiter, if set, is waited on before every fetch, keyed by host.
	Limiter cdpdoc.DomainLimiter

	Logger *slog.Logger

	// BatchSize is the number of pages fetched concurrently per batch.
	// Zero means DefaultBatchSize.
	BatchSize int

	// Delay is the pause between batches. Zero disables it.
	Delay time.Duration

	// MaxPages stops the crawl from starting a new batch once this many
	// URLs have been visited. Zero means no limit.
	MaxPages int

	// Progress, if set, receives an event for every processed page.
	Progress ProgressFunc
}

// Result holds the outcome of one crawl run.
type Result struct {
	RunID    uuid.UUID
	Platform cdpdoc.Platform

	// Documents are in batch order, and within a batch in frontier order.
	Documents []*cdpdoc.Document

	// Visited is the number of URLs claimed, including failed ones.
	Visited int

	// Failed is the number of pages whose fetch or extraction failed.
	Failed int
}

// Run is the state of a single crawl of one platform.
type Run struct {
	ID       uuid.UUID
	Platform cdpdoc.Platform
	SeedURL  string
	Visited  cdpdoc.VisitedSet
}

// NewRun starts a run with an empty visited set.
func NewRun(platform cdpdoc.Platform, seedURL string) *Run {
	return &Run{
		ID:       uuid.New(),
		Platform: platform,
		SeedURL:  seedURL,
		Visited:  bloom.NewVisitedSet(visitedExpectedURLs, visitedFalsePositiveRate),
	}
}

// ProgressEvent reports one processed page.
type ProgressEvent struct {
	Platform cdpdoc.Platform
	URL      string
	Batch    int
	Visited  int
	Err      error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl walks the site rooted at seedURL and returns the classified documents.
// Page failures never abort the crawl. If ctx is canceled the documents
// gathered so far are returned together with the context error.
func (c *Crawler) Crawl(ctx context.Context, platform cdpdoc.Platform, seedURL string) (*Result, error) {
	if !platform.Valid() {
		return nil, cdpdoc.Errorf(cdpdoc.EINVALID, "unknown platform %q", platform)
	}
	if u, err := url.Parse(seedURL); err != nil || u.Host == "" {
		return nil, cdpdoc.Errorf(cdpdoc.EINVALID, "invalid seed URL %q", seedURL)
	}

	batchSize := c.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	logger := c.logger()

	run := NewRun(platform, seedURL)
	result := &Result{RunID: run.ID, Platform: platform}

	frontier := c.initialFrontier(ctx, run)
	logger.Info("crawl started", "platform", platform, "run", run.ID, "seed", seedURL, "frontier", len(frontier))

	for batchNum := 1; len(frontier) > 0; batchNum++ {
		if err := ctx.Err(); err != nil {
			result.Visited = run.Visited.Len()
			return result, err
		}
		if c.MaxPages > 0 && run.Visited.Len() >= c.MaxPages {
			logger.Warn("crawl page limit reached", "platform", platform, "limit", c.MaxPages, "pending", len(frontier))
			break
		}

		n := min(batchSize, len(frontier))
		batch := frontier[:n]
		if dropped := len(frontier) - n; dropped > 0 {
			logger.Debug("frontier truncated to batch", "platform", platform, "batch", batchNum, "dropped", dropped)
		}

		outcomes := make([]pageOutcome, n)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(batchSize)
		for i, pageURL := range batch {
			g.Go(func() error {
				doc, links, err := c.ProcessPage(gctx, run, pageURL)
				outcomes[i] = pageOutcome{url: pageURL, doc: doc, links: links, err: err}
				return nil
			})
		}
		_ = g.Wait()

		var discovered []string
		for _, o := range outcomes {
			if o.err != nil {
				result.Failed++
			}
			if o.doc != nil {
				result.Documents = append(result.Documents, o.doc)
			}
			discovered = append(discovered, o.links...)
			if c.Progress != nil {
				c.Progress(ProgressEvent{
					Platform: platform,
					URL:      o.url,
					Batch:    batchNum,
					Visited:  run.Visited.Len(),
					Err:      o.err,
				})
			}
		}

		frontier = NextFrontier(nil, discovered, run.Visited)

		if len(frontier) > 0 && c.Delay > 0 {
			if err := sleep(ctx, c.Delay); err != nil {
				result.Visited = run.Visited.Len()
				return result, err
			}
		}
	}

	result.Visited = run.Visited.Len()
	logger.Info("crawl finished",
		"platform", platform,
		"run", run.ID,
		"documents", len(result.Documents),
		"visited", result.Visited,
		"failed", result.Failed,
	)
	return result, nil
}

// ProcessPage claims pageURL for the run, fetches it once and classifies it.
// URLs that are already visited or not admitted return nothing and are not
// fetched. Fetch and extraction failures are logged and returned as err with
// no document and no links; the URL stays visited.
func (c *Crawler) ProcessPage(ctx context.Context, run *Run, pageURL string) (*cdpdoc.Document, []string, error) {
	if !Admit(run.SeedURL, pageURL) || !run.Visited.Visit(pageURL) {
		return nil, nil, nil
	}
	logger := c.logger()

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, host(pageURL)); err != nil {
			return nil, nil, err
		}
	}

	html, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		logger.Warn("failed to fetch page", "platform", run.Platform, "url", pageURL, "error", err)
		return nil, nil, err
	}

	page, err := c.Extractor.Extract(html, pageURL, run.SeedURL)
	if err != nil {
		logger.Warn("failed to extract page", "platform", run.Platform, "url", pageURL, "error", err)
		return nil, nil, fmt.Errorf("extract %s: %w", pageURL, err)
	}

	doc := classify.NewDocument(pageURL, page.Title, page.Content, run.Platform)
	return doc, page.Links, nil
}

// NextFrontier returns the pending URLs followed by the discovered ones,
// without duplicates or visited URLs, in first-seen order.
func NextFrontier(pending, discovered []string, visited cdpdoc.VisitedSet) []string {
	seen := make(map[string]bool, len(pending)+len(discovered))
	next := make([]string, 0, len(pending)+len(discovered))
	for _, list := range [][]string{pending, discovered} {
		for _, u := range list {
			if seen[u] || visited.Visited(u) {
				continue
			}
			seen[u] = true
			next = append(next, u)
		}
	}
	return next
}

type pageOutcome struct {
	url   string
	doc   *cdpdoc.Document
	links []string
	err   error
}

func (c *Crawler) initialFrontier(ctx context.Context, run *Run) []string {
	frontier := []string{run.SeedURL}
	if c.Sitemaps == nil {
		return frontier
	}
	urls, err := c.Sitemaps.DiscoverURLs(ctx, run.SeedURL)
	if err != nil {
		c.logger().Warn("sitemap discovery failed", "platform", run.Platform, "seed", run.SeedURL, "error", err)
		return frontier
	}
	return NextFrontier(frontier, urls, run.Visited)
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
