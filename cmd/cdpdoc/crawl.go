package main

import (
	"fmt"

	"github.com/fwojciec/cdpdoc"
	"github.com/fwojciec/cdpdoc/crawl"
)

// progressURLWidth is the width URLs are truncated to in progress lines.
const progressURLWidth = 60

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	seeds, err := c.seeds()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdpdoc.ErrorMessage(err))
		return err
	}

	deps.Crawler.Progress = func(e crawl.ProgressEvent) {
		status := "ok"
		if e.Err != nil {
			status = "failed"
		}
		fmt.Fprintf(deps.Stdout, "[%s] batch %d, %d visited: %s %s\n",
			e.Platform, e.Batch, e.Visited, crawl.TruncateURL(e.URL, progressURLWidth), status)
	}

	summaries, err := deps.Crawler.CrawlAll(deps.Ctx, seeds, deps.Store)
	for _, s := range summaries {
		fmt.Fprintln(deps.Stdout, crawl.FormatSummary(s))
	}
	return err
}

// seeds returns the seed URL of every selected platform
// with --seed overrides applied.
func (c *CrawlCmd) seeds() (map[cdpdoc.Platform]string, error) {
	selected := cdpdoc.Platforms()
	if len(c.Platforms) > 0 {
		selected = nil
		for _, name := range c.Platforms {
			p, err := cdpdoc.ParsePlatform(name)
			if err != nil {
				return nil, err
			}
			selected = append(selected, p)
		}
	}

	overrides := make(map[cdpdoc.Platform]string, len(c.Seeds))
	for name, u := range c.Seeds {
		p, err := cdpdoc.ParsePlatform(name)
		if err != nil {
			return nil, err
		}
		overrides[p] = u
	}

	seeds := make(map[cdpdoc.Platform]string, len(selected))
	for _, p := range selected {
		seeds[p] = cdpdoc.SeedURLs[p]
		if u, ok := overrides[p]; ok {
			seeds[p] = u
		}
	}
	return seeds, nil
}
