// Package live answers platform questions by scraping the platform's
// documentation landing page on demand, with results cached per page and
// question.
package live

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/cdpdoc"
)

// Answers returned by Navigator.Answer when no passage can be shown.
const (
	NoPlatform = "Please specify which platform you're asking about (Segment, mParticle, Lytics, or Zeotap)."
	Failed     = "I encountered an error while processing your question. Please try again."
)

// maxPassages is the number of passages kept per scrape.
const maxPassages = 3

// PassageCache stores scraped passages by key.
type PassageCache interface {
	Get(key string) ([]cdpdoc.Passage, bool)
	Set(key string, passages []cdpdoc.Passage) error
}

// Navigator looks up questions on live documentation pages.
type Navigator struct {
	Fetcher cdpdoc.Fetcher
	Finder  cdpdoc.PassageFinder

	// Cache, if set, short-circuits repeated scrapes of the same page and question.
	Cache PassageCache

	// URLs maps each platform to the page scraped for it.
	// Defaults to cdpdoc.LiveURLs.
	URLs map[cdpdoc.Platform]string

	Logger *slog.Logger
}

// Scrape returns the best passages of pageURL for searchTerm, at most three.
// A cached non-empty result is returned without fetching. Fresh results are
// cached even when empty.
func (n *Navigator) Scrape(ctx context.Context, pageURL, searchTerm string) ([]cdpdoc.Passage, error) {
	key := CacheKey(pageURL, searchTerm)
	if n.Cache != nil {
		if passages, ok := n.Cache.Get(key); ok && len(passages) > 0 {
			return passages, nil
		}
	}

	html, err := n.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	passages, err := n.Finder.FindPassages(html, pageURL, Terms(searchTerm))
	if err != nil {
		return nil, err
	}
	passages = passages[:min(maxPassages, len(passages))]

	if n.Cache != nil {
		if err := n.Cache.Set(key, passages); err != nil {
			n.logger().Warn("failed to cache passages", "key", key, "error", err)
		}
	}
	return passages, nil
}

// Answer identifies the platform named in question, scrapes its page and
// renders the best passage.
func (n *Navigator) Answer(ctx context.Context, question string) string {
	platform, ok := cdpdoc.IdentifyPlatform(question)
	if !ok {
		return NoPlatform
	}
	pageURL, ok := n.urls()[platform]
	if !ok {
		return NotFound(platform)
	}

	passages, err := n.Scrape(ctx, pageURL, question)
	if err != nil {
		if ctx.Err() != nil {
			return Failed
		}
		n.logger().Error("failed to scrape documentation", "platform", platform, "url", pageURL, "error", err)
	}
	if len(passages) == 0 {
		return NotFound(platform)
	}

	best := passages[0]
	return fmt.Sprintf("Here's what I found in the %s documentation:\n\n%s\n\nSource: %s", platform, best.Content, best.URL)
}

// NotFound is the answer when a platform's page has no matching passage.
func NotFound(platform cdpdoc.Platform) string {
	return fmt.Sprintf("I couldn't find relevant information in the %s documentation. Could you rephrase your question?", platform)
}

// CacheKey identifies a scrape of pageURL for searchTerm.
func CacheKey(pageURL, searchTerm string) string {
	return pageURL + "_" + searchTerm
}

// Terms splits a question into lowercase whitespace-separated terms.
func Terms(question string) []string {
	return strings.Fields(strings.ToLower(question))
}

func (n *Navigator) urls() map[cdpdoc.Platform]string {
	if n.URLs == nil {
		return cdpdoc.LiveURLs
	}
	return n.URLs
}

func (n *Navigator) logger() *slog.Logger {
	if n.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return n.Logger
}
