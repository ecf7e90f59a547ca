package http

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/cdpdoc"
)

// Ensure SitemapService implements cdpdoc.SitemapService.
var _ cdpdoc.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps. Documents are
// retrieved through a cdpdoc.Fetcher so they share its timeout and headers.
type SitemapService struct {
	fetcher cdpdoc.Fetcher
}

// NewSitemapService creates a new SitemapService. A nil fetcher uses NewFetcher().
func NewSitemapService(fetcher cdpdoc.Fetcher) *SitemapService {
	if fetcher == nil {
		fetcher = NewFetcher()
	}
	return &SitemapService{fetcher: fetcher}
}

// DiscoverURLs finds all URLs from a site's sitemap, deduplicated, in
// sitemap order. Returns an empty slice (not nil) if no sitemap is found.
//
// When baseURL has a non-root path (e.g., https://segment.com/docs/),
// only URLs under that path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, cdpdoc.Errorf(cdpdoc.EINVALID, "invalid base URL: %v", err)
	}

	prefix := strings.TrimSuffix(base.Path, "/") + "/"
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemaps := s.robotsSitemaps(ctx, root.JoinPath("robots.txt").String())
	if len(sitemaps) == 0 {
		sitemaps = []string{root.JoinPath("sitemap.xml").String()}
	}

	urls := []string{}
	seenURLs := make(map[string]bool)
	seenSitemaps := make(map[string]bool)
	for i, sm := range sitemaps {
		found, err := s.readSitemap(ctx, sm, seenSitemaps)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A missing fallback sitemap means the site has none.
			if i == 0 && len(sitemaps) == 1 && cdpdoc.ErrorCode(err) == cdpdoc.EUNAVAILABLE {
				return urls, nil
			}
			return nil, err
		}
		for _, u := range found {
			if seenURLs[u] || !underPath(u, prefix) {
				continue
			}
			seenURLs[u] = true
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// robotsSitemaps returns the Sitemap: directives of robots.txt, or nil if
// it cannot be fetched.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) []string {
	body, err := s.fetcher.Fetch(ctx, robotsURL)
	if err != nil {
		return nil
	}

	var sitemaps []string
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) > len("sitemap:") && strings.EqualFold(line[:len("sitemap:")], "sitemap:") {
			if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
				sitemaps = append(sitemaps, u)
			}
		}
	}
	return sitemaps
}

// readSitemap fetches a urlset or sitemapindex, following indexes recursively.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, cdpdoc.Errorf(cdpdoc.EINVALID, "empty sitemap %s", sitemapURL)
	}

	if root.Tag != "sitemapindex" {
		return locs(root, "url"), nil
	}

	var urls []string
	for _, child := range locs(root, "sitemap") {
		found, err := s.readSitemap(ctx, child, seen)
		if err != nil {
			return nil, err
		}
		urls = append(urls, found...)
	}
	return urls, nil
}

// locs returns the trimmed non-empty <loc> texts of root's tag children.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// underPath reports whether rawURL's path is prefix or lies beneath it.
// prefix always ends with a slash.
func underPath(rawURL, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasPrefix(u.Path+"/", prefix)
}
