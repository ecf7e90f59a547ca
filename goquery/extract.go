// Package goquery implements HTML content extraction using goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cdpdoc"
	"golang.org/x/net/html"
)

var _ cdpdoc.Extractor = (*Extractor)(nil)

// mainSelectors are tried in order; the first element found is the main region.
var mainSelectors = []string{"main", "article", "div.content"}

// boilerplate is removed from the main region before text and links are read.
const boilerplate = "script, style, nav, header, footer"

// Extractor implements cdpdoc.Extractor and cdpdoc.PassageFinder.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract locates the main content region of html and returns its text and links.
func (e *Extractor) Extract(htmlContent, pageURL, seedURL string) (*cdpdoc.Page, error) {
	seed, err := url.Parse(seedURL)
	if err != nil {
		return nil, cdpdoc.Errorf(cdpdoc.EINVALID, "invalid seed URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, cdpdoc.Errorf(cdpdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	var region *goquery.Selection
	for _, sel := range mainSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			region = s
			break
		}
	}
	if region == nil {
		return nil, cdpdoc.Errorf(cdpdoc.ENOTFOUND, "no main content in %s", pageURL)
	}

	region.Find(boilerplate).Remove()

	var links []string
	region.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		if resolved := resolveURL(seed, href); resolved != "" {
			links = append(links, resolved)
		}
	})

	return &cdpdoc.Page{
		Title:   strings.TrimSpace(doc.Find("title").First().Text()),
		Content: joinText(region.Nodes[0]),
		Links:   links,
	}, nil
}

// joinText returns the non-blank text nodes under n, each trimmed and
// whitespace-collapsed, joined by single spaces.
func joinText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.Join(strings.Fields(n.Data), " "); s != "" {
				parts = append(parts, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

// resolveURL resolves href against base. Fragments are kept so that the
// visited set compares URLs exactly as discovered.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
