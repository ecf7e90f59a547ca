package goquery_test

import (
	"testing"

	"github.com/fwojciec/cdpdoc"
	"github.com/fwojciec/cdpdoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements the domain interfaces at compile time.
var (
	_ cdpdoc.Extractor     = (*goquery.Extractor)(nil)
	_ cdpdoc.PassageFinder = (*goquery.Extractor)(nil)
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	const seed = "https://segment.com/docs/"

	t.Run("extracts text and links from main", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>  Sources Overview </title></head>
<body>
<nav><a href="/docs/outside">Outside</a></nav>
<main>
	<h1>Sources</h1>
	<p>A source   sends
	data.</p>
	<a href="connections/sources/catalog/">Catalog</a>
	<a href="https://segment.com/docs/protocols/">Protocols</a>
</main>
</body>
</html>`

		page, err := goquery.NewExtractor().Extract(html, "https://segment.com/docs/connections/", seed)

		require.NoError(t, err)
		assert.Equal(t, "Sources Overview", page.Title)
		assert.Equal(t, "Sources A source sends data. Catalog Protocols", page.Content)
		assert.Equal(t, []string{
			"https://segment.com/docs/connections/sources/catalog/",
			"https://segment.com/docs/protocols/",
		}, page.Links)
	})

	t.Run("falls back to article then div.content", func(t *testing.T) {
		t.Parallel()

		article := `<html><body><div class="content">div</div><article>article</article></body></html>`
		page, err := goquery.NewExtractor().Extract(article, seed, seed)
		require.NoError(t, err)
		assert.Equal(t, "article", page.Content)

		div := `<html><body><div class="wrapper">skip</div><div class="main content">div text</div></body></html>`
		page, err = goquery.NewExtractor().Extract(div, seed, seed)
		require.NoError(t, err)
		assert.Equal(t, "div text", page.Content)
	})

	t.Run("returns ENOTFOUND without a main region", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="wrapper"><a href="/docs/a">A</a></div></body></html>`

		page, err := goquery.NewExtractor().Extract(html, seed, seed)

		assert.Nil(t, page)
		assert.Equal(t, cdpdoc.ENOTFOUND, cdpdoc.ErrorCode(err))
	})

	t.Run("strips boilerplate and its links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>
<header><a href="/docs/header">Header</a></header>
<script>var x = 1;</script>
<style>p { color: red }</style>
<p>Body</p>
<nav><a href="/docs/nav">Nav</a></nav>
<footer>Footer</footer>
</main></body></html>`

		page, err := goquery.NewExtractor().Extract(html, seed, seed)

		require.NoError(t, err)
		assert.Equal(t, "Body", page.Content)
		assert.Empty(t, page.Links)
	})

	t.Run("resolves links against the seed and skips non-http hrefs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>
<a href="guides/">Guides</a>
<a href="mailto:docs@example.com">Mail</a>
<a href="javascript:void(0)">JS</a>
<a href="">Empty</a>
<a href="#install">Anchor</a>
</main></body></html>`

		page, err := goquery.NewExtractor().Extract(html, "https://segment.com/docs/deep/page/", seed)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://segment.com/docs/guides/",
			"https://segment.com/docs/#install",
		}, page.Links)
	})

	t.Run("missing title is empty", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewExtractor().Extract(`<html><body><main>x</main></body></html>`, seed, seed)

		require.NoError(t, err)
		assert.Empty(t, page.Title)
	})

	t.Run("rejects invalid seed URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().Extract(`<main></main>`, seed, "://bad")

		assert.Equal(t, cdpdoc.EINVALID, cdpdoc.ErrorCode(err))
	})
}
