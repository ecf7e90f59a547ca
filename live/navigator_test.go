package live_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/cdpdoc"
	"github.com/fwojciec/cdpdoc/goquery"
	cdphttp "github.com/fwojciec/cdpdoc/http"
	"github.com/fwojciec/cdpdoc/live"
	"github.com/fwojciec/cdpdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCache is an in-memory PassageCache.
type mapCache map[string][]cdpdoc.Passage

func (c mapCache) Get(key string) ([]cdpdoc.Passage, bool) {
	p, ok := c[key]
	return p, ok
}

func (c mapCache) Set(key string, passages []cdpdoc.Passage) error {
	c[key] = passages
	return nil
}

const page = `<html><body>
<h2>Sources</h2>
<div class="doc-main">To add a source in Segment open the Sources catalog.</div>
<h2>Destinations</h2>
<div class="doc-main">Destinations receive events.</div>
</body></html>`

func TestNavigator_Answer(t *testing.T) {
	t.Parallel()

	t.Run("answers from the platform page", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte(page))
		}))
		defer srv.Close()

		nav := &live.Navigator{
			Fetcher: cdphttp.NewFetcher(),
			Finder:  goquery.NewExtractor(),
			Cache:   mapCache{},
			URLs:    map[cdpdoc.Platform]string{cdpdoc.Segment: srv.URL + "/docs/"},
		}

		got := nav.Answer(context.Background(), "How do I add a source in Segment?")

		want := "Here's what I found in the segment documentation:\n\n" +
			"To add a source in Segment open the Sources catalog.\n\n" +
			"Source: " + srv.URL + "/docs/"
		assert.Equal(t, want, got)

		// The second identical question is served from the cache.
		assert.Equal(t, want, nav.Answer(context.Background(), "How do I add a source in Segment?"))
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("asks for a platform when none is named", func(t *testing.T) {
		t.Parallel()

		nav := &live.Navigator{}
		assert.Equal(t, live.NoPlatform, nav.Answer(context.Background(), "How do I add a source?"))
	})

	t.Run("fetch failure reads as nothing found", func(t *testing.T) {
		t.Parallel()

		nav := &live.Navigator{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "", cdpdoc.Errorf(cdpdoc.EUNAVAILABLE, "HTTP 503")
				},
			},
			Finder: goquery.NewExtractor(),
		}

		got := nav.Answer(context.Background(), "lytics audiences")
		assert.Equal(t, live.NotFound(cdpdoc.Lytics), got)
		assert.Equal(t, "I couldn't find relevant information in the lytics documentation. Could you rephrase your question?", got)
	})

	t.Run("canceled context is an error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		nav := &live.Navigator{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, _ string) (string, error) { return "", ctx.Err() },
			},
			Finder: goquery.NewExtractor(),
		}

		assert.Equal(t, live.Failed, nav.Answer(ctx, "zeotap"))
	})
}

func TestNavigator_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("keeps the top three passages and caches them", func(t *testing.T) {
		t.Parallel()

		passages := []cdpdoc.Passage{{Score: 4}, {Score: 3}, {Score: 2}, {Score: 1}}
		cache := mapCache{}
		nav := &live.Navigator{
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) { return "<html/>", nil }},
			Finder: &mock.PassageFinder{
				FindPassagesFn: func(_, _ string, terms []string) ([]cdpdoc.Passage, error) {
					assert.Equal(t, []string{"build", "audiences"}, terms)
					return passages, nil
				},
			},
			Cache: cache,
		}

		got, err := nav.Scrape(context.Background(), "https://docs.lytics.com/", "Build Audiences")

		require.NoError(t, err)
		assert.Equal(t, passages[:3], got)
		assert.Equal(t, passages[:3], cache[live.CacheKey("https://docs.lytics.com/", "Build Audiences")])
	})

	t.Run("cached empty result is scraped again", func(t *testing.T) {
		t.Parallel()

		var fetches int
		cache := mapCache{live.CacheKey("u", "q"): {}}
		nav := &live.Navigator{
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
				fetches++
				return "", nil
			}},
			Finder: &mock.PassageFinder{
				FindPassagesFn: func(string, string, []string) ([]cdpdoc.Passage, error) { return nil, nil },
			},
			Cache: cache,
		}

		_, err := nav.Scrape(context.Background(), "u", "q")
		require.NoError(t, err)
		assert.Equal(t, 1, fetches)
	})

	t.Run("returns finder errors", func(t *testing.T) {
		t.Parallel()

		nav := &live.Navigator{
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) { return "", nil }},
			Finder: &mock.PassageFinder{
				FindPassagesFn: func(string, string, []string) ([]cdpdoc.Passage, error) {
					return nil, errors.New("bad html")
				},
			},
		}

		_, err := nav.Scrape(context.Background(), "u", "q")
		assert.EqualError(t, err, "bad html")
	})
}
