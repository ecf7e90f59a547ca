// Package engine routes CDP questions to the search index, the feature
// comparison or the live documentation lookup, and renders the answer.
//
// An Engine is created once at startup and shared by every caller; it holds
// no global state.
package engine

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/fwojciec/cdpdoc"
	"github.com/fwojciec/cdpdoc/search"
)

// comparisonPatterns mark a question as a cross-platform comparison.
var comparisonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`compare|difference|versus|vs|different|better`),
	regexp.MustCompile(`how does (\w+) compare to (\w+)`),
	regexp.MustCompile(`which platform (is|has) better`),
}

// featurePattern captures the feature of "compare ... for|in|with <feature>".
var featurePattern = regexp.MustCompile(`compare.+?(for|in|with)\s+([^?]+)`)

// Route is the kind of answer a question gets.
type Route string

// Routes.
const (
	RouteCompare Route = "compare"
	RouteLookup  Route = "lookup"
)

// Answerer answers a question from live documentation.
type Answerer interface {
	Answer(ctx context.Context, question string) string
}

// Engine answers questions. The searcher can be replaced while the engine
// serves; a replacement is only visible once fully built.
type Engine struct {
	mu       sync.RWMutex
	searcher cdpdoc.Searcher

	// Live, if set, answers lookups that match no indexed document but
	// name a platform.
	Live Answerer

	Logger *slog.Logger
}

// New creates an Engine serving from searcher.
func New(searcher cdpdoc.Searcher) *Engine {
	return &Engine{searcher: searcher}
}

// Searcher returns the searcher currently serving queries.
func (e *Engine) Searcher() cdpdoc.Searcher {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.searcher
}

// SetSearcher replaces the searcher. Queries already running finish on the
// previous one.
func (e *Engine) SetSearcher(s cdpdoc.Searcher) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.searcher = s
}

// Reload rebuilds the index from the document sets in store and swaps it in.
// The returned warnings name platforms missing from the new corpus.
func (e *Engine) Reload(ctx context.Context, store cdpdoc.DocumentStore, opts ...search.Option) ([]string, error) {
	corpus, err := search.LoadCorpus(ctx, store, e.logger())
	if err != nil {
		return nil, err
	}
	e.SetSearcher(search.Build(corpus.Documents, opts...))
	return corpus.Warnings, nil
}

// Classify returns the route for question.
func Classify(question string) Route {
	q := strings.ToLower(question)
	for _, p := range comparisonPatterns {
		if p.MatchString(q) {
			return RouteCompare
		}
	}
	return RouteLookup
}

// Feature extracts the feature a comparison question is about: the text
// after "compare ... for|in|with", else the question's last word.
func Feature(question string) string {
	if m := featurePattern.FindStringSubmatch(strings.ToLower(question)); m != nil {
		return m[2]
	}
	fields := strings.Fields(question)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// GenerateResponse answers question. Comparisons go to the searcher's
// Compare; everything else is ranked and the best document rendered.
func (e *Engine) GenerateResponse(ctx context.Context, question string) string {
	searcher := e.Searcher()
	route := Classify(question)
	e.logger().Debug("routing question", "route", route, "question", question)

	if route == RouteCompare {
		return searcher.Compare(Feature(question))
	}

	results := searcher.Search(question, cdpdoc.SearchOptions{
		Limit:        cdpdoc.DefaultTopK,
		RelevantOnly: true,
	})
	if len(results) == 0 {
		if e.Live != nil {
			if _, ok := cdpdoc.IdentifyPlatform(question); ok {
				return e.Live.Answer(ctx, question)
			}
		}
		return search.NoResults
	}
	return search.FormatResponse(results[0].Document)
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
