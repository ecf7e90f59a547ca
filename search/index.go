// Package search ranks CDP documents against free-text queries with a TF-IDF
// vector space built once over the whole corpus.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/cdpdoc"
)

var _ cdpdoc.Searcher = (*Index)(nil)

// Index is an immutable vector space over a fixed corpus. Queries never
// modify it, so it may be searched concurrently. A changed corpus needs a
// new Index.
type Index struct {
	docs       []*cdpdoc.Document
	vectors    []Vector
	vectorizer *Vectorizer
}

// Option configures Build.
type Option func(*options)

type options struct {
	maxFeatures int
}

// WithMaxFeatures caps the vocabulary size. Defaults to DefaultMaxFeatures.
func WithMaxFeatures(n int) Option {
	return func(o *options) {
		o.maxFeatures = n
	}
}

// Build fits the vector space over docs. Each document is represented by
// its title, content and keywords.
func Build(docs []*cdpdoc.Document, opts ...Option) *Index {
	o := options{maxFeatures: DefaultMaxFeatures}
	for _, opt := range opts {
		opt(&o)
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = featureText(d)
	}

	v := NewVectorizer(o.maxFeatures)
	v.Fit(texts)

	vectors := make([]Vector, len(docs))
	for i, text := range texts {
		vectors[i] = v.Transform(text)
	}

	return &Index{
		docs:       docs,
		vectors:    vectors,
		vectorizer: v,
	}
}

// Len returns the number of indexed documents.
func (x *Index) Len() int {
	return len(x.docs)
}

// Documents returns the indexed documents in corpus order.
func (x *Index) Documents() []*cdpdoc.Document {
	return x.docs
}

// Search returns up to opts.Limit documents by descending cosine similarity
// to query. Equal scores keep corpus order.
func (x *Index) Search(query string, opts cdpdoc.SearchOptions) []cdpdoc.SearchResult {
	limit := opts.Limit
	if limit <= 0 {
		limit = cdpdoc.DefaultTopK
	}

	q := x.vectorizer.Transform(query)

	var results []cdpdoc.SearchResult
	for i, doc := range x.docs {
		if !platformAllowed(doc.Platform, opts.Platforms) {
			continue
		}
		score := q.Dot(x.vectors[i])
		if opts.RelevantOnly && score <= 0 {
			continue
		}
		results = append(results, cdpdoc.SearchResult{Document: doc, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Compare lists, per platform, the documents whose content or keywords
// mention feature (case-insensitive). Platforms appear in the order of their
// first matching document. Each lists at most two titles, and how-to
// documents add up to three of their steps.
func (x *Index) Compare(feature string) string {
	needle := strings.ToLower(feature)

	var order []cdpdoc.Platform
	hits := make(map[cdpdoc.Platform][]*cdpdoc.Document)
	for _, doc := range x.docs {
		if !mentions(doc, needle) {
			continue
		}
		if _, ok := hits[doc.Platform]; !ok {
			order = append(order, doc.Platform)
		}
		hits[doc.Platform] = append(hits[doc.Platform], doc)
	}
	if len(order) == 0 {
		return cdpdoc.CompareNotFound
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's how different platforms handle %s:\n\n", feature)
	for _, p := range order {
		fmt.Fprintf(&b, "\n%s:\n", strings.ToUpper(string(p)))
		for _, doc := range hits[p][:min(2, len(hits[p]))] {
			fmt.Fprintf(&b, "- %s\n", doc.Title)
			if doc.Type == cdpdoc.DocTypeHowTo && len(doc.HowToSteps) > 0 {
				b.WriteString("  Key steps:\n")
				for _, step := range doc.HowToSteps[:min(3, len(doc.HowToSteps))] {
					fmt.Fprintf(&b, "  * %s\n", step)
				}
			}
		}
	}
	return b.String()
}

func featureText(d *cdpdoc.Document) string {
	return d.Title + " " + d.Content + " " + strings.Join(d.Keywords, " ")
}

func mentions(doc *cdpdoc.Document, needle string) bool {
	return strings.Contains(strings.ToLower(doc.Content), needle) ||
		strings.Contains(strings.ToLower(strings.Join(doc.Keywords, " ")), needle)
}

func platformAllowed(p cdpdoc.Platform, allowed []cdpdoc.Platform) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == p {
			return true
		}
	}
	return false
}
