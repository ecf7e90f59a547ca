package search

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/fwojciec/cdpdoc/classify"
)

// DefaultMaxFeatures caps the vocabulary size.
const DefaultMaxFeatures = 10000

// Weight is one non-zero component of a Vector.
type Weight struct {
	Term  int
	Value float64
}

// Vector is a sparse, L2-normalized term weight vector ordered by term index.
type Vector []Weight

// Dot returns the dot product of two vectors. For normalized vectors this is
// their cosine similarity.
func (a Vector) Dot(b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Term < b[j].Term:
			i++
		case a[i].Term > b[j].Term:
			j++
		default:
			sum += a[i].Value * b[j].Value
			i++
			j++
		}
	}
	return sum
}

// Vectorizer maps text to TF-IDF vectors over a vocabulary of unigrams and
// bigrams fitted once on a corpus. A fitted Vectorizer is read-only and safe
// for concurrent Transform calls.
type Vectorizer struct {
	maxFeatures int
	vocabulary  map[string]int
	idf         []float64
}

// NewVectorizer creates a Vectorizer keeping at most maxFeatures terms.
// Zero means DefaultMaxFeatures; a negative value keeps every term.
func NewVectorizer(maxFeatures int) *Vectorizer {
	if maxFeatures == 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Vectorizer{maxFeatures: maxFeatures}
}

// Fit builds the vocabulary and inverse document frequencies from texts.
// When the vocabulary exceeds the limit, the terms with the highest total
// count across the corpus are kept, ties broken alphabetically. Idf is
// smoothed: ln((1+n)/(1+df)) + 1.
func (v *Vectorizer) Fit(texts []string) {
	df := make(map[string]int)
	total := make(map[string]int)
	for _, text := range texts {
		for term, n := range countTerms(Analyze(text)) {
			df[term]++
			total[term] += n
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	if v.maxFeatures > 0 && len(terms) > v.maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if total[terms[i]] != total[terms[j]] {
				return total[terms[i]] > total[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(texts))
	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
}

// Transform returns the normalized TF-IDF vector of text. Terms outside the
// fitted vocabulary are ignored; text with no known terms yields an empty vector.
func (v *Vectorizer) Transform(text string) Vector {
	var vec Vector
	for term, n := range countTerms(Analyze(text)) {
		i, ok := v.vocabulary[term]
		if !ok {
			continue
		}
		vec = append(vec, Weight{Term: i, Value: float64(n) * v.idf[i]})
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].Term < vec[j].Term })

	var norm float64
	for _, w := range vec {
		norm += w.Value * w.Value
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i].Value /= norm
	}
	return vec
}

// Len returns the vocabulary size.
func (v *Vectorizer) Len() int {
	return len(v.vocabulary)
}

// Analyze lowercases text, keeps words of at least two characters that are
// not stop words, and returns them followed by every adjacent pair joined by
// a space.
func Analyze(text string) []string {
	var words []string
	for _, w := range classify.Words(text) {
		if utf8.RuneCountInString(w) < 2 || stopWords[w] {
			continue
		}
		words = append(words, w)
	}

	terms := make([]string, 0, 2*len(words))
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

func countTerms(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	return counts
}
