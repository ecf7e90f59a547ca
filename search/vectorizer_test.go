package search_test

import (
	"math"
	"testing"

	"github.com/fwojciec/cdpdoc/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("drops stop words and single characters before pairing", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"set", "source", "set source"}, search.Analyze("Set up a Source"))
	})

	t.Run("splits on punctuation", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"http", "api", "http api"}, search.Analyze("HTTP-API!"))
	})

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, search.Analyze("  the a of "))
	})
}

func TestVectorizer(t *testing.T) {
	t.Parallel()

	t.Run("smooths idf", func(t *testing.T) {
		t.Parallel()

		v := search.NewVectorizer(0)
		v.Fit([]string{"apple banana", "apple cherry"})

		// apple appears in both documents, banana in one.
		apple := v.Transform("apple")
		banana := v.Transform("banana")
		assert.Len(t, apple, 1)
		assert.Len(t, banana, 1)
		assert.InDelta(t, 1.0, apple[0].Value, 1e-9)
		assert.InDelta(t, 1.0, banana[0].Value, 1e-9)

		// Vocabulary is alphabetical: apple, apple banana, apple cherry, banana, cherry.
		both := v.Transform("apple banana")
		idf := math.Log(3.0/2.0) + 1
		norm := math.Sqrt(1 + 2*idf*idf)
		require.Len(t, both, 3)
		assert.Equal(t, []int{0, 1, 3}, []int{both[0].Term, both[1].Term, both[2].Term})
		assert.InDelta(t, 1/norm, both[0].Value, 1e-9)
		assert.InDelta(t, idf/norm, both[1].Value, 1e-9)
		assert.InDelta(t, idf/norm, both[2].Value, 1e-9)
	})

	t.Run("normalizes vectors", func(t *testing.T) {
		t.Parallel()

		v := search.NewVectorizer(0)
		v.Fit([]string{"tracking plan events", "identity resolution events"})

		vec := v.Transform("tracking tracking events identity")
		assert.InDelta(t, 1.0, vec.Dot(vec), 1e-9)
	})

	t.Run("ignores unknown terms", func(t *testing.T) {
		t.Parallel()

		v := search.NewVectorizer(0)
		v.Fit([]string{"audiences"})

		assert.Empty(t, v.Transform("webhooks"))
	})

	t.Run("keeps the most frequent terms", func(t *testing.T) {
		t.Parallel()

		v := search.NewVectorizer(2)
		v.Fit([]string{"alpha alpha beta", "gamma"})

		assert.Equal(t, 2, v.Len())
		assert.NotEmpty(t, v.Transform("alpha"))
		// Ties are broken alphabetically: "alpha alpha" beats "beta".
		assert.NotEmpty(t, v.Transform("alpha alpha"))
		assert.Empty(t, v.Transform("beta"))
		assert.Empty(t, v.Transform("gamma"))
	})
}

func TestVector_Dot(t *testing.T) {
	t.Parallel()

	a := search.Vector{{Term: 0, Value: 0.6}, {Term: 2, Value: 0.8}}
	b := search.Vector{{Term: 1, Value: 1}, {Term: 2, Value: 0.5}}

	assert.InDelta(t, 0.4, a.Dot(b), 1e-9)
	assert.InDelta(t, 0.0, a.Dot(nil), 1e-9)
}
