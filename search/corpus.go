package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/cdpdoc"
)

// Corpus is the union of every platform's saved document set.
type Corpus struct {
	// Documents in cdpdoc.Platforms order, each set in crawl order.
	Documents []*cdpdoc.Document

	// Warnings describe platforms left out of the corpus.
	Warnings []string
}

// LoadCorpus loads every platform's document set from store. A platform
// whose set is missing or unreadable is left out and reported in Warnings.
// Only context cancellation returns an error.
func LoadCorpus(ctx context.Context, store cdpdoc.DocumentStore, logger *slog.Logger) (*Corpus, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	corpus := &Corpus{}
	for _, p := range cdpdoc.Platforms() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		docs, err := store.LoadDocuments(ctx, p)
		switch {
		case cdpdoc.ErrorCode(err) == cdpdoc.ENOTFOUND:
			corpus.Warnings = append(corpus.Warnings, fmt.Sprintf("Documentation for %s not found.", p))
			logger.Warn("document set missing", "platform", p)
			continue
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			corpus.Warnings = append(corpus.Warnings, fmt.Sprintf("Documentation for %s could not be loaded: %s", p, cdpdoc.ErrorMessage(err)))
			logger.Warn("document set unreadable", "platform", p, "error", err)
			continue
		}

		corpus.Documents = append(corpus.Documents, docs...)
	}

	logger.Info("corpus loaded", "documents", len(corpus.Documents), "warnings", len(corpus.Warnings))
	return corpus, nil
}
