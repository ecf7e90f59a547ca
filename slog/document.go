package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cdpdoc"
)

// Ensure LoggingDocumentStore implements cdpdoc.DocumentStore.
var _ cdpdoc.DocumentStore = (*LoggingDocumentStore)(nil)

// LoggingDocumentStore wraps a DocumentStore with logging.
type LoggingDocumentStore struct {
	next   cdpdoc.DocumentStore
	logger *slog.Logger
}

// NewLoggingDocumentStore creates a new LoggingDocumentStore.
func NewLoggingDocumentStore(next cdpdoc.DocumentStore, logger *slog.Logger) *LoggingDocumentStore {
	return &LoggingDocumentStore{next: next, logger: logger}
}

// LoadDocuments delegates to the wrapped store and logs the operation.
func (s *LoggingDocumentStore) LoadDocuments(ctx context.Context, platform cdpdoc.Platform) (docs []*cdpdoc.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("load documents",
			"platform", platform,
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadDocuments(ctx, platform)
}

// SaveDocuments delegates to the wrapped store and logs the operation.
func (s *LoggingDocumentStore) SaveDocuments(ctx context.Context, platform cdpdoc.Platform, docs []*cdpdoc.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save documents",
			"platform", platform,
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveDocuments(ctx, platform, docs)
}
