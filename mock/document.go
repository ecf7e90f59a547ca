package mock

import (
	"context"

	"github.com/fwojciec/cdpdoc"
)

var _ cdpdoc.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of cdpdoc.DocumentStore.
type DocumentStore struct {
	LoadDocumentsFn func(ctx context.Context, platform cdpdoc.Platform) ([]*cdpdoc.Document, error)
	SaveDocumentsFn func(ctx context.Context, platform cdpdoc.Platform, docs []*cdpdoc.Document) error
}

func (s *DocumentStore) LoadDocuments(ctx context.Context, platform cdpdoc.Platform) ([]*cdpdoc.Document, error) {
	return s.LoadDocumentsFn(ctx, platform)
}

func (s *DocumentStore) SaveDocuments(ctx context.Context, platform cdpdoc.Platform, docs []*cdpdoc.Document) error {
	return s.SaveDocumentsFn(ctx, platform, docs)
}
