package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/cdpdoc"
)

// Ensure DocumentStore implements cdpdoc.DocumentStore at compile time.
var _ cdpdoc.DocumentStore = (*DocumentStore)(nil)

// DocumentStore keeps one JSON array file per platform in a directory.
type DocumentStore struct {
	dir string
}

// NewDocumentStore creates a DocumentStore rooted at dir.
// The directory is created on first save.
func NewDocumentStore(dir string) *DocumentStore {
	return &DocumentStore{dir: dir}
}

// Path returns the file holding the platform's document set.
func (s *DocumentStore) Path(platform cdpdoc.Platform) string {
	return filepath.Join(s.dir, string(platform)+"_docs.json")
}

// LoadDocuments reads the platform's document set.
// Returns ENOTFOUND if the file does not exist.
func (s *DocumentStore) LoadDocuments(ctx context.Context, platform cdpdoc.Platform) ([]*cdpdoc.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(platform))
	if errors.Is(err, os.ErrNotExist) {
		return nil, cdpdoc.Errorf(cdpdoc.ENOTFOUND, "no documents saved for %s", platform)
	} else if err != nil {
		return nil, err
	}

	var docs []*cdpdoc.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, cdpdoc.Errorf(cdpdoc.EINVALID, "decoding %s: %v", s.Path(platform), err)
	}
	return docs, nil
}

// SaveDocuments replaces the platform's file with docs as an indented JSON array.
func (s *DocumentStore) SaveDocuments(ctx context.Context, platform cdpdoc.Platform, docs []*cdpdoc.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !platform.Valid() {
		return cdpdoc.Errorf(cdpdoc.EINVALID, "unknown platform %q", platform)
	}
	if docs == nil {
		docs = []*cdpdoc.Document{}
	}

	err := writeAtomic(s.Path(platform), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(docs)
	})
	if err != nil {
		return fmt.Errorf("saving %s documents: %w", platform, err)
	}
	return nil
}
