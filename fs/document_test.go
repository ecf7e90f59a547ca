package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/cdpdoc"
	"github.com/fwojciec/cdpdoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Document sets on disk
// Each platform's crawl is one JSON array file, replaced wholesale.

func sampleDocs() []*cdpdoc.Document {
	return []*cdpdoc.Document{
		{
			URL:        "https://segment.com/docs/connections/sources/",
			Title:      "How to set up a Source",
			Platform:   cdpdoc.Segment,
			Content:    "1. Click New Source 2. Name it 3. Save",
			Type:       cdpdoc.DocTypeHowTo,
			Keywords:   []string{"source"},
			HowToSteps: []string{"Click New Source", "Name it", "Save"},
			Metadata: cdpdoc.Metadata{
				Category:   cdpdoc.CategoryGeneral,
				Difficulty: cdpdoc.DifficultyBeginner,
			},
		},
		{
			URL:      "https://segment.com/docs/privacy/",
			Title:    "Privacy <Portal> & Consent, über",
			Platform: cdpdoc.Segment,
			Content:  "Privacy settings",
			Type:     cdpdoc.DocTypeGeneral,
			Metadata: cdpdoc.Metadata{Category: cdpdoc.CategorySecurity, Difficulty: cdpdoc.DifficultyBeginner},
		},
	}
}

func TestDocumentStore_RoundTrip(t *testing.T) {
	t.Parallel()

	// Given a store in an empty directory
	dir := filepath.Join(t.TempDir(), "cdp_docs")
	store := fs.NewDocumentStore(dir)
	ctx := context.Background()

	// When I save a platform's documents
	require.NoError(t, store.SaveDocuments(ctx, cdpdoc.Segment, sampleDocs()))

	// Then loading returns them in order
	got, err := store.LoadDocuments(ctx, cdpdoc.Segment)
	require.NoError(t, err)
	assert.Equal(t, sampleDocs(), got)

	// And the file is named after the platform
	assert.Equal(t, filepath.Join(dir, "segment_docs.json"), store.Path(cdpdoc.Segment))
}

func TestDocumentStore_WritesReadableJSON(t *testing.T) {
	t.Parallel()

	// Given a saved document set
	store := fs.NewDocumentStore(t.TempDir())
	require.NoError(t, store.SaveDocuments(context.Background(), cdpdoc.Segment, sampleDocs()))

	// When I read the raw file
	data, err := os.ReadFile(store.Path(cdpdoc.Segment))
	require.NoError(t, err)

	// Then it is indented, unescaped UTF-8
	assert.Contains(t, string(data), "\n  {\n    \"url\": ")
	assert.Contains(t, string(data), "Privacy <Portal> & Consent, über")

	// And every document carries the full field set
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	for _, key := range []string{"url", "title", "platform", "content", "type", "keywords", "howto_steps", "metadata"} {
		assert.Contains(t, raw[0], key)
	}
	meta, ok := raw[0]["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Nil(t, meta["last_updated"])
	assert.Equal(t, "beginner", meta["difficulty_level"])
}

func TestDocumentStore_SaveReplacesPreviousSet(t *testing.T) {
	t.Parallel()

	// Given a platform with a saved set
	store := fs.NewDocumentStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.SaveDocuments(ctx, cdpdoc.Segment, sampleDocs()))

	// When I save a smaller set
	require.NoError(t, store.SaveDocuments(ctx, cdpdoc.Segment, sampleDocs()[:1]))

	// Then only the new set remains
	got, err := store.LoadDocuments(ctx, cdpdoc.Segment)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// And no temporary files are left behind
	entries, err := os.ReadDir(filepath.Dir(store.Path(cdpdoc.Segment)))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDocumentStore_EmptySetIsAnArray(t *testing.T) {
	t.Parallel()

	store := fs.NewDocumentStore(t.TempDir())
	require.NoError(t, store.SaveDocuments(context.Background(), cdpdoc.Zeotap, nil))

	data, err := os.ReadFile(store.Path(cdpdoc.Zeotap))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestDocumentStore_MissingSetIsNotFound(t *testing.T) {
	t.Parallel()

	store := fs.NewDocumentStore(t.TempDir())

	_, err := store.LoadDocuments(context.Background(), cdpdoc.Lytics)

	assert.Equal(t, cdpdoc.ENOTFOUND, cdpdoc.ErrorCode(err))
}

func TestDocumentStore_CorruptSetIsInvalid(t *testing.T) {
	t.Parallel()

	store := fs.NewDocumentStore(t.TempDir())
	require.NoError(t, os.WriteFile(store.Path(cdpdoc.Lytics), []byte("{not json"), 0644))

	_, err := store.LoadDocuments(context.Background(), cdpdoc.Lytics)

	assert.Equal(t, cdpdoc.EINVALID, cdpdoc.ErrorCode(err))
}

func TestDocumentStore_RejectsUnknownPlatform(t *testing.T) {
	t.Parallel()

	store := fs.NewDocumentStore(t.TempDir())

	err := store.SaveDocuments(context.Background(), "hubspot", nil)

	assert.Equal(t, cdpdoc.EINVALID, cdpdoc.ErrorCode(err))
}
