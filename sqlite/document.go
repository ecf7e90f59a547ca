package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/cdpdoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cdpdoc.DocumentStore = (*DocumentStore)(nil)

// Snapshot records one saved document set.
type Snapshot struct {
	ID        string
	Platform  cdpdoc.Platform
	Documents int
	CreatedAt time.Time
}

// DocumentStore implements cdpdoc.DocumentStore using SQLite.
type DocumentStore struct {
	db *DB

	// Now returns the snapshot time. Defaults to time.Now.
	Now func() time.Time
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db, Now: time.Now}
}

// SaveDocuments replaces the platform's rows and records a snapshot, in one
// transaction.
func (s *DocumentStore) SaveDocuments(ctx context.Context, platform cdpdoc.Platform, docs []*cdpdoc.Document) error {
	if !platform.Valid() {
		return cdpdoc.Errorf(cdpdoc.EINVALID, "unknown platform %q", platform)
	}

	snapshotID := uuid.New().String()
	createdAt := formatRFC3339(s.Now())

	return s.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO snapshots (id, platform, documents, created_at)
			VALUES (?, ?, ?, ?)
		`, snapshotID, string(platform), len(docs), createdAt); err != nil {
			return fmt.Errorf("failed to insert snapshot: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE platform = ?", string(platform)); err != nil {
			return fmt.Errorf("failed to delete documents: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO documents (platform, position, snapshot_id, url, title, content,
				type, keywords, howto_steps, category, difficulty)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, doc := range docs {
			keywords, err := json.Marshal(doc.Keywords)
			if err != nil {
				return err
			}
			steps, err := json.Marshal(doc.HowToSteps)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, string(platform), i, snapshotID, doc.URL, doc.Title,
				doc.Content, string(doc.Type), string(keywords), string(steps),
				string(doc.Metadata.Category), string(doc.Metadata.Difficulty)); err != nil {
				return fmt.Errorf("failed to insert document %s: %w", doc.URL, err)
			}
		}
		return nil
	})
}

// LoadDocuments returns the platform's current document set in crawl order.
func (s *DocumentStore) LoadDocuments(ctx context.Context, platform cdpdoc.Platform) ([]*cdpdoc.Document, error) {
	var snapshots int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM snapshots WHERE platform = ?", string(platform),
	).Scan(&snapshots); err != nil {
		return nil, err
	}
	if snapshots == 0 {
		return nil, cdpdoc.Errorf(cdpdoc.ENOTFOUND, "no documents saved for %s", platform)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, title, content, type, keywords, howto_steps, category, difficulty
		FROM documents
		WHERE platform = ?
		ORDER BY position ASC
	`, string(platform))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*cdpdoc.Document{}
	for rows.Next() {
		doc := cdpdoc.Document{Platform: platform}
		var docType, keywords, steps, category, difficulty string

		if err := rows.Scan(&doc.URL, &doc.Title, &doc.Content, &docType, &keywords, &steps,
			&category, &difficulty); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(keywords), &doc.Keywords); err != nil {
			return nil, cdpdoc.Errorf(cdpdoc.EINVALID, "document %s: bad keywords: %v", doc.URL, err)
		}
		if err := json.Unmarshal([]byte(steps), &doc.HowToSteps); err != nil {
			return nil, cdpdoc.Errorf(cdpdoc.EINVALID, "document %s: bad steps: %v", doc.URL, err)
		}
		doc.Type = cdpdoc.DocType(docType)
		doc.Metadata.Category = cdpdoc.Category(category)
		doc.Metadata.Difficulty = cdpdoc.Difficulty(difficulty)

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// FindSnapshots returns the platform's snapshots, newest first.
// A limit of zero returns all of them.
func (s *DocumentStore) FindSnapshots(ctx context.Context, platform cdpdoc.Platform, limit int) ([]*Snapshot, error) {
	var query strings.Builder
	args := []any{string(platform)}

	query.WriteString("SELECT id, platform, documents, created_at FROM snapshots WHERE platform = ? ORDER BY created_at DESC, rowid DESC")
	appendLimit(&query, &args, limit)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*Snapshot
	for rows.Next() {
		var snap Snapshot
		var p, createdAt string
		if err := rows.Scan(&snap.ID, &p, &snap.Documents, &createdAt); err != nil {
			return nil, err
		}
		snap.Platform = cdpdoc.Platform(p)
		if snap.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &snap)
	}

	return snapshots, rows.Err()
}
