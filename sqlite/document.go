package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docassist"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docassist.DocumentService = (*DocumentService)(nil)

// DocumentService implements docassist.DocumentService using SQLite.
type DocumentService struct {
	db *DB

	// Now returns the indexing time. Defaults to time.Now.
	Now func() time.Time
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db, Now: time.Now}
}

// HashContent computes the xxHash of content as a hex string.
func HashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

const documentColumns = "id, source_url, title, content, content_hash, indexed_at"

// UpsertDocument inserts doc or replaces the document with the same source
// URL. A document whose title and content hash are unchanged is left as it
// is. On return doc holds the stored ID, hash and indexing time.
func (s *DocumentService) UpsertDocument(ctx context.Context, doc *docassist.Document) (status docassist.UpsertStatus, err error) {
	if err := doc.Validate(); err != nil {
		return docassist.UpsertUnchanged, err
	}
	doc.ContentHash = HashContent(doc.Content)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return docassist.UpsertUnchanged, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var id, title, hash, indexedAt string
	err = tx.QueryRowContext(ctx,
		"SELECT id, title, content_hash, indexed_at FROM documents WHERE source_url = ?",
		doc.SourceURL,
	).Scan(&id, &title, &hash, &indexedAt)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		doc.ID = uuid.New().String()
		doc.IndexedAt = s.now()
		_, err = tx.ExecContext(ctx,
			"INSERT INTO documents ("+documentColumns+") VALUES (?, ?, ?, ?, ?, ?)",
			doc.ID, doc.SourceURL, doc.Title, doc.Content, doc.ContentHash, formatTime(doc.IndexedAt),
		)
		status = docassist.UpsertCreated

	case err != nil:
		return docassist.UpsertUnchanged, err

	case hash == doc.ContentHash && title == doc.Title:
		doc.ID = id
		if doc.IndexedAt, err = parseTime("indexed_at", indexedAt); err != nil {
			return docassist.UpsertUnchanged, err
		}
		return docassist.UpsertUnchanged, tx.Commit()

	default:
		doc.ID = id
		doc.IndexedAt = s.now()
		_, err = tx.ExecContext(ctx,
			"UPDATE documents SET title = ?, content = ?, content_hash = ?, indexed_at = ? WHERE id = ?",
			doc.Title, doc.Content, doc.ContentHash, formatTime(doc.IndexedAt), id,
		)
		status = docassist.UpsertUpdated
	}
	if err != nil {
		return docassist.UpsertUnchanged, err
	}

	if err = tx.Commit(); err != nil {
		return docassist.UpsertUnchanged, err
	}
	return status, nil
}

// FindDocumentByURL retrieves a document by source URL.
func (s *DocumentService) FindDocumentByURL(ctx context.Context, sourceURL string) (*docassist.Document, error) {
	docs, err := s.FindDocuments(ctx, docassist.DocumentFilter{SourceURL: &sourceURL, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, docassist.Errorf(docassist.ENOTFOUND, "document %q not found", sourceURL)
	}
	return docs[0], nil
}

// FindDocuments retrieves documents matching the filter, ordered by source URL.
func (s *DocumentService) FindDocuments(ctx context.Context, filter docassist.DocumentFilter) ([]*docassist.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY source_url ASC")
	args = paginate(&query, args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*docassist.Document
	for rows.Next() {
		var doc docassist.Document
		var indexedAt string

		if err := rows.Scan(&doc.ID, &doc.SourceURL, &doc.Title, &doc.Content, &doc.ContentHash, &indexedAt); err != nil {
			return nil, err
		}

		if doc.IndexedAt, err = parseTime("indexed_at", indexedAt); err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// CountDocuments returns the number of indexed documents.
func (s *DocumentService) CountDocuments(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, sourceURL string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE source_url = ?", sourceURL)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return docassist.Errorf(docassist.ENOTFOUND, "document %q not found", sourceURL)
	}

	return nil
}

func (s *DocumentService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
