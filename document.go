package docassist

import (
	"context"
	"time"
)

// Document represents an indexed documentation page.
type Document struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	IndexedAt   time.Time `json:"indexedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	return nil
}

// UpsertStatus reports the effect of an upsert.
type UpsertStatus int

const (
	UpsertUnchanged UpsertStatus = iota
	UpsertCreated
	UpsertUpdated
)

// DocumentWriter writes documents to storage.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *Document) error
}

// DocumentService represents a service for managing indexed documents.
type DocumentService interface {
	// UpsertDocument inserts a document or replaces the document with the
	// same source URL. Documents whose content hash is unchanged are left
	// as they are and reported as UpsertUnchanged.
	UpsertDocument(ctx context.Context, doc *Document) (UpsertStatus, error)

	// FindDocumentByURL retrieves a document by source URL.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByURL(ctx context.Context, sourceURL string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// CountDocuments returns the number of indexed documents.
	CountDocuments(ctx context.Context) (int, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, sourceURL string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
