package mock

import (
	"context"

	"github.com/fwojciec/docassist"
)

var _ docassist.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of docassist.DocumentService.
type DocumentService struct {
	UpsertDocumentFn    func(ctx context.Context, doc *docassist.Document) (docassist.UpsertStatus, error)
	FindDocumentByURLFn func(ctx context.Context, sourceURL string) (*docassist.Document, error)
	FindDocumentsFn     func(ctx context.Context, filter docassist.DocumentFilter) ([]*docassist.Document, error)
	CountDocumentsFn    func(ctx context.Context) (int, error)
	DeleteDocumentFn    func(ctx context.Context, sourceURL string) error
}

func (s *DocumentService) UpsertDocument(ctx context.Context, doc *docassist.Document) (docassist.UpsertStatus, error) {
	return s.UpsertDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByURL(ctx context.Context, sourceURL string) (*docassist.Document, error) {
	return s.FindDocumentByURLFn(ctx, sourceURL)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter docassist.DocumentFilter) ([]*docassist.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) CountDocuments(ctx context.Context) (int, error) {
	return s.CountDocumentsFn(ctx)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, sourceURL string) error {
	return s.DeleteDocumentFn(ctx, sourceURL)
}

var _ docassist.DocumentWriter = (*DocumentWriter)(nil)

type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *docassist.Document) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *docassist.Document) error {
	return w.CreateDocumentFn(ctx, doc)
}
