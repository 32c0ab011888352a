package mock

import (
	"context"

	"github.com/fwojciec/docassist"
)

var _ docassist.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of docassist.PageStore.
type PageStore struct {
	LoadFn  func(ctx context.Context) (docassist.Pages, error)
	MergeFn func(ctx context.Context, pages docassist.Pages) (*docassist.MergeResult, error)
}

func (s *PageStore) Load(ctx context.Context) (docassist.Pages, error) {
	return s.LoadFn(ctx)
}

func (s *PageStore) Merge(ctx context.Context, pages docassist.Pages) (*docassist.MergeResult, error) {
	return s.MergeFn(ctx, pages)
}
