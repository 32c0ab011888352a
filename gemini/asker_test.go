package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docassist"
	"github.com/fwojciec/docassist/gemini"
	"github.com/fwojciec/docassist/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The client is never reached in these tests, so it stays nil.

func TestAsker_Ask(t *testing.T) {
	t.Parallel()

	t.Run("rejects a blank question before touching the index", func(t *testing.T) {
		t.Parallel()

		asker := gemini.NewAsker(nil, &mock.DocumentService{})

		for _, q := range []string{"", "  \n"} {
			_, err := asker.Ask(context.Background(), q)
			assert.Equal(t, docassist.EINVALID, docassist.ErrorCode(err))
			assert.Equal(t, "question required", docassist.ErrorMessage(err))
		}
	})

	t.Run("reports an empty index as not found", func(t *testing.T) {
		t.Parallel()

		var filter *docassist.DocumentFilter
		docs := &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, f docassist.DocumentFilter) ([]*docassist.Document, error) {
				filter = &f
				return nil, nil
			},
		}

		_, err := gemini.NewAsker(nil, docs).Ask(context.Background(), "What is a scan profile?")

		assert.Equal(t, docassist.ENOTFOUND, docassist.ErrorCode(err))
		require.NotNil(t, filter)
		assert.Equal(t, docassist.DocumentFilter{}, *filter)
	})

	t.Run("passes index errors through", func(t *testing.T) {
		t.Parallel()

		docs := &mock.DocumentService{
			FindDocumentsFn: func(context.Context, docassist.DocumentFilter) ([]*docassist.Document, error) {
				return nil, docassist.Errorf(docassist.EINTERNAL, "database is locked")
			},
		}

		_, err := gemini.NewAsker(nil, docs).Ask(context.Background(), "What is a scan profile?")

		assert.Equal(t, docassist.EINTERNAL, docassist.ErrorCode(err))
		assert.Equal(t, "database is locked", docassist.ErrorMessage(err))
	})
}

func TestNewAsker_Options(t *testing.T) {
	t.Parallel()

	def := gemini.NewAsker(nil, nil)
	assert.Equal(t, gemini.DefaultModel, def.Model())
	assert.Equal(t, gemini.DefaultContextBudget, def.ContextBudget())

	custom := gemini.NewAsker(nil, nil, gemini.WithModel("gemini-2.0-flash"), gemini.WithContextBudget(1000))
	assert.Equal(t, "gemini-2.0-flash", custom.Model())
	assert.Equal(t, 1000, custom.ContextBudget())

	zero := gemini.NewAsker(nil, nil, gemini.WithModel(""), gemini.WithContextBudget(0))
	assert.Equal(t, gemini.DefaultModel, zero.Model())
	assert.Equal(t, gemini.DefaultContextBudget, zero.ContextBudget())
}
