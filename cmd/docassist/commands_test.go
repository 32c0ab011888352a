package main_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docassist"
	main "github.com/fwojciec/docassist/cmd/docassist"
	"github.com/fwojciec/docassist/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.DiscardHandler),
	}
}

func TestIndexCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("upserts pages in URL order and reports statuses", func(t *testing.T) {
		t.Parallel()

		var urls []string
		statuses := map[string]docassist.UpsertStatus{
			"https://ex.com/a": docassist.UpsertCreated,
			"https://ex.com/b": docassist.UpsertUpdated,
			"https://ex.com/c": docassist.UpsertUnchanged,
		}

		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Store = &mock.PageStore{
			LoadFn: func(context.Context) (docassist.Pages, error) {
				return docassist.Pages{
					"https://ex.com/c": {Title: "C", Content: "c"},
					"https://ex.com/a": {Title: "A", Content: "a"},
					"https://ex.com/b": {Title: "B", Content: "b"},
				}, nil
			},
		}
		deps.Documents = &mock.DocumentService{
			UpsertDocumentFn: func(_ context.Context, doc *docassist.Document) (docassist.UpsertStatus, error) {
				urls = append(urls, doc.SourceURL)
				return statuses[doc.SourceURL], nil
			},
		}

		err := (&main.IndexCmd{DataPath: "pages.json"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://ex.com/a", "https://ex.com/b", "https://ex.com/c"}, urls)
		assert.Contains(t, stdout.String(), "Indexed 3 documents (1 new, 1 updated, 1 unchanged;")
	})

	t.Run("continues when token counting fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Store = &mock.PageStore{
			LoadFn: func(context.Context) (docassist.Pages, error) {
				return docassist.Pages{"https://ex.com/a": {Title: "A", Content: "a"}}, nil
			},
		}
		deps.Documents = &mock.DocumentService{
			UpsertDocumentFn: func(context.Context, *docassist.Document) (docassist.UpsertStatus, error) {
				return docassist.UpsertCreated, nil
			},
		}
		deps.Tokens = &mock.TokenCounter{
			CountTokensFn: func(context.Context, string) (int, error) {
				return 0, errors.New("tokenizer unavailable")
			},
		}

		err := (&main.IndexCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Indexed 1 documents")
	})

	t.Run("returns store error", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := newDeps(&bytes.Buffer{}, stderr)
		deps.Store = &mock.PageStore{
			LoadFn: func(context.Context) (docassist.Pages, error) {
				return nil, docassist.Errorf(docassist.EINVALID, "corrupt page store %q", "pages.json")
			},
		}

		err := (&main.IndexCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, docassist.EINVALID, docassist.ErrorCode(err))
		assert.Contains(t, stderr.String(), "corrupt page store")
	})
}

func TestDocsCmd_Run(t *testing.T) {
	t.Parallel()

	docs := &mock.DocumentService{
		FindDocumentsFn: func(context.Context, docassist.DocumentFilter) ([]*docassist.Document, error) {
			return []*docassist.Document{
				{SourceURL: "https://ex.com/a", Title: "Alpha", Content: "alpha content"},
				{SourceURL: "https://ex.com/b", Content: "beta content"},
			}, nil
		},
	}

	t.Run("lists titles and URLs", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Documents = docs

		err := (&main.DocsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "1. Alpha\n     https://ex.com/a")
		assert.Contains(t, stdout.String(), "2. https://ex.com/b\n     https://ex.com/b")
		assert.NotContains(t, stdout.String(), "alpha content")
	})

	t.Run("prints full content", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Documents = docs

		err := (&main.DocsCmd{Full: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "# Alpha\nSource: https://ex.com/a\n\nalpha content")
	})

	t.Run("reports empty index", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Documents = &mock.DocumentService{
			FindDocumentsFn: func(context.Context, docassist.DocumentFilter) ([]*docassist.Document, error) {
				return nil, nil
			},
		}

		err := (&main.DocsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No documents indexed")
	})

	t.Run("pages through the index", func(t *testing.T) {
		t.Parallel()

		var filter docassist.DocumentFilter
		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Documents = &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, f docassist.DocumentFilter) ([]*docassist.Document, error) {
				filter = f
				return []*docassist.Document{{SourceURL: "https://ex.com/c", Title: "Gamma"}}, nil
			},
			CountDocumentsFn: func(context.Context) (int, error) { return 5, nil },
		}

		err := (&main.DocsCmd{Limit: 1, Offset: 2}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, docassist.DocumentFilter{Offset: 2, Limit: 1}, filter)
		assert.Equal(t, "Indexed documents (3-3 of 5):\n\n  3. Gamma\n     https://ex.com/c\n", stdout.String())
	})

	t.Run("reports an offset past the end", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Documents = &mock.DocumentService{
			FindDocumentsFn: func(context.Context, docassist.DocumentFilter) ([]*docassist.Document, error) {
				return nil, nil
			},
		}

		err := (&main.DocsCmd{Offset: 9}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "No documents past offset 9.\n", stdout.String())
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force", func(t *testing.T) {
		t.Parallel()

		var calls int
		deps := newDeps(&bytes.Buffer{}, &bytes.Buffer{})
		deps.Documents = &mock.DocumentService{
			DeleteDocumentFn: func(context.Context, string) error {
				calls++
				return nil
			},
		}

		err := (&main.DeleteCmd{URLs: []string{"https://ex.com/a"}}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, docassist.EINVALID, docassist.ErrorCode(err))
		assert.Zero(t, calls)
	})

	t.Run("deletes every URL", func(t *testing.T) {
		t.Parallel()

		var deleted []string
		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Documents = &mock.DocumentService{
			DeleteDocumentFn: func(_ context.Context, sourceURL string) error {
				deleted = append(deleted, sourceURL)
				return nil
			},
		}

		err := (&main.DeleteCmd{URLs: []string{"https://ex.com/a", "https://ex.com/b"}, Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://ex.com/a", "https://ex.com/b"}, deleted)
		assert.Equal(t, "Deleted https://ex.com/a\nDeleted https://ex.com/b\n", stdout.String())
	})

	t.Run("propagates not found", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := newDeps(&bytes.Buffer{}, stderr)
		deps.Documents = &mock.DocumentService{
			DeleteDocumentFn: func(_ context.Context, sourceURL string) error {
				return docassist.Errorf(docassist.ENOTFOUND, "document %q not found", sourceURL)
			},
		}

		err := (&main.DeleteCmd{URLs: []string{"https://ex.com/a", "https://ex.com/b"}, Force: true}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, docassist.ENOTFOUND, docassist.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("stops at first write error", func(t *testing.T) {
		t.Parallel()

		var written int
		stderr := &bytes.Buffer{}
		deps := newDeps(&bytes.Buffer{}, stderr)
		deps.Documents = &mock.DocumentService{
			FindDocumentsFn: func(context.Context, docassist.DocumentFilter) ([]*docassist.Document, error) {
				return []*docassist.Document{{SourceURL: "https://ex.com/a"}, {SourceURL: "https://ex.com/b"}}, nil
			},
		}
		deps.Writer = &mock.DocumentWriter{
			CreateDocumentFn: func(context.Context, *docassist.Document) error {
				written++
				return errors.New("disk full")
			},
		}

		err := (&main.ExportCmd{Dir: "out"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, 1, written)
		assert.Contains(t, stderr.String(), "error exporting https://ex.com/a")
	})
}
