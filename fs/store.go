package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/docassist"
)

// Ensure JSONStore implements docassist.PageStore at compile time.
var _ docassist.PageStore = (*JSONStore)(nil)

// JSONStore implements docassist.PageStore as a single JSON object file
// mapping page URLs to {"title", "content"} records.
//
// The file is rewritten wholesale on every merge: the new contents are
// written to a temporary file in the same directory, synced and renamed
// over the store path. JSONStore assumes a single writer.
type JSONStore struct {
	path string
}

// NewJSONStore returns a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load returns the stored pages. A missing or empty file yields no pages.
// A file that cannot be parsed is reported as EINVALID.
func (s *JSONStore) Load(_ context.Context) (docassist.Pages, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return docassist.Pages{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("read page store: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return docassist.Pages{}, nil
	}

	var pages docassist.Pages
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, docassist.Errorf(docassist.EINVALID, "page store %s is corrupt: %v", s.path, err)
	}
	if pages == nil {
		pages = docassist.Pages{}
	}
	return pages, nil
}

// Merge overlays pages onto the stored pages and rewrites the store.
func (s *JSONStore) Merge(ctx context.Context, pages docassist.Pages) (*docassist.MergeResult, error) {
	existing, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	var result docassist.MergeResult
	for url, record := range pages {
		if _, ok := existing[url]; ok {
			result.Updated++
		} else {
			result.Added++
		}
		existing[url] = record
	}
	result.Total = len(existing)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.write(existing); err != nil {
		return nil, err
	}
	return &result, nil
}

// write atomically replaces the store file with pages.
func (s *JSONStore) write(pages docassist.Pages) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pages); err != nil {
		return fmt.Errorf("encode page store: %w", err)
	}

	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("write page store: %w", err)
	}
	return nil
}
