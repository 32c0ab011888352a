// Package fs provides file-based storage for crawled pages and exported documents.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/docassist"
	"gopkg.in/yaml.v3"
)

var _ docassist.DocumentWriter = (*Writer)(nil)

// ExportPath maps a document URL to a slash-separated path relative to
// the export directory. Directory-like URLs map to index.md; query and
// fragment are ignored. Dot segments cannot climb out of the directory.
//
//	https://example.com/docs/api  -> docs/api.md
//	https://example.com/docs/     -> docs/index.md
func ExportPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	dir := u.Path == "" || strings.HasSuffix(u.Path, "/")
	clean := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	switch {
	case clean == "":
		return "index.md", nil
	case dir:
		return clean + "/index.md", nil
	default:
		return clean + ".md", nil
	}
}

type frontmatter struct {
	Source  string    `yaml:"source"`
	Title   string    `yaml:"title"`
	Indexed time.Time `yaml:"indexed"`
}

// RenderDocument returns doc as Markdown with a YAML frontmatter block
// holding its source URL, title and indexing time.
func RenderDocument(doc *docassist.Document) ([]byte, error) {
	header, err := yaml.Marshal(frontmatter{
		Source:  doc.SourceURL,
		Title:   doc.Title,
		Indexed: doc.IndexedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "---\n%s---\n\n%s", header, doc.Content)
	return b.Bytes(), nil
}

// Writer exports documents as Markdown files under a directory, one file
// per document at its ExportPath.
type Writer struct {
	dir string
}

// NewWriter returns a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// CreateDocument writes doc, replacing any earlier export of the same URL.
func (w *Writer) CreateDocument(ctx context.Context, doc *docassist.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	rel, err := ExportPath(doc.SourceURL)
	if err != nil {
		return docassist.Errorf(docassist.EINVALID, "invalid source URL %q", doc.SourceURL)
	}
	data, err := RenderDocument(doc)
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(w.dir, filepath.FromSlash(rel)), data)
}
