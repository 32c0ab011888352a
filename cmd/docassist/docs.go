package main

import (
	"fmt"

	"github.com/fwojciec/docassist"
)

// Run lists indexed documents in URL order, numbered from 1 across pages.
func (c *DocsCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, docassist.DocumentFilter{
		Offset: c.Offset,
		Limit:  c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docassist.ErrorMessage(err))
		return err
	}

	paged := c.Offset > 0 || c.Limit > 0
	if len(docs) == 0 {
		if paged {
			fmt.Fprintf(deps.Stdout, "No documents past offset %d.\n", c.Offset)
		} else {
			fmt.Fprintln(deps.Stdout, "No documents indexed. Use 'docassist index' to load crawled pages.")
		}
		return nil
	}

	if c.Full {
		fmt.Fprintln(deps.Stdout, docassist.FormatDocuments(docs))
		return nil
	}

	if paged {
		total, err := deps.Documents.CountDocuments(deps.Ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Indexed documents (%d-%d of %d):\n\n", c.Offset+1, c.Offset+len(docs), total)
	} else {
		fmt.Fprintf(deps.Stdout, "Indexed documents (%d total):\n\n", len(docs))
	}
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n", c.Offset+i+1, title, doc.SourceURL)
	}
	return nil
}
