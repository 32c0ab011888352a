package main

import (
	"fmt"

	"github.com/fwojciec/docassist"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, docassist.DocumentFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docassist.ErrorMessage(err))
		return err
	}

	for _, doc := range docs {
		if err := deps.Writer.CreateDocument(deps.Ctx, doc); err != nil {
			fmt.Fprintf(deps.Stderr, "error exporting %s: %s\n", doc.SourceURL, docassist.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Exported %d documents to %s\n", len(docs), c.Dir)
	return nil
}
