package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/fwojciec/docassist"
	"github.com/fwojciec/docassist/crawl"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	pages, err := deps.Store.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docassist.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintf(deps.Stdout, "No pages in %s. Run the crawler first.\n", c.DataPath)
		return nil
	}

	var created, updated, unchanged, bytes, tokens int
	for _, url := range slices.Sorted(maps.Keys(pages)) {
		page := pages[url]
		doc := &docassist.Document{
			SourceURL: url,
			Title:     page.Title,
			Content:   page.Content,
		}

		status, err := deps.Documents.UpsertDocument(deps.Ctx, doc)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error indexing %s: %s\n", url, docassist.ErrorMessage(err))
			return err
		}
		switch status {
		case docassist.UpsertCreated:
			created++
		case docassist.UpsertUpdated:
			updated++
		default:
			unchanged++
		}

		bytes += len(doc.Content)
		if deps.Tokens != nil {
			n, err := deps.Tokens.CountTokens(deps.Ctx, doc.Content)
			if err != nil {
				deps.Logger.Warn("token count failed", "url", url, "err", err)
				continue
			}
			tokens += n
		}
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d documents (%d new, %d updated, %d unchanged; %s, %s)\n",
		len(pages), created, updated, unchanged, crawl.FormatBytes(bytes), crawl.FormatTokens(tokens))
	return nil
}
