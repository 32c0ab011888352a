package main

import (
	"fmt"

	"github.com/fwojciec/docassist"
)

// Run removes each URL from the index in order, stopping at the first
// failure. Without --force nothing is deleted.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "Refusing to delete %d document(s) without --force\n", len(c.URLs))
		return docassist.Errorf(docassist.EINVALID, "use --force to confirm deletion")
	}

	for _, url := range c.URLs {
		if err := deps.Documents.DeleteDocument(deps.Ctx, url); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docassist.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted %s\n", url)
	}
	return nil
}
