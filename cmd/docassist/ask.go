package main

import (
	"fmt"

	"github.com/fwojciec/docassist"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.Ask(deps.Ctx, c.Question)
	if err != nil {
		if docassist.ErrorCode(err) == docassist.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "error: no documents indexed. Use 'docassist index' first.")
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", docassist.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
