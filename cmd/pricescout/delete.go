package main

import (
	"fmt"

	"github.com/fwojciec/pricescout"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pricescout.Errorf(pricescout.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Sources.DeleteSource(deps.Ctx, c.Name); err != nil {
		if pricescout.ErrorCode(err) == pricescout.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: source %q not found. Use 'pricescout list' to see available sources.\n", c.Name)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricescout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted source %q\n", c.Name)
	return nil
}
