package main

import (
	"fmt"

	"github.com/fwojciec/pricescout"
	"github.com/fwojciec/pricescout/fs"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	urls := append([]string{}, c.URL...)
	if c.File != "" {
		fromFile, err := fs.ReadURLList(c.File)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pricescout.ErrorMessage(err))
			return err
		}
		urls = append(urls, fromFile...)
	}

	source := &pricescout.Source{
		Name:     c.Name,
		Strategy: pricescout.Strategy(c.Strategy),
		URLs:     urls,
	}
	if err := source.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricescout.ErrorMessage(err))
		return err
	}

	if c.Force {
		strategy := source.Strategy
		updated, err := deps.Sources.UpdateSource(deps.Ctx, c.Name, pricescout.SourceUpdate{
			Strategy: &strategy,
			URLs:     urls,
		})
		if err == nil {
			fmt.Fprintf(deps.Stdout, "Updated source %q (%s, %d URLs)\n", updated.Name, updated.Strategy, len(updated.URLs))
			return nil
		}
		if pricescout.ErrorCode(err) != pricescout.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pricescout.ErrorMessage(err))
			return err
		}
	}

	if err := deps.Sources.CreateSource(deps.Ctx, source); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricescout.ErrorMessage(err))
		if pricescout.ErrorCode(err) == pricescout.EINVALID {
			fmt.Fprintln(deps.Stderr, "Hint: use --force to replace an existing source")
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added source %q (%s, %d URLs)\n", source.Name, source.Strategy, len(source.URLs))
	return nil
}
