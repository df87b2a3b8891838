package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/pricescout"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	sources, err := deps.Sources.FindSources(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricescout.ErrorMessage(err))
		return err
	}

	if len(sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources found. Use 'pricescout add' or 'pricescout import' to create one.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTRATEGY\tURLS")
	for _, s := range sources {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", s.Name, s.Strategy, len(s.URLs))
	}
	return tw.Flush()
}
