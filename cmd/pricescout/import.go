package main

import (
	"fmt"

	"github.com/fwojciec/pricescout"
	"github.com/fwojciec/pricescout/yaml"
)

// Run executes the import command. Existing sources are updated in place.
func (c *ImportCmd) Run(deps *Dependencies) error {
	sources, err := yaml.LoadSources(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricescout.ErrorMessage(err))
		return err
	}

	var created, updated int
	for _, source := range sources {
		strategy := source.Strategy
		_, err := deps.Sources.UpdateSource(deps.Ctx, source.Name, pricescout.SourceUpdate{
			Strategy: &strategy,
			URLs:     append([]string{}, source.URLs...),
		})
		switch {
		case err == nil:
			updated++
			continue
		case pricescout.ErrorCode(err) != pricescout.ENOTFOUND:
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", source.Name, pricescout.ErrorMessage(err))
			return err
		}

		if err := deps.Sources.CreateSource(deps.Ctx, source); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", source.Name, pricescout.ErrorMessage(err))
			return err
		}
		created++
	}

	fmt.Fprintf(deps.Stdout, "Imported %d sources (%d created, %d updated)\n", len(sources), created, updated)
	return nil
}
