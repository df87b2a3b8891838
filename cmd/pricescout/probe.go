package main

import (
	"fmt"

	"github.com/fwojciec/pricescout"
	"github.com/fwojciec/pricescout/goquery"
)

// Run executes the probe command: it fetches one page, names the template
// it matches and shows what that strategy extracts.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	fetcher, err := deps.NewFetcher(FetcherConfig{Browser: c.Browser, Timeout: c.Timeout})
	if err != nil {
		return fmt.Errorf("failed to start fetcher: %w", err)
	}
	defer fetcher.Close()

	page, err := fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s (%s)\n", pricescout.ErrorMessage(err), pricescout.ReasonFor(err))
		return err
	}

	strategy, ok := goquery.NewDetector().Detect(page.Body)
	if !ok {
		fmt.Fprintf(deps.Stdout, "No known template found at %s\n", c.URL)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Strategy: %s\n", strategy)
	product, err := deps.Dispatcher.Dispatch("probe", strategy, page)
	if err != nil {
		fmt.Fprintln(deps.Stdout, pricescout.FormatOutcome(pricescout.Fail(c.URL, err)))
		return nil
	}
	fmt.Fprintln(deps.Stdout, pricescout.FormatOutcome(pricescout.Success(product)))
	return nil
}
