package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/fwojciec/pricescout"
	"github.com/fwojciec/pricescout/batch"
	psslog "github.com/fwojciec/pricescout/slog"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	registry, err := pricescout.LoadRegistry(deps.Ctx, deps.Sources)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricescout.ErrorMessage(err))
		return err
	}

	// Unknown names fail here, before a fetcher is opened.
	if _, err := registry.Resolve(c.Name); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'pricescout list' to see available sources.\n", pricescout.ErrorMessage(err))
		return err
	}

	fetcher, err := deps.NewFetcher(c.fetcherConfig())
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: --browser requires Chrome or Chromium to be installed")
		return fmt.Errorf("failed to start fetcher: %w", err)
	}
	defer fetcher.Close()

	return runBatch(deps, registry, c.Name, c.BatchFlags, c.Format, c.Out, fetcher)
}

func (f BatchFlags) fetcherConfig() FetcherConfig {
	return FetcherConfig{Browser: f.Browser, Stealth: f.Stealth, Timeout: f.Timeout}
}

// runBatch runs one source from registry and writes its report.
func runBatch(deps *Dependencies, registry *pricescout.Registry, name string, flags BatchFlags, format, out string, fetcher pricescout.Fetcher) error {
	logger := deps.logger()
	runner := &batch.Runner{
		Fetcher:      psslog.NewLoggingFetcher(fetcher, logger),
		Dispatcher:   psslog.NewLoggingDispatcher(deps.Dispatcher, logger),
		Concurrency:  flags.Concurrency,
		FetchTimeout: flags.Timeout,
		Timeout:      flags.BatchTimeout,
	}
	progress := psslog.ProgressLogger(logger)

	outcomes, err := runner.RunSource(deps.Ctx, registry, name, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricescout.ErrorMessage(err))
		return err
	}

	if flags.Retry {
		source, err := registry.Resolve(name)
		if err != nil {
			return err
		}
		outcomes, err = batch.RetryFailed(deps.Ctx, runner, source, outcomes, batch.DefaultRetryDelays(), progress)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pricescout.ErrorMessage(err))
			return err
		}
	}

	if err := writeReport(deps, name, outcomes, format, out); err != nil {
		return err
	}
	fmt.Fprintln(deps.Stderr, formatSummary(name, pricescout.Summarize(outcomes)))
	return nil
}

// writeReport prints text blocks to stdout or exports rows to a file.
func writeReport(deps *Dependencies, name string, outcomes []pricescout.Outcome, format, out string) error {
	if format == "" || format == "text" {
		if len(outcomes) == 0 {
			fmt.Fprintf(deps.Stdout, "Source %q has no URLs.\n", name)
			return nil
		}
		fmt.Fprintln(deps.Stdout, pricescout.FormatReport(outcomes))
		return nil
	}

	exporter, err := deps.NewExporter(format, out)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricescout.ErrorMessage(err))
		return err
	}
	path, err := exporter.Export(deps.Ctx, name, pricescout.Rows(name, outcomes))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: export failed: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Exported %d rows to %s\n", len(outcomes), path)
	return nil
}

// formatSummary renders e.g. "siteA: 2/3 succeeded (NETWORK_ERROR: 1)".
func formatSummary(name string, s pricescout.Summary) string {
	line := fmt.Sprintf("%s: %d/%d succeeded", name, s.Succeeded, s.Total)
	if len(s.Failed) == 0 {
		return line
	}

	reasons := make([]string, 0, len(s.Failed))
	for reason := range s.Failed {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)

	parts := make([]string, len(reasons))
	for i, reason := range reasons {
		parts[i] = fmt.Sprintf("%s: %d", reason, s.Failed[pricescout.FailureReason(reason)])
	}
	return line + " (" + strings.Join(parts, ", ") + ")"
}

func (d *Dependencies) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.DiscardHandler)
}
