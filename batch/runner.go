// Package batch runs extraction batches: every URL of a source is fetched
// and dispatched to its extractor, and the per-URL outcomes are returned in
// input order.
package batch

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pricescout"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency processes URLs one at a time.
const DefaultConcurrency = 1

// Runner executes extraction batches.
type Runner struct {
	Fetcher    pricescout.Fetcher
	Dispatcher pricescout.Dispatcher

	// Concurrency bounds parallel fetches within one batch.
	// Defaults to DefaultConcurrency.
	Concurrency int

	// FetchTimeout bounds each fetch in addition to the fetcher's own limit.
	// Zero means no extra bound.
	FetchTimeout time.Duration

	// Timeout bounds the whole batch. URLs not reached in time fail with
	// ENETWORK. Zero means no bound beyond the caller's context.
	Timeout time.Duration
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Source    string
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
// It is never called concurrently.
type ProgressFunc func(event ProgressEvent)

// urlResult holds the outcome of processing a single URL.
type urlResult struct {
	position int
	outcome  pricescout.Outcome
	err      error
}

// RunSource resolves name in the registry and runs its batch.
// Returns ENOTFOUND before any fetch if the source is unknown.
func (r *Runner) RunSource(ctx context.Context, registry *pricescout.Registry, name string, progress ProgressFunc) ([]pricescout.Outcome, error) {
	source, err := registry.Resolve(name)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, source, progress)
}

// Run processes every URL of source exactly once and returns one outcome per
// URL in input order. Per-URL failures never abort the batch. An error is
// returned only when the batch cannot start: an invalid source (EINVALID) or
// a strategy the dispatcher does not support (EINTERNAL).
func (r *Runner) Run(ctx context.Context, source *pricescout.Source, progress ProgressFunc) ([]pricescout.Outcome, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	if !r.Dispatcher.Supports(source.Strategy) {
		return nil, pricescout.Errorf(pricescout.EINTERNAL, "no extractor for strategy %q", source.Strategy)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	urls := source.URLs
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{
			Type:   ProgressStarted,
			Source: source.Name,
			Total:  total,
		})
	}

	resultCh := make(chan urlResult, total)

	// Workers never return errors, so the group context is only canceled
	// when ctx is.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			g.Go(func() error {
				resultCh <- r.processURL(gctx, source, i, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results by position so order never depends on completion order.
	outcomes := make([]pricescout.Outcome, total)
	var completed atomic.Int64
	for result := range resultCh {
		outcomes[result.position] = result.outcome
		done := int(completed.Add(1))

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Source:    source.Name,
			Completed: done,
			Total:     total,
			URL:       result.outcome.URL,
		}
		if result.err != nil {
			event.Type = ProgressFailed
			event.Error = result.err
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Source:    source.Name,
			Completed: total,
			Total:     total,
		})
	}

	return outcomes, nil
}

// processURL fetches and extracts a single URL.
func (r *Runner) processURL(ctx context.Context, source *pricescout.Source, position int, url string) urlResult {
	result := urlResult{position: position}

	// Skip the network once the batch has been canceled.
	if err := ctx.Err(); err != nil {
		result.err = pricescout.NewFetchError(url, 0, pricescout.ENETWORK, "%v", err)
		result.outcome = pricescout.Fail(url, result.err)
		return result
	}

	fetchCtx := ctx
	if r.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, r.FetchTimeout)
		defer cancel()
	}

	page, err := r.Fetcher.Fetch(fetchCtx, url)
	if err != nil {
		result.err = err
		result.outcome = pricescout.Fail(url, err)
		return result
	}

	product, err := r.Dispatcher.Dispatch(source.Name, source.Strategy, page)
	if err != nil {
		result.err = err
		result.outcome = pricescout.Fail(url, err)
		return result
	}

	result.outcome = pricescout.Success(product)
	result.outcome.URL = url
	return result
}
