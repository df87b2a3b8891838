package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/pricescout"
	"github.com/go-co-op/gocron/v2"
)

// Run executes the watch command. Every tick reloads the registry so
// sources edited in between are picked up. Returns when the context ends.
func (c *WatchCmd) Run(deps *Dependencies) error {
	if c.Every <= 0 {
		fmt.Fprintln(deps.Stderr, "error: --every must be positive")
		return pricescout.Errorf(pricescout.EINVALID, "--every must be positive")
	}

	registry, err := pricescout.LoadRegistry(deps.Ctx, deps.Sources)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricescout.ErrorMessage(err))
		return err
	}
	for _, name := range c.Names {
		if _, err := registry.Resolve(name); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s. Use 'pricescout list' to see available sources.\n", pricescout.ErrorMessage(err))
			return err
		}
	}

	fetcher, err := deps.NewFetcher(c.fetcherConfig())
	if err != nil {
		return fmt.Errorf("failed to start fetcher: %w", err)
	}
	defer fetcher.Close()

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	// Stdout is shared by ticks; keep reports whole.
	var mu sync.Mutex
	tick := func() {
		mu.Lock()
		defer mu.Unlock()

		logger := deps.logger()
		registry, err := pricescout.LoadRegistry(deps.Ctx, deps.Sources)
		if err != nil {
			logger.Error("reloading sources", "err", err)
			return
		}
		for _, name := range c.Names {
			if deps.Ctx.Err() != nil {
				return
			}
			fmt.Fprintf(deps.Stdout, "== %s %s\n", name, time.Now().Format(time.DateTime))
			if err := runBatch(deps, registry, name, c.BatchFlags, c.Format, c.Out, fetcher); err != nil {
				logger.Error("batch failed", "source", name, "err", err)
			}
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(c.Every),
		gocron.NewTask(tick),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule batches: %w", err)
	}

	scheduler.Start()
	fmt.Fprintf(deps.Stderr, "Watching %d sources every %s. Press Ctrl+C to stop.\n", len(c.Names), c.Every)

	<-deps.Ctx.Done()
	return scheduler.Shutdown()
}
