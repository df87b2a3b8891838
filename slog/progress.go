package slog

import (
	"log/slog"

	"github.com/fwojciec/pricescout"
	"github.com/fwojciec/pricescout/batch"
)

// ProgressLogger returns a batch.ProgressFunc that reports batch progress
// to logger. Per-URL failures are logged at warn level.
func ProgressLogger(logger *slog.Logger) batch.ProgressFunc {
	return func(e batch.ProgressEvent) {
		switch e.Type {
		case batch.ProgressStarted:
			logger.Info("batch started", "source", e.Source, "total", e.Total)
		case batch.ProgressCompleted:
			logger.Debug("url done", "source", e.Source, "url", e.URL, "completed", e.Completed, "total", e.Total)
		case batch.ProgressFailed:
			logger.Warn("url failed",
				"source", e.Source,
				"url", e.URL,
				"reason", string(pricescout.ReasonFor(e.Error)),
				"completed", e.Completed,
				"total", e.Total,
				"err", e.Error,
			)
		case batch.ProgressFinished:
			logger.Info("batch finished", "source", e.Source, "total", e.Total)
		}
	}
}
