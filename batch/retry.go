package batch

import (
	"context"
	"time"

	"github.com/fwojciec/pricescout"
)

// DefaultRetryDelays returns the pauses between retry rounds: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Retryable reports whether a failed outcome is worth another attempt.
// Network and generic HTTP failures may be transient; forbidden responses
// signal systematic blocking and parse failures are deterministic.
func Retryable(o pricescout.Outcome) bool {
	if o.OK() {
		return false
	}
	switch o.Failure.Reason {
	case pricescout.ReasonNetwork, pricescout.ReasonHTTP:
		return true
	default:
		return false
	}
}

// RetryFailed re-runs the retryable failures of a finished batch, one round
// per delay, and merges the new outcomes back by position. The runner itself
// never retries; each round is a fresh batch over the filtered URL list.
// The returned slice has the same length and order as outcomes.
func RetryFailed(ctx context.Context, r *Runner, source *pricescout.Source, outcomes []pricescout.Outcome, delays []time.Duration, progress ProgressFunc) ([]pricescout.Outcome, error) {
	merged := make([]pricescout.Outcome, len(outcomes))
	copy(merged, outcomes)

	for _, delay := range delays {
		var positions []int
		var urls []string
		for i, o := range merged {
			if Retryable(o) {
				positions = append(positions, i)
				urls = append(urls, o.URL)
			}
		}
		if len(urls) == 0 {
			break
		}

		select {
		case <-ctx.Done():
			return merged, nil
		case <-time.After(delay):
		}

		retry := source.Clone()
		retry.URLs = urls

		again, err := r.Run(ctx, retry, progress)
		if err != nil {
			return merged, err
		}
		for j, pos := range positions {
			merged[pos] = again[j]
		}
	}

	return merged, nil
}
