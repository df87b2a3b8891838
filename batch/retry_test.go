package batch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/pricescout"
	"github.com/fwojciec/pricescout/batch"
	"github.com/fwojciec/pricescout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome pricescout.Outcome
		want    bool
	}{
		{"success", pricescout.Success(pricescout.NewProduct("s", "u")), false},
		{"network", pricescout.Fail("u", pricescout.NewFetchError("u", 0, pricescout.ENETWORK, "reset")), true},
		{"http", pricescout.Fail("u", pricescout.NewFetchError("u", 502, pricescout.EHTTP, "HTTP 502")), true},
		{"forbidden", pricescout.Fail("u", pricescout.NewFetchError("u", 403, pricescout.EFORBIDDEN, "HTTP 403")), false},
		{"parse", pricescout.Fail("u", pricescout.Errorf(pricescout.EPARSE, "no markup")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, batch.Retryable(tt.outcome))
		})
	}
}

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, batch.DefaultRetryDelays())
}

func TestRetryFailed(t *testing.T) {
	t.Parallel()

	t.Run("merges recovered outcomes by position", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		attempts := make(map[string]int)
		runner := &batch.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*pricescout.RawPage, error) {
					mu.Lock()
					attempts[url]++
					n := attempts[url]
					mu.Unlock()

					switch {
					case url == "blocked":
						return nil, pricescout.NewFetchError(url, 403, pricescout.EFORBIDDEN, "HTTP 403")
					case url == "flaky" && n < 2:
						return nil, pricescout.NewFetchError(url, 503, pricescout.EHTTP, "HTTP 503")
					}
					return &pricescout.RawPage{URL: url, Body: url}, nil
				},
			},
			Dispatcher: echoDispatcher(),
		}
		src := source("ok", "flaky", "blocked")

		first, err := runner.Run(context.Background(), src, nil)
		require.NoError(t, err)
		require.False(t, first[1].OK())

		merged, err := batch.RetryFailed(context.Background(), runner, src, first, []time.Duration{time.Millisecond, time.Millisecond}, nil)

		require.NoError(t, err)
		require.Len(t, merged, 3)
		assert.True(t, merged[0].OK())
		require.True(t, merged[1].OK())
		assert.Equal(t, "flaky", merged[1].Product.Name)
		assert.Equal(t, pricescout.ReasonForbidden, merged[2].Failure.Reason)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 1, attempts["ok"])
		assert.Equal(t, 2, attempts["flaky"])
		assert.Equal(t, 1, attempts["blocked"])
	})

	t.Run("leaves input untouched", func(t *testing.T) {
		t.Parallel()

		runner := &batch.Runner{Fetcher: pageFetcher(map[string]string{"u1": "x"}), Dispatcher: echoDispatcher()}
		src := source("u1")
		first := []pricescout.Outcome{pricescout.Fail("u1", pricescout.NewFetchError("u1", 0, pricescout.ENETWORK, "reset"))}

		merged, err := batch.RetryFailed(context.Background(), runner, src, first, []time.Duration{time.Millisecond}, nil)

		require.NoError(t, err)
		assert.True(t, merged[0].OK())
		assert.False(t, first[0].OK())
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		runner := &batch.Runner{Fetcher: pageFetcher(nil), Dispatcher: echoDispatcher()}
		first := []pricescout.Outcome{pricescout.Fail("u1", pricescout.NewFetchError("u1", 0, pricescout.ENETWORK, "reset"))}

		merged, err := batch.RetryFailed(ctx, runner, source("u1"), first, []time.Duration{time.Hour}, nil)

		require.NoError(t, err)
		assert.Equal(t, first, merged)
	})
}
