package mock

import (
	"context"

	"github.com/fwojciec/pricescout"
)

var _ pricescout.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pricescout.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*pricescout.RawPage, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*pricescout.RawPage, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
