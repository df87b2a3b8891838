package mock

import "github.com/fwojciec/pricescout"

var _ pricescout.Dispatcher = (*Dispatcher)(nil)

// Dispatcher is a mock implementation of pricescout.Dispatcher.
type Dispatcher struct {
	DispatchFn func(source string, strategy pricescout.Strategy, page *pricescout.RawPage) (*pricescout.Product, error)
	SupportsFn func(strategy pricescout.Strategy) bool
}

func (d *Dispatcher) Dispatch(source string, strategy pricescout.Strategy, page *pricescout.RawPage) (*pricescout.Product, error) {
	return d.DispatchFn(source, strategy, page)
}

func (d *Dispatcher) Supports(strategy pricescout.Strategy) bool {
	return d.SupportsFn(strategy)
}
