package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pricescout"
)

// Ensure LoggingDispatcher implements pricescout.Dispatcher.
var _ pricescout.Dispatcher = (*LoggingDispatcher)(nil)

// LoggingDispatcher wraps a Dispatcher with debug logging of extraction results.
type LoggingDispatcher struct {
	next   pricescout.Dispatcher
	logger *slog.Logger
}

// NewLoggingDispatcher creates a new LoggingDispatcher.
func NewLoggingDispatcher(next pricescout.Dispatcher, logger *slog.Logger) *LoggingDispatcher {
	return &LoggingDispatcher{next: next, logger: logger}
}

// Dispatch delegates to the wrapped dispatcher and logs the extracted fields.
func (d *LoggingDispatcher) Dispatch(source string, strategy pricescout.Strategy, page *pricescout.RawPage) (product *pricescout.Product, err error) {
	defer func(begin time.Time) {
		attrs := []any{"source", source, "strategy", string(strategy), "url", page.URL, "duration", time.Since(begin)}
		if product != nil {
			attrs = append(attrs, "name", product.Name, "price", product.Price, "stock", product.Availability.Stock.String())
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		d.logger.Debug("extract", attrs...)
	}(time.Now())
	return d.next.Dispatch(source, strategy, page)
}

// Supports delegates to the wrapped dispatcher.
func (d *LoggingDispatcher) Supports(strategy pricescout.Strategy) bool {
	return d.next.Supports(strategy)
}
