package mock

import (
	"context"

	"github.com/fwojciec/pricescout"
)

var _ pricescout.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of pricescout.Exporter.
type Exporter struct {
	ExportFn func(ctx context.Context, label string, rows []pricescout.Row) (string, error)
}

func (e *Exporter) Export(ctx context.Context, label string, rows []pricescout.Row) (string, error) {
	return e.ExportFn(ctx, label, rows)
}
