package fs

import (
	"context"
	"encoding/csv"
	"io"
	"path/filepath"
	"time"

	"github.com/fwojciec/pricescout"
)

// Ensure CSVExporter implements pricescout.Exporter at compile time.
var _ pricescout.Exporter = (*CSVExporter)(nil)

// CSVExporter writes report rows as <label>_<date>.csv into Dir.
type CSVExporter struct {
	Dir string

	// Now returns the export date. Defaults to time.Now.
	Now func() time.Time
}

// NewCSVExporter creates a CSVExporter writing into dir.
func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{Dir: dir, Now: time.Now}
}

// Export writes the header row followed by rows and returns the file path.
func (e *CSVExporter) Export(ctx context.Context, label string, rows []pricescout.Row) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	path := filepath.Join(e.Dir, pricescout.ExportName(label, now())+".csv")

	err := WriteFileAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(pricescout.RowHeader); err != nil {
			return err
		}
		for _, row := range rows {
			if err := cw.Write(row.Values()); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
