// Package excelize exports report rows as .xlsx workbooks.
package excelize

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fwojciec/pricescout"
	"github.com/fwojciec/pricescout/fs"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the worksheet holding the report.
const SheetName = "Report"

// Ensure Exporter implements pricescout.Exporter at compile time.
var _ pricescout.Exporter = (*Exporter)(nil)

// Exporter writes report rows as <label>_<date>.xlsx into Dir.
type Exporter struct {
	Dir string

	// Now returns the export date. Defaults to time.Now.
	Now func() time.Time
}

// NewExporter creates an Exporter writing into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{Dir: dir, Now: time.Now}
}

// Export writes a single-sheet workbook with a bold header row and an
// autofilter, and returns the file path.
func (e *Exporter) Export(ctx context.Context, label string, rows []pricescout.Row) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	path := filepath.Join(e.Dir, pricescout.ExportName(label, now())+".xlsx")

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return "", err
	}
	if err := writeRow(f, 1, pricescout.RowHeader); err != nil {
		return "", err
	}
	for i, row := range rows {
		if err := writeRow(f, i+2, row.Values()); err != nil {
			return "", err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", err
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return "", err
	}
	if err := f.SetColWidth(SheetName, "A", "A", 16); err != nil {
		return "", err
	}
	if err := f.SetColWidth(SheetName, "B", "B", 48); err != nil {
		return "", err
	}
	if err := f.SetColWidth(SheetName, "C", "D", 18); err != nil {
		return "", err
	}
	if err := f.SetColWidth(SheetName, "E", "F", 60); err != nil {
		return "", err
	}

	lastCell, err := excelize.CoordinatesToCellName(len(pricescout.RowHeader), len(rows)+1)
	if err != nil {
		return "", err
	}
	if err := f.AutoFilter(SheetName, "A1:"+lastCell, nil); err != nil {
		return "", err
	}

	err = fs.WriteFileAtomic(path, func(w io.Writer) error {
		return f.Write(w)
	})
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func writeRow(f *excelize.File, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(SheetName, cell, &cells)
}
