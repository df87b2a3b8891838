package pricescout

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// FormatOutcome renders one outcome as a human-readable text block.
func FormatOutcome(o Outcome) string {
	if o.OK() {
		return fmt.Sprintf("Name: %s\nPrice: %s\nIn stock: %s",
			o.Product.Name, o.Product.Price, o.Product.Availability.Label)
	}
	return fmt.Sprintf("Could not get product data from URL: %s (%s)", o.URL, o.Failure.Reason)
}

// FormatOutcomes renders every outcome, success or failure, as a text block.
func FormatOutcomes(outcomes []Outcome) []string {
	blocks := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		blocks = append(blocks, FormatOutcome(o))
	}
	return blocks
}

// FormatReport joins the text blocks of a batch with blank lines.
func FormatReport(outcomes []Outcome) string {
	return strings.Join(FormatOutcomes(outcomes), "\n\n")
}

// Row is one line of a tabular export.
type Row struct {
	Source       string
	Name         string
	Price        string
	Availability string
	URL          string
	Error        string
}

// RowHeader names the columns of a Row, in Values order.
var RowHeader = []string{"Source", "Name", "Price", "Availability", "URL", "Error"}

// Values returns the row's cells in RowHeader order.
func (r Row) Values() []string {
	return []string{r.Source, r.Name, r.Price, r.Availability, r.URL, r.Error}
}

// Rows converts outcomes to tabular rows tagged with the source label.
// Failed outcomes keep their URL and carry the reason in the Error column.
func Rows(label string, outcomes []Outcome) []Row {
	rows := make([]Row, 0, len(outcomes))
	for _, o := range outcomes {
		if o.OK() {
			rows = append(rows, Row{
				Source:       label,
				Name:         o.Product.Name,
				Price:        o.Product.Price,
				Availability: o.Product.Availability.Label,
				URL:          o.URL,
			})
			continue
		}
		rows = append(rows, Row{
			Source: label,
			URL:    o.URL,
			Error:  string(o.Failure.Reason),
		})
	}
	return rows
}

// ExportName returns the base file name for an export of label on day,
// without extension. Example: shop_2025-01-15.
func ExportName(label string, day time.Time) string {
	return label + "_" + day.Format("2006-01-02")
}

// Exporter writes tabular rows of a batch to a document.
type Exporter interface {
	// Export writes rows for label and returns the path of the written file.
	Export(ctx context.Context, label string, rows []Row) (string, error)
}
