package pricescout_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/pricescout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOutcomes() []pricescout.Outcome {
	return []pricescout.Outcome{
		pricescout.Fail("https://shop.example/u1", pricescout.NewFetchError("https://shop.example/u1", 0, pricescout.ENETWORK, "connection refused")),
		pricescout.Success(&pricescout.Product{
			Source:       "shop",
			Name:         "Kettle",
			Price:        "1 990 ₽",
			Availability: pricescout.AvailabilityInStock,
			URL:          "https://shop.example/u2",
		}),
	}
}

func TestFormatOutcomes(t *testing.T) {
	t.Parallel()

	t.Run("renders one block per outcome including failures", func(t *testing.T) {
		t.Parallel()

		blocks := pricescout.FormatOutcomes(testOutcomes())

		require.Len(t, blocks, 2)
		assert.Equal(t, "Could not get product data from URL: https://shop.example/u1 (NETWORK_ERROR)", blocks[0])
		assert.Equal(t, "Name: Kettle\nPrice: 1 990 ₽\nIn stock: in stock", blocks[1])
	})

	t.Run("returns empty slice for no outcomes", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, pricescout.FormatOutcomes(nil))
		assert.Empty(t, pricescout.FormatReport(nil))
	})
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	report := pricescout.FormatReport(testOutcomes())

	assert.Contains(t, report, "(NETWORK_ERROR)\n\nName: Kettle")
}

func TestRows(t *testing.T) {
	t.Parallel()

	rows := pricescout.Rows("shop", testOutcomes())

	require.Len(t, rows, 2)
	assert.Equal(t, pricescout.Row{
		Source: "shop",
		URL:    "https://shop.example/u1",
		Error:  "NETWORK_ERROR",
	}, rows[0])
	assert.Equal(t, []string{"shop", "Kettle", "1 990 ₽", "in stock", "https://shop.example/u2", ""}, rows[1].Values())
	assert.Len(t, pricescout.RowHeader, len(rows[1].Values()))
}

func TestExportName(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "shop_2025-01-15", pricescout.ExportName("shop", day))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	outcomes := append(testOutcomes(), pricescout.Fail("u3", errors.New("boom")))
	s := pricescout.Summarize(outcomes)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Succeeded)
	assert.Equal(t, 1, s.Failed[pricescout.ReasonNetwork])
	assert.Equal(t, 1, s.Failed[pricescout.ReasonParse])
}
