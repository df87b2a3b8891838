package fs_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/pricescout"
	"github.com/fwojciec/pricescout/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporter_Export(t *testing.T) {
	t.Parallel()

	t.Run("writes header and rows to dated file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		exporter := fs.NewCSVExporter(dir)
		exporter.Now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }

		rows := []pricescout.Row{
			{Source: "siteA", Name: "Kettle, white", Price: "1 990", Availability: "in stock", URL: "https://a.example/1"},
			{Source: "siteA", URL: "https://a.example/2", Error: "NETWORK_ERROR"},
		}

		path, err := exporter.Export(context.Background(), "siteA", rows)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "siteA_2024-03-09.csv"), path)

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		records, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, pricescout.RowHeader, records[0])
		assert.Equal(t, "Kettle, white", records[1][1])
		assert.Equal(t, "NETWORK_ERROR", records[2][5])
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fs.NewCSVExporter(t.TempDir()).Export(ctx, "siteA", nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
