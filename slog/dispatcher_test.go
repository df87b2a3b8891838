package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/pricescout"
	"github.com/fwojciec/pricescout/mock"
	psslog "github.com/fwojciec/pricescout/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingDispatcher(t *testing.T) {
	t.Parallel()

	t.Run("logs extracted fields at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Dispatcher{
			DispatchFn: func(source string, _ pricescout.Strategy, page *pricescout.RawPage) (*pricescout.Product, error) {
				p := pricescout.NewProduct(source, page.URL)
				p.Name = "Kettle"
				p.Availability = pricescout.AvailabilityInStock
				return p, nil
			},
		}

		d := psslog.NewLoggingDispatcher(inner, logger)
		p, err := d.Dispatch("siteA", pricescout.StrategyTitleBlock, &pricescout.RawPage{URL: "https://shop.example/p/1"})

		require.NoError(t, err)
		assert.Equal(t, "Kettle", p.Name)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "source=siteA")
		assert.Contains(t, output, "strategy=title-block")
		assert.Contains(t, output, "name=Kettle")
		assert.Contains(t, output, "stock=IN_STOCK")
	})

	t.Run("stays quiet at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Dispatcher{
			DispatchFn: func(string, pricescout.Strategy, *pricescout.RawPage) (*pricescout.Product, error) {
				return nil, pricescout.Errorf(pricescout.EPARSE, "no product markup found")
			},
		}

		_, err := psslog.NewLoggingDispatcher(inner, logger).Dispatch("siteA", pricescout.StrategyTitleBlock, &pricescout.RawPage{})

		require.Error(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("delegates supports", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Dispatcher{
			SupportsFn: func(s pricescout.Strategy) bool { return s == pricescout.StrategyProductCard },
		}

		d := psslog.NewLoggingDispatcher(inner, slog.New(slog.DiscardHandler))

		assert.True(t, d.Supports(pricescout.StrategyProductCard))
		assert.False(t, d.Supports(pricescout.StrategyTitleBlock))
	})
}
