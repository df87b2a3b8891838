package goquery_test

import (
	"testing"

	pq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pricescout"
	"github.com/fwojciec/pricescout/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExtractor is a FieldExtractor that records whether it was called.
type stubExtractor struct {
	strategy pricescout.Strategy
	called   bool
}

func (s *stubExtractor) Strategy() pricescout.Strategy { return s.strategy }

func (s *stubExtractor) ExtractFields(doc *pq.Document) (*pricescout.Product, error) {
	s.called = true
	p := pricescout.NewProduct("", "")
	p.Name = doc.Find("h1").Text()
	return p, nil
}

func TestDispatcher_Dispatch(t *testing.T) {
	t.Parallel()

	t.Run("routes to extractor for strategy and labels product", func(t *testing.T) {
		t.Parallel()

		d := goquery.NewDefaultDispatcher()
		page := &pricescout.RawPage{URL: "https://shop.example/p/1", Body: productCardPage}

		p, err := d.Dispatch("shop", pricescout.StrategyProductCard, page)

		require.NoError(t, err)
		assert.Equal(t, "shop", p.Source)
		assert.Equal(t, "https://shop.example/p/1", p.URL)
		assert.Equal(t, "Пылесос", p.Name)
	})

	t.Run("invokes only the registered extractor", func(t *testing.T) {
		t.Parallel()

		a := &stubExtractor{strategy: pricescout.StrategyTitleBlock}
		b := &stubExtractor{strategy: pricescout.StrategyProductCard}
		d := goquery.NewDispatcher(a, b)

		p, err := d.Dispatch("s", pricescout.StrategyProductCard, &pricescout.RawPage{URL: "u", Body: "<h1>X</h1>"})

		require.NoError(t, err)
		assert.Equal(t, "X", p.Name)
		assert.False(t, a.called)
		assert.True(t, b.called)
	})

	t.Run("reports unregistered strategy as internal error", func(t *testing.T) {
		t.Parallel()

		d := goquery.NewDispatcher(&stubExtractor{strategy: pricescout.StrategyTitleBlock})

		_, err := d.Dispatch("s", pricescout.StrategyCatalogDetail, &pricescout.RawPage{URL: "u", Body: "<p/>"})

		require.Error(t, err)
		assert.Equal(t, pricescout.EINTERNAL, pricescout.ErrorCode(err))
		assert.False(t, d.Supports(pricescout.StrategyCatalogDetail))
		assert.True(t, d.Supports(pricescout.StrategyTitleBlock))
	})

	t.Run("returns parse error for empty body", func(t *testing.T) {
		t.Parallel()

		d := goquery.NewDefaultDispatcher()

		_, err := d.Dispatch("s", pricescout.StrategyTitleBlock, &pricescout.RawPage{URL: "u", Body: "  \n"})

		assert.Equal(t, pricescout.EPARSE, pricescout.ErrorCode(err))
	})

	t.Run("returns parse error for unrelated document", func(t *testing.T) {
		t.Parallel()

		d := goquery.NewDefaultDispatcher()

		_, err := d.Dispatch("s", pricescout.StrategyCatalogDetail, &pricescout.RawPage{URL: "u", Body: "<html><body>Captcha</body></html>"})

		assert.Equal(t, pricescout.EPARSE, pricescout.ErrorCode(err))
	})

	t.Run("default dispatcher supports every strategy", func(t *testing.T) {
		t.Parallel()

		d := goquery.NewDefaultDispatcher()
		for _, s := range pricescout.Strategies() {
			assert.True(t, d.Supports(s), string(s))
		}
	})
}
