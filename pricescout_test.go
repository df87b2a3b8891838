package pricescout_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/pricescout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := pricescout.Errorf(pricescout.ENOTFOUND, "source %q not found", "test")

	assert.Equal(t, pricescout.ENOTFOUND, pricescout.ErrorCode(err))
	assert.Equal(t, "source \"test\" not found", pricescout.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pricescout.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pricescout.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading: %w", pricescout.Errorf(pricescout.EINVALID, "bad"))

	assert.Equal(t, pricescout.EINVALID, pricescout.ErrorCode(err))
	assert.Equal(t, pricescout.EINTERNAL, pricescout.ErrorCode(errors.New("plain")))
}

func TestFetchError(t *testing.T) {
	t.Parallel()

	t.Run("carries status code and classification", func(t *testing.T) {
		t.Parallel()

		err := pricescout.NewFetchError("https://shop.example/p", 403, pricescout.EFORBIDDEN, "access denied")

		assert.Equal(t, pricescout.EFORBIDDEN, pricescout.ErrorCode(err))
		assert.Equal(t, "fetch https://shop.example/p: HTTP 403: access denied", err.Error())
	})

	t.Run("omits status when transport failed", func(t *testing.T) {
		t.Parallel()

		err := pricescout.NewFetchError("https://shop.example/p", 0, pricescout.ENETWORK, "dial tcp: refused")

		assert.Equal(t, "fetch https://shop.example/p: dial tcp: refused", err.Error())
	})
}

func TestClassifyStatus(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pricescout.ClassifyStatus(200))
	assert.Empty(t, pricescout.ClassifyStatus(204))
	assert.Equal(t, pricescout.EFORBIDDEN, pricescout.ClassifyStatus(403))
	assert.Equal(t, pricescout.EHTTP, pricescout.ClassifyStatus(404))
	assert.Equal(t, pricescout.EHTTP, pricescout.ClassifyStatus(500))
	assert.Equal(t, pricescout.EHTTP, pricescout.ClassifyStatus(301))
}

func TestFail(t *testing.T) {
	t.Parallel()

	t.Run("classifies forbidden fetch", func(t *testing.T) {
		t.Parallel()

		o := pricescout.Fail("u", pricescout.NewFetchError("u", 403, pricescout.EFORBIDDEN, "HTTP 403"))

		require.NotNil(t, o.Failure)
		assert.False(t, o.OK())
		assert.Equal(t, pricescout.ReasonForbidden, o.Failure.Reason)
		assert.Equal(t, 403, o.Failure.StatusCode)
	})

	t.Run("classifies generic http error", func(t *testing.T) {
		t.Parallel()

		o := pricescout.Fail("u", pricescout.NewFetchError("u", 500, pricescout.EHTTP, "HTTP 500"))

		assert.Equal(t, pricescout.ReasonHTTP, o.Failure.Reason)
		assert.Equal(t, 500, o.Failure.StatusCode)
	})

	t.Run("classifies parse error", func(t *testing.T) {
		t.Parallel()

		o := pricescout.Fail("u", pricescout.Errorf(pricescout.EPARSE, "not a product page"))

		assert.Equal(t, pricescout.ReasonParse, o.Failure.Reason)
		assert.Equal(t, "not a product page", o.Failure.Message)
	})
}

func TestClassifyAvailability(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want pricescout.Availability
	}{
		{"in-stock token", "  Есть в наличии ", pricescout.AvailabilityInStock},
		{"not-available token", "Нет в наличии", pricescout.AvailabilityOutOfStock},
		{"other text", "Под заказ", pricescout.AvailabilityUndetermined},
		{"empty text", "   ", pricescout.AvailabilityNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, pricescout.ClassifyAvailability(tt.text))
		})
	}

	t.Run("unknown reasons are distinguishable", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, pricescout.StockUnknown, pricescout.AvailabilityNotSpecified.Stock)
		assert.Equal(t, pricescout.StockUnknown, pricescout.AvailabilityUndetermined.Stock)
		assert.NotEqual(t, pricescout.AvailabilityNotSpecified, pricescout.AvailabilityUndetermined)
	})
}

func TestStock_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "IN_STOCK", pricescout.StockIn.String())
	assert.Equal(t, "OUT_OF_STOCK", pricescout.StockOut.String())
	assert.Equal(t, "UNKNOWN", pricescout.StockUnknown.String())
}

func TestNewProduct(t *testing.T) {
	t.Parallel()

	p := pricescout.NewProduct("shop", "https://shop.example/p")

	assert.Equal(t, "shop", p.Source)
	assert.Equal(t, pricescout.NameNotSpecified, p.Name)
	assert.Equal(t, pricescout.PriceNotSpecified, p.Price)
	assert.Equal(t, pricescout.AvailabilityNotSpecified, p.Availability)
	assert.Equal(t, "https://shop.example/p", p.URL)
}

func TestSource_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts source with zero URLs", func(t *testing.T) {
		t.Parallel()

		s := &pricescout.Source{Name: "shop", Strategy: pricescout.StrategyTitleBlock}
		assert.NoError(t, s.Validate())
	})

	t.Run("rejects missing name", func(t *testing.T) {
		t.Parallel()

		s := &pricescout.Source{Strategy: pricescout.StrategyTitleBlock}
		assert.Equal(t, pricescout.EINVALID, pricescout.ErrorCode(s.Validate()))
	})

	t.Run("rejects unknown strategy", func(t *testing.T) {
		t.Parallel()

		s := &pricescout.Source{Name: "shop", Strategy: "nope"}
		assert.Equal(t, pricescout.EINVALID, pricescout.ErrorCode(s.Validate()))
	})

	t.Run("rejects blank URL", func(t *testing.T) {
		t.Parallel()

		s := &pricescout.Source{Name: "shop", Strategy: pricescout.StrategyProductCard, URLs: []string{" "}}
		assert.Equal(t, pricescout.EINVALID, pricescout.ErrorCode(s.Validate()))
	})
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("returns registered source", func(t *testing.T) {
		t.Parallel()

		r, err := pricescout.NewRegistry(&pricescout.Source{
			Name:     "siteA",
			Strategy: pricescout.StrategyTitleBlock,
			URLs:     []string{"u1", "u2"},
		})
		require.NoError(t, err)

		s, err := r.Resolve("siteA")
		require.NoError(t, err)
		assert.Equal(t, []string{"u1", "u2"}, s.URLs)
		assert.Equal(t, pricescout.StrategyTitleBlock, s.Strategy)
	})

	t.Run("distinguishes unknown source from empty source", func(t *testing.T) {
		t.Parallel()

		r, err := pricescout.NewRegistry(&pricescout.Source{Name: "empty", Strategy: pricescout.StrategyCatalogDetail})
		require.NoError(t, err)

		s, err := r.Resolve("empty")
		require.NoError(t, err)
		assert.Empty(t, s.URLs)

		_, err = r.Resolve("missing")
		require.Error(t, err)
		assert.Equal(t, pricescout.ENOTFOUND, pricescout.ErrorCode(err))
	})

	t.Run("returned source cannot mutate the registry", func(t *testing.T) {
		t.Parallel()

		r, err := pricescout.NewRegistry(&pricescout.Source{Name: "a", Strategy: pricescout.StrategyTitleBlock, URLs: []string{"u1"}})
		require.NoError(t, err)

		s, _ := r.Resolve("a")
		s.URLs[0] = "changed"

		again, _ := r.Resolve("a")
		assert.Equal(t, "u1", again.URLs[0])
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		t.Parallel()

		_, err := pricescout.NewRegistry(
			&pricescout.Source{Name: "a", Strategy: pricescout.StrategyTitleBlock},
			&pricescout.Source{Name: "a", Strategy: pricescout.StrategyProductCard},
		)
		assert.Equal(t, pricescout.EINVALID, pricescout.ErrorCode(err))
	})
}

func TestRegistry_Names(t *testing.T) {
	t.Parallel()

	r, err := pricescout.NewRegistry(
		&pricescout.Source{Name: "b", Strategy: pricescout.StrategyTitleBlock},
		&pricescout.Source{Name: "a", Strategy: pricescout.StrategyProductCard},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, r.Names())
}

func TestParseURLList(t *testing.T) {
	t.Parallel()

	input := "https://shop.example/1\n\n  https://shop.example/2  \n# comment\nhttps://shop.example/3\n"

	urls, err := pricescout.ParseURLList(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://shop.example/1",
		"https://shop.example/2",
		"https://shop.example/3",
	}, urls)
}
