package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/pricescout"
)

var _ FieldExtractor = (*CatalogDetailExtractor)(nil)

// CatalogDetailExtractor reads "catalog-detail" product pages. Availability
// is not nested; older pages use .stock-status instead of
// .catalog-detail__availability.
type CatalogDetailExtractor struct {
	layout Layout
}

// NewCatalogDetailExtractor creates a new CatalogDetailExtractor.
func NewCatalogDetailExtractor() *CatalogDetailExtractor {
	return &CatalogDetailExtractor{
		layout: Layout{
			NameContainer: cascadia.MustCompile("div.catalog-detail"),
			NameHeading:   cascadia.MustCompile("h1"),
			Price:         cascadia.MustCompile(".catalog-detail__price"),
			Availability: []cascadia.Selector{
				cascadia.MustCompile(".catalog-detail__availability"),
				cascadia.MustCompile(".stock-status"),
			},
		},
	}
}

// Strategy returns the extractor's template identifier.
func (e *CatalogDetailExtractor) Strategy() pricescout.Strategy {
	return pricescout.StrategyCatalogDetail
}

// ExtractFields reads name, price and availability from doc.
func (e *CatalogDetailExtractor) ExtractFields(doc *goquery.Document) (*pricescout.Product, error) {
	return ExtractWithLayout(doc, e.layout)
}
