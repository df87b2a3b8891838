package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/pricescout"
)

var _ FieldExtractor = (*ProductCardExtractor)(nil)

// ProductCardExtractor reads product pages that render a single product card.
// The stock line is one item of the card's property list, so the list must be
// found before the indicator.
type ProductCardExtractor struct {
	layout Layout
}

// NewProductCardExtractor creates a new ProductCardExtractor.
func NewProductCardExtractor() *ProductCardExtractor {
	return &ProductCardExtractor{
		layout: Layout{
			NameContainer:    cascadia.MustCompile("div.product-card__header"),
			NameHeading:      cascadia.MustCompile("h1"),
			Price:            cascadia.MustCompile(".product-card__price"),
			AvailabilityList: cascadia.MustCompile("ul.product-card__props"),
			Availability: []cascadia.Selector{
				cascadia.MustCompile("li.product-card__stock"),
			},
		},
	}
}

// Strategy returns the extractor's template identifier.
func (e *ProductCardExtractor) Strategy() pricescout.Strategy {
	return pricescout.StrategyProductCard
}

// ExtractFields reads name, price and availability from doc.
func (e *ProductCardExtractor) ExtractFields(doc *goquery.Document) (*pricescout.Product, error) {
	return ExtractWithLayout(doc, e.layout)
}
