package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/pricescout"
)

var _ FieldExtractor = (*TitleBlockExtractor)(nil)

// TitleBlockExtractor reads product pages built on the "title-block" theme.
// It targets:
// - div.title-block__title > h1 for the name
// - div.price for the price
// - div.product-inner__item wrapping div.product-inner__text for availability
type TitleBlockExtractor struct {
	layout Layout
}

// NewTitleBlockExtractor creates a new TitleBlockExtractor.
func NewTitleBlockExtractor() *TitleBlockExtractor {
	return &TitleBlockExtractor{
		layout: Layout{
			NameContainer:    cascadia.MustCompile("div.title-block__title"),
			NameHeading:      cascadia.MustCompile("h1"),
			Price:            cascadia.MustCompile("div.price"),
			AvailabilityList: cascadia.MustCompile("div.product-inner__item"),
			Availability: []cascadia.Selector{
				cascadia.MustCompile("div.product-inner__text"),
			},
		},
	}
}

// Strategy returns the extractor's template identifier.
func (e *TitleBlockExtractor) Strategy() pricescout.Strategy {
	return pricescout.StrategyTitleBlock
}

// ExtractFields reads name, price and availability from doc.
func (e *TitleBlockExtractor) ExtractFields(doc *goquery.Document) (*pricescout.Product, error) {
	return ExtractWithLayout(doc, e.layout)
}
