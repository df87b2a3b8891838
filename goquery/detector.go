package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pricescout"
)

// Detector identifies the site template of a product page by checking for
// the structural markers each template is known to use.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the matching strategy.
// Returns false if no supported template is recognized.
func (d *Detector) Detect(html string) (pricescout.Strategy, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	// Title-block pages always carry the title-block heading wrapper.
	if d.hasSelector(doc, "div.title-block__title") ||
		d.hasSelector(doc, "div.product-inner__item") {
		return pricescout.StrategyTitleBlock, true
	}

	if d.hasSelector(doc, "div.product-card__header") ||
		d.hasSelector(doc, "ul.product-card__props") {
		return pricescout.StrategyProductCard, true
	}

	if d.hasSelector(doc, "div.catalog-detail") ||
		d.hasSelector(doc, ".catalog-detail__price") {
		return pricescout.StrategyCatalogDetail, true
	}

	return "", false
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
