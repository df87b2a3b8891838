// Package goquery implements product field extraction for the supported site
// templates on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/pricescout"
	"golang.org/x/net/html"
)

// FieldExtractor reads product fields from a parsed page of one site template.
type FieldExtractor interface {
	// Strategy returns the template the extractor handles.
	Strategy() pricescout.Strategy

	// ExtractFields returns a product with Name, Price and Availability set.
	// Missing fields are filled with placeholders. Returns EPARSE when none of
	// the template's root elements can be located.
	ExtractFields(doc *goquery.Document) (*pricescout.Product, error)
}

// Layout describes where a site template keeps its product fields.
type Layout struct {
	// NameContainer holds the product heading matched by NameHeading.
	NameContainer cascadia.Selector
	NameHeading   cascadia.Selector

	Price cascadia.Selector

	// AvailabilityList is the intermediate list container around the
	// availability indicator. Nil when the indicator is not nested.
	AvailabilityList cascadia.Selector

	// Availability lists indicator selectors in preference order.
	Availability []cascadia.Selector
}

// ExtractWithLayout applies the per-field fallback rules of a layout to doc.
// Each field is located independently, so a missing element in one field
// never prevents extraction of the others.
func ExtractWithLayout(doc *goquery.Document, layout Layout) (*pricescout.Product, error) {
	nameContainer := doc.FindMatcher(layout.NameContainer).First()
	price := doc.FindMatcher(layout.Price).First()

	// Availability root is the list container when the indicator is nested.
	var availRoot *goquery.Selection
	if layout.AvailabilityList != nil {
		availRoot = doc.FindMatcher(layout.AvailabilityList).First()
	} else {
		availRoot = firstMatch(doc.Selection, layout.Availability)
	}

	if nameContainer.Length() == 0 && price.Length() == 0 && availRoot.Length() == 0 {
		return nil, pricescout.Errorf(pricescout.EPARSE, "page does not match template: no product elements found")
	}

	p := pricescout.NewProduct("", "")

	if name := cleanText(nameContainer.FindMatcher(layout.NameHeading).First()); name != "" {
		p.Name = name
	}

	if text := cleanText(price); text != "" {
		p.Price = text
	}

	indicator := availRoot
	if layout.AvailabilityList != nil && availRoot.Length() > 0 {
		indicator = firstMatch(availRoot, layout.Availability)
	}
	if indicator.Length() > 0 {
		p.Availability = pricescout.ClassifyAvailability(cleanText(indicator))
	}

	return p, nil
}

// firstMatch returns the first element under root matching any of the
// selectors, tried in order. The result is empty when nothing matches.
func firstMatch(root *goquery.Selection, selectors []cascadia.Selector) *goquery.Selection {
	for _, sel := range selectors {
		if found := root.FindMatcher(sel).First(); found.Length() > 0 {
			return found
		}
	}
	return root.FindMatcher(none)
}

// none matches no element.
var none cascadia.Selector = func(*html.Node) bool { return false }

// cleanText returns the selection's text with whitespace runs collapsed.
func cleanText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
