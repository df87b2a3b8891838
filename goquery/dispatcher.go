package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pricescout"
)

var _ pricescout.Dispatcher = (*Dispatcher)(nil)

// Dispatcher routes parsed pages to the field extractor registered for a
// strategy. Registration happens before use; afterwards the dispatcher is
// read-only and safe for concurrent use.
type Dispatcher struct {
	extractors map[pricescout.Strategy]FieldExtractor
}

// NewDispatcher creates a Dispatcher with the given extractors registered.
func NewDispatcher(extractors ...FieldExtractor) *Dispatcher {
	d := &Dispatcher{extractors: make(map[pricescout.Strategy]FieldExtractor)}
	for _, e := range extractors {
		d.Register(e)
	}
	return d
}

// NewDefaultDispatcher creates a Dispatcher with an extractor for every
// supported strategy.
func NewDefaultDispatcher() *Dispatcher {
	return NewDispatcher(
		NewTitleBlockExtractor(),
		NewProductCardExtractor(),
		NewCatalogDetailExtractor(),
	)
}

// Register adds an extractor under its strategy.
// If an extractor is already registered for the strategy, it is replaced.
func (d *Dispatcher) Register(e FieldExtractor) {
	d.extractors[e.Strategy()] = e
}

// Supports reports whether an extractor is registered for the strategy.
func (d *Dispatcher) Supports(strategy pricescout.Strategy) bool {
	_, ok := d.extractors[strategy]
	return ok
}

// Dispatch parses the page once and invokes the extractor for strategy.
// The returned product is labeled with source and the page's requested URL.
func (d *Dispatcher) Dispatch(source string, strategy pricescout.Strategy, page *pricescout.RawPage) (*pricescout.Product, error) {
	e, ok := d.extractors[strategy]
	if !ok {
		return nil, pricescout.Errorf(pricescout.EINTERNAL, "no extractor registered for strategy %q", strategy)
	}

	if strings.TrimSpace(page.Body) == "" {
		return nil, pricescout.Errorf(pricescout.EPARSE, "empty document")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return nil, pricescout.Errorf(pricescout.EPARSE, "failed to parse HTML: %v", err)
	}

	p, err := e.ExtractFields(doc)
	if err != nil {
		return nil, err
	}
	p.Source = source
	p.URL = page.URL
	return p, nil
}
