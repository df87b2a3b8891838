package pricescout

// Dispatcher parses a fetched page once and routes it to the field
// extractor registered for a strategy.
type Dispatcher interface {
	// Dispatch returns the product record for the page, labeled with source.
	// Returns EPARSE if the page does not resemble the strategy's template and
	// EINTERNAL if no extractor is registered for the strategy.
	Dispatch(source string, strategy Strategy, page *RawPage) (*Product, error)

	// Supports reports whether an extractor is registered for the strategy.
	Supports(strategy Strategy) bool
}
