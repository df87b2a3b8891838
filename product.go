package pricescout

import "strings"

// Placeholders used when a field's element cannot be located.
const (
	NameNotSpecified  = "name not specified"
	PriceNotSpecified = "price not specified"
)

// Stock is the classified stock state of a product.
type Stock int

const (
	StockUnknown Stock = iota
	StockIn
	StockOut
)

// String returns the stock state as an upper-case identifier.
func (s Stock) String() string {
	switch s {
	case StockIn:
		return "IN_STOCK"
	case StockOut:
		return "OUT_OF_STOCK"
	default:
		return "UNKNOWN"
	}
}

// Availability pairs a stock state with its display label. Two unknown
// availabilities are distinguishable by label: an absent indicator is
// AvailabilityNotSpecified, unrecognized indicator text is
// AvailabilityUndetermined.
type Availability struct {
	Stock Stock  `json:"stock"`
	Label string `json:"label"`
}

// Known availability values.
var (
	AvailabilityInStock      = Availability{Stock: StockIn, Label: "in stock"}
	AvailabilityOutOfStock   = Availability{Stock: StockOut, Label: "out of stock"}
	AvailabilityNotSpecified = Availability{Stock: StockUnknown, Label: "not specified"}
	AvailabilityUndetermined = Availability{Stock: StockUnknown, Label: "status undetermined"}
)

// Availability indicator tokens, matched as lower-case substrings.
// The sites are Russian-language: "есть" reads "available", "нет" reads "none".
const (
	InStockToken      = "есть"
	NotAvailableToken = "нет"
)

// String returns the display label.
func (a Availability) String() string {
	return a.Label
}

// ClassifyAvailability maps the text of an availability indicator to an
// Availability. Empty text is treated as an absent indicator.
func ClassifyAvailability(text string) Availability {
	text = strings.ToLower(strings.TrimSpace(text))
	switch {
	case text == "":
		return AvailabilityNotSpecified
	case strings.Contains(text, InStockToken):
		return AvailabilityInStock
	case strings.Contains(text, NotAvailableToken):
		return AvailabilityOutOfStock
	default:
		return AvailabilityUndetermined
	}
}

// Product is the structured record extracted from one product page.
// Every field is always populated; missing elements yield placeholders.
type Product struct {
	Source       string       `json:"source"`
	Name         string       `json:"name"`
	Price        string       `json:"price"`
	Availability Availability `json:"availability"`
	URL          string       `json:"url"`
}

// NewProduct returns a product with placeholder fields for the given URL.
func NewProduct(source, url string) *Product {
	return &Product{
		Source:       source,
		Name:         NameNotSpecified,
		Price:        PriceNotSpecified,
		Availability: AvailabilityNotSpecified,
		URL:          url,
	}
}
