package pricescout

import "errors"

// FailureReason classifies why a URL produced no product record.
type FailureReason string

// Failure reasons.
const (
	ReasonNetwork   FailureReason = "NETWORK_ERROR"
	ReasonForbidden FailureReason = "HTTP_FORBIDDEN"
	ReasonHTTP      FailureReason = "HTTP_ERROR"
	ReasonParse     FailureReason = "PARSE_ERROR"
)

// ReasonFor maps an error to a failure reason using its application code.
// Errors without a per-URL code are reported as parse failures since they
// originate after a successful fetch.
func ReasonFor(err error) FailureReason {
	switch ErrorCode(err) {
	case ENETWORK:
		return ReasonNetwork
	case EFORBIDDEN:
		return ReasonForbidden
	case EHTTP:
		return ReasonHTTP
	default:
		return ReasonParse
	}
}

// Failure describes a per-URL failure.
type Failure struct {
	Reason     FailureReason `json:"reason"`
	StatusCode int           `json:"statusCode,omitempty"`
	Message    string        `json:"message"`
}

// Outcome is the result for one requested URL: exactly one of Product and
// Failure is set.
type Outcome struct {
	URL     string   `json:"url"`
	Product *Product `json:"product,omitempty"`
	Failure *Failure `json:"failure,omitempty"`
}

// OK reports whether the outcome carries a product record.
func (o Outcome) OK() bool {
	return o.Product != nil
}

// Success returns a successful outcome for the product.
func Success(p *Product) Outcome {
	return Outcome{URL: p.URL, Product: p}
}

// Fail returns a failed outcome for url classified from err.
func Fail(url string, err error) Outcome {
	f := &Failure{
		Reason:  ReasonFor(err),
		Message: err.Error(),
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		f.StatusCode = fe.StatusCode
		f.Message = ErrorMessage(fe)
	} else if ErrorCode(err) != EINTERNAL {
		f.Message = ErrorMessage(err)
	}
	return Outcome{URL: url, Failure: f}
}

// Summary counts outcomes of a batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    map[FailureReason]int
}

// Summarize counts successes and failures by reason.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes), Failed: make(map[FailureReason]int)}
	for _, o := range outcomes {
		if o.OK() {
			s.Succeeded++
			continue
		}
		s.Failed[o.Failure.Reason]++
	}
	return s
}
