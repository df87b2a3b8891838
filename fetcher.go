package pricescout

import (
	"context"
	"fmt"
)

// RawPage is the undecoded result of a successful page fetch.
type RawPage struct {
	// URL is the requested URL.
	URL string

	// FinalURL is the URL after redirects.
	FinalURL string

	StatusCode  int
	ContentType string

	// Body is the page content decoded to UTF-8.
	Body string

	// Hash is a content digest for diagnostics.
	Hash string
}

// Fetcher retrieves raw page content for one URL.
type Fetcher interface {
	// Fetch performs exactly one attempt for the URL. Failures are returned as
	// *FetchError carrying ENETWORK, EFORBIDDEN or EHTTP.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*RawPage, error)

	// Close releases fetcher resources.
	Close() error
}

// FetchError describes a failed fetch with enough detail for the caller to
// log it. Err is always an *Error, so ErrorCode reports the classification.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d: %s", e.URL, e.StatusCode, ErrorMessage(e.Err))
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, ErrorMessage(e.Err))
}

// Unwrap returns the underlying application error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError returns a FetchError with the given classification code.
func NewFetchError(url string, status int, code string, format string, args ...any) *FetchError {
	return &FetchError{
		URL:        url,
		StatusCode: status,
		Err:        Errorf(code, format, args...),
	}
}

// ClassifyStatus returns the error code for a non-2xx HTTP status, or ""
// when the status is a success.
func ClassifyStatus(status int) string {
	switch {
	case status >= 200 && status < 300:
		return ""
	case status == 403:
		return EFORBIDDEN
	default:
		return EHTTP
	}
}
