package eurofaktura

import (
	"errors"
	"fmt"
)

// Common API client errors
var (
	// ErrTransport is returned when the HTTP call fails or the response body
	// is not parseable JSON. The raw body, when available, is persisted for
	// diagnosis before the error is returned.
	ErrTransport = errors.New("eurofaktura transport failure")

	// ErrAPIRejected is returned when the remote reports a business-logic
	// failure other than the empty-result sentinel.
	ErrAPIRejected = errors.New("eurofaktura API rejected the request")
)

// CallError wraps a failed API call with the method and, for rejections,
// the description the remote returned.
type CallError struct {
	// Method is the remote method that was invoked (e.g. "SalesInvoiceList").
	Method string

	// Description is the remote's error description, if any.
	Description string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("eurofaktura: %s failed: %s: %v", e.Method, e.Description, e.Err)
	}
	return fmt.Sprintf("eurofaktura: %s failed: %v", e.Method, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *CallError) Unwrap() error {
	return e.Err
}

// Is implements error matching against the package sentinels.
func (e *CallError) Is(target error) bool {
	return errors.Is(e.Err, target)
}
