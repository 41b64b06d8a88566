package github

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an APIError.
type ErrorKind string

const (
	// KindHTTP is a non-2xx response from the API.
	KindHTTP ErrorKind = "http"
	// KindDecode is a response body that could not be parsed.
	KindDecode ErrorKind = "decode"
	// KindTransport is a network-level failure (timeout, connection reset).
	KindTransport ErrorKind = "transport"
)

// APIError is the error type returned by Client operations. Exactly one
// kind applies to any single failure; none are retried by the client.
type APIError struct {
	Kind       ErrorKind
	StatusCode int    // set for KindHTTP
	Page       int    // listing page the failure occurred on, 0 for raw fetches
	URL        string // request URL
	Err        error  // underlying cause for KindDecode and KindTransport
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch e.Kind {
	case KindHTTP:
		if e.Page > 0 {
			return fmt.Sprintf("github: request failed with status %d (page %d)", e.StatusCode, e.Page)
		}
		return fmt.Sprintf("github: request failed with status %d: %s", e.StatusCode, e.URL)
	case KindDecode:
		return fmt.Sprintf("github: failed to decode response: %v", e.Err)
	default:
		return fmt.Sprintf("github: request failed: %v", e.Err)
	}
}

// Unwrap returns the underlying cause, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsRateLimited checks whether the error is a rate-limit rejection.
func (e *APIError) IsRateLimited() bool {
	return e.Kind == KindHTTP && (e.StatusCode == 403 || e.StatusCode == 429)
}

// IsNotFound checks whether the error indicates a missing resource.
func (e *APIError) IsNotFound() bool {
	return e.Kind == KindHTTP && e.StatusCode == 404
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
