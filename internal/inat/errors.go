package inat

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when the request URL cannot be built.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNoData is returned when a 2xx response carries an empty body.
	ErrNoData = errors.New("empty response body")
)

// TransportError wraps a connection-level failure (DNS, TLS, refused, timeout).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("iNaturalist request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is returned when the API answers with a non-2xx status code.
// The response body is logged for diagnostics but never surfaced here.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("iNaturalist returned status %d", e.Code)
}

// DecodeError wraps the parser diagnostic for a payload that did not match
// the expected schema. A decode failure discards the entire batch.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode iNaturalist response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
