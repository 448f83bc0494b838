package search

import (
	"errors"
	"fmt"
)

// ErrMissingCollection is returned when an engine is built without any
// configured collections.
var ErrMissingCollection = errors.New("search: at least one collection is required")

// NotFoundError is returned when a path does not name a known collection
// or resource. Detail is the client-facing description; empty means the
// generic "resource not found".
type NotFoundError struct {
	Resource string
	Detail   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("search: resource not found: %s", e.Resource)
}

// InvalidParameterError is returned for malformed or mutually exclusive
// search parameters. It maps to a client error at the HTTP surface.
type InvalidParameterError struct {
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("search: invalid parameter value: %s", e.Reason)
}

// ConnectionError is returned when a collection's backend is unreachable.
// The wrapped cause is logged server-side; callers surface a generic
// message only.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("search: connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError wraps any other backend failure during data fetch.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("search: data query error: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
