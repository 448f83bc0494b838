package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a path does not name a known resource.
	ErrNotFound = errors.New("provider: resource not found")
	// ErrConnection is returned when the backend is unreachable.
	ErrConnection = errors.New("provider: connection error")
	// ErrUnknownProviderType is returned for provider types missing from
	// the registry.
	ErrUnknownProviderType = errors.New("provider: unknown provider type")
)

// QueryError wraps any backend failure that is neither a missing resource
// nor a connection problem.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("provider: query error: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
