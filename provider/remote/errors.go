package remote

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidUpstreamURL is returned when the upstream URL is missing or relative.
	ErrInvalidUpstreamURL = errors.New("remote: invalid upstream URL")
	// ErrNilHTTPClient indicates a nil HTTP client was provided.
	ErrNilHTTPClient = errors.New("remote: http client cannot be nil")
)

// UpstreamError represents a non-2xx response from the upstream catalog.
type UpstreamError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Raw    []byte `json:"-"`
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Title == "" && e.Detail == "" {
		return fmt.Sprintf("remote: upstream error status=%d", e.Status)
	}
	if e.Title != "" && e.Detail != "" {
		return fmt.Sprintf("remote: %s (%s)", e.Title, e.Detail)
	}
	if e.Title != "" {
		return fmt.Sprintf("remote: %s", e.Title)
	}
	return fmt.Sprintf("remote: %s", e.Detail)
}

// Temporary reports whether the error may be retried.
func (e *UpstreamError) Temporary() bool {
	if e == nil {
		return false
	}
	return e.Status >= 500 && e.Status < 600
}
