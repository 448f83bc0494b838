package remote

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Remote during construction.
type Option func(*Remote) error

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(r *Remote) error {
		if httpClient == nil {
			return ErrNilHTTPClient
		}
		r.httpClient = httpClient
		return nil
	}
}

// WithDefaultHeader registers a header applied to every upstream request.
func WithDefaultHeader(key, value string) Option {
	return func(r *Remote) error {
		if key == "" {
			return nil
		}
		if r.defaultHeaders == nil {
			r.defaultHeaders = make(http.Header)
		}
		r.defaultHeaders.Add(key, value)
		return nil
	}
}

// WithRetryPolicy configures the retry behavior for upstream fetches.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(r *Remote) error {
		r.retryPolicy = policy
		return nil
	}
}

// WithLogger registers a logger used for request lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Remote) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithTimeout sets a per-request timeout on the underlying http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Remote) error {
		if timeout <= 0 {
			return nil
		}
		if r.httpClient == nil {
			r.httpClient = &http.Client{}
		}
		r.httpClient.Timeout = timeout
		return nil
	}
}
