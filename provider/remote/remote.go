// Package remote implements a catalog provider that fetches STAC documents
// from an upstream HTTP endpoint.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/robert-malhotra/go-stac-search/provider"
)

// Remote proxies catalog reads to an upstream STAC endpoint.
type Remote struct {
	httpClient     *http.Client
	upstream       *url.URL
	defaultHeaders http.Header
	retryPolicy    RetryPolicy
	logger         *slog.Logger
}

// New constructs a Remote from registry settings.
func New(settings provider.Settings) (provider.Provider, error) {
	return NewWithOptions(settings.URL)
}

// NewWithOptions constructs a Remote for the given upstream URL.
func NewWithOptions(rawURL string, opts ...Option) (*Remote, error) {
	if rawURL == "" {
		return nil, ErrInvalidUpstreamURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUpstreamURL, err)
	}
	if !u.IsAbs() {
		return nil, ErrInvalidUpstreamURL
	}

	r := &Remote{
		httpClient:     &http.Client{},
		upstream:       u,
		defaultHeaders: make(http.Header),
		retryPolicy:    DefaultRetryPolicy,
		logger:         slog.Default(),
	}
	r.defaultHeaders.Set("Accept", "application/json, application/geo+json")
	r.defaultHeaders.Set("User-Agent", "go-stac-search/0.1")

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if r.httpClient == nil {
		return nil, ErrNilHTTPClient
	}
	return r, nil
}

// GetDataPath implements provider.Provider.
func (r *Remote) GetDataPath(ctx context.Context, baseURL, fullPath, relativePath string) (provider.Result, error) {
	u := *r.upstream
	u.Path = path.Join(r.upstream.Path, "/"+strings.TrimPrefix(relativePath, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return provider.Result{}, &provider.QueryError{Err: err}
	}
	for key, values := range r.defaultHeaders {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	r.logger.Debug("remote fetch", "url", u.String())

	resp, err := r.retry(ctx, func() (*http.Response, error) {
		return r.httpClient.Do(req)
	})
	if err != nil {
		// Wrap both so context expiry stays visible through errors.Is.
		return provider.Result{}, fmt.Errorf("%w: %w", provider.ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return provider.Result{}, fmt.Errorf("%w: %s", provider.ErrNotFound, relativePath)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return provider.Result{}, &provider.QueryError{Err: upstreamError(resp)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return provider.Result{}, &provider.QueryError{Err: err}
	}

	mediaType := resp.Header.Get("Content-Type")
	if isJSONMediaType(mediaType) {
		return provider.StructuredResult(data), nil
	}
	return provider.AssetResult(data, mediaType), nil
}

func isJSONMediaType(mediaType string) bool {
	mediaType = strings.ToLower(mediaType)
	return strings.Contains(mediaType, "json")
}

func upstreamError(resp *http.Response) error {
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if readErr != nil {
		return readErr
	}

	upErr := &UpstreamError{Status: resp.StatusCode, Raw: data}
	if err := json.Unmarshal(data, upErr); err != nil {
		// Fallback to plain message.
		upErr.Detail = string(data)
	}
	return upErr
}
