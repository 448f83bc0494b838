// Package provider defines the contract between the search service and the
// backends that serve catalog documents for a single collection. The search
// core only consumes Result values; it never reaches into a backend's
// internals.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider serves STAC documents for one collection.
type Provider interface {
	// GetDataPath fetches the resource at relativePath within the
	// collection. baseURL is the public /stac base used when the provider
	// has to mint hrefs, path is the full catalog path being resolved.
	GetDataPath(ctx context.Context, baseURL, path, relativePath string) (Result, error)
}

// Result is the tagged outcome of a provider fetch: either a structured
// STAC document or raw asset bytes that bypass the search pipeline.
type Result struct {
	// Doc holds the structured STAC document, nil for raw assets.
	Doc json.RawMessage
	// Asset holds raw asset bytes for non-JSON resources.
	Asset []byte
	// MediaType is the media type of a raw asset.
	MediaType string
}

// IsAsset reports whether the result is a raw asset pass-through.
func (r Result) IsAsset() bool {
	return r.Doc == nil
}

// StructuredResult wraps a STAC document.
func StructuredResult(doc json.RawMessage) Result {
	return Result{Doc: doc}
}

// AssetResult wraps raw asset bytes.
func AssetResult(data []byte, mediaType string) Result {
	return Result{Asset: data, MediaType: mediaType}
}

// Settings carries the static configuration a provider is built from.
type Settings struct {
	// Type names the provider in the registry.
	Type string
	// Dir is the catalog root directory for filesystem providers.
	Dir string
	// URL is the upstream endpoint for remote providers.
	URL string
}

// Factory constructs a Provider from its settings.
type Factory func(Settings) (Provider, error)

// Registry is an immutable dispatch table mapping provider type names to
// factories. It is built once at process start and queried read-only.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds a registry from the given factories.
func NewRegistry(factories map[string]Factory) *Registry {
	cp := make(map[string]Factory, len(factories))
	for name, factory := range factories {
		cp[name] = factory
	}
	return &Registry{factories: cp}
}

// New constructs a provider of the named type.
func (r *Registry) New(settings Settings) (Provider, error) {
	factory, ok := r.factories[settings.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProviderType, settings.Type)
	}
	return factory(settings)
}
