package search

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/robert-malhotra/go-stac-search/pkg/stac"
	"github.com/robert-malhotra/go-stac-search/provider"
)

// Resolved is the outcome of resolving a catalog path: either a structured
// catalog node or raw asset bytes passed through untouched.
type Resolved struct {
	Node      stac.Node
	Asset     []byte
	MediaType string
}

// IsAsset reports whether the resolution produced a raw asset.
func (r Resolved) IsAsset() bool {
	return r.Node == nil
}

// ResolvePath looks up the collection named by the first path segment,
// fetches the resource from its provider and normalizes the structured
// result into a catalog node: provider fields are merged over the base
// envelope, then the collection's static configured links are appended.
func (e *Engine) ResolvePath(ctx context.Context, path string) (Resolved, error) {
	path = strings.Trim(path, "/")
	dataset := path
	if idx := strings.Index(path, "/"); idx >= 0 {
		dataset = path[:idx]
	}

	col, ok := e.collections[dataset]
	if !ok {
		return Resolved{}, &NotFoundError{Resource: dataset, Detail: "Collection not found"}
	}

	relative := strings.TrimPrefix(path, dataset)
	result, err := col.Provider.GetDataPath(ctx, e.baseURL, path, relative)
	if err != nil {
		return Resolved{}, mapProviderError(err)
	}

	if result.IsAsset() {
		return Resolved{Asset: result.Asset, MediaType: result.MediaType}, nil
	}

	node, err := e.normalize(dataset, col, result.Doc)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{Node: node}, nil
}

// normalize merges the provider document over the base envelope and
// appends the collection's static links.
func (e *Engine) normalize(dataset string, col Collection, doc json.RawMessage) (stac.Node, error) {
	envelope := map[string]any{
		"id":           dataset + "-stac",
		"type":         stac.CatalogType,
		"stac_version": stac.Version,
		"description":  col.Description,
		"links":        []any{},
	}

	var fields map[string]any
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, &QueryError{Err: err}
	}
	for key, val := range fields {
		envelope[key] = val
	}

	if len(col.Links) > 0 {
		links, _ := envelope["links"].([]any)
		for _, link := range col.Links {
			links = append(links, link)
		}
		envelope["links"] = links
	}

	merged, err := json.Marshal(envelope)
	if err != nil {
		return nil, &QueryError{Err: err}
	}

	node, err := stac.DecodeNode(merged)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	return node, nil
}

// mapProviderError translates the provider taxonomy into search errors.
// Connection failures keep their cause for server-side logging; the HTTP
// surface exposes a generic message only. Context expiry passes through
// unwrapped so deadline handling stays distinguishable from backend
// failures.
func mapProviderError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, provider.ErrNotFound):
		return &NotFoundError{Resource: err.Error()}
	case errors.Is(err, provider.ErrConnection):
		return &ConnectionError{Err: err}
	default:
		return &QueryError{Err: err}
	}
}
