package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/robert-malhotra/go-stac-search/pkg/stac"
	"github.com/robert-malhotra/go-stac-search/provider"
)

// Collection is one configured collection scope: its descriptive metadata,
// the static links appended to every resolved document, and the provider
// that serves its records.
type Collection struct {
	ID          string
	Title       string
	Description string
	Links       []*stac.Link
	Provider    provider.Provider
}

// Engine runs the search pipeline over the configured collections. An
// Engine is safe for concurrent use; every search owns its working set
// exclusively.
type Engine struct {
	baseURL     string
	catalogID   string
	title       string
	description string

	collections map[string]Collection
	order       []string

	logger   *slog.Logger
	maxDepth int
	timeout  time.Duration
	pool     *ants.Pool
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithServiceMetadata sets the root catalog id, title and description.
func WithServiceMetadata(id, title, description string) Option {
	return func(e *Engine) error {
		if id != "" {
			e.catalogID = id
		}
		e.title = title
		e.description = description
		return nil
	}
}

// WithMaxDepth bounds catalog traversal depth. Default is 16.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) error {
		if depth > 0 {
			e.maxDepth = depth
		}
		return nil
	}
}

// WithSearchTimeout sets a deadline around the whole flatten and filter
// pipeline. Zero disables the deadline.
func WithSearchTimeout(timeout time.Duration) Option {
	return func(e *Engine) error {
		e.timeout = timeout
		return nil
	}
}

// WithWorkers sizes the worker pool used to fan out per-collection
// flattening. Zero keeps resolution sequential.
func WithWorkers(workers int) Option {
	return func(e *Engine) error {
		if workers <= 0 {
			return nil
		}
		pool, err := ants.NewPool(workers)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// NewEngine builds an Engine serving the given collections under the
// public /stac base URL.
func NewEngine(baseURL string, collections []Collection, opts ...Option) (*Engine, error) {
	if len(collections) == 0 {
		return nil, ErrMissingCollection
	}

	e := &Engine{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		catalogID:   "stac-search",
		collections: make(map[string]Collection, len(collections)),
		logger:      slog.Default(),
		maxDepth:    16,
	}
	for _, col := range collections {
		e.collections[col.ID] = col
		e.order = append(e.order, col.ID)
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Close releases the engine's worker pool.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// RootCatalog builds the service root Catalog document: one child link per
// configured collection plus the root, self and search links.
func (e *Engine) RootCatalog() *stac.Catalog {
	links := make([]*stac.Link, 0, len(e.order)+5)
	for _, id := range e.order {
		links = append(links, &stac.Link{
			Rel:  stac.RelChild,
			Href: e.baseURL + "/" + id,
			Type: "application/json",
		})
	}
	serviceRoot := strings.TrimSuffix(e.baseURL, "/stac")
	links = append(links,
		&stac.Link{Rel: stac.RelRoot, Href: e.baseURL, Type: "application/json"},
		&stac.Link{Rel: stac.RelSelf, Href: e.baseURL, Type: "application/json"},
		&stac.Link{Rel: stac.RelServiceDesc, Href: serviceRoot + "/openapi?f=json", Type: "application/vnd.oai.openapi+json;version=3.0"},
		&stac.Link{Rel: stac.RelServiceDoc, Href: serviceRoot + "/openapi?f=html", Type: "text/html"},
		&stac.Link{
			Rel:   stac.RelSearch,
			Href:  e.baseURL + "/search",
			Type:  "application/geo+json",
			Title: "STAC search",
			AdditionalFields: map[string]any{
				"method": "GET",
			},
		},
	)

	return &stac.Catalog{
		Version:     stac.Version,
		ID:          e.catalogID,
		Title:       e.title,
		Description: e.description,
		ConformsTo: []string{
			stac.ConformanceCollections,
			stac.ConformanceCore,
			stac.ConformanceFeatures,
			stac.ConformanceItemSearch,
			stac.ConformanceSort,
		},
		Links: links,
	}
}

// CollectionIDs returns the configured collection ids in catalog order.
func (e *Engine) CollectionIDs() []string {
	ids := make([]string, len(e.order))
	copy(ids, e.order)
	return ids
}

// Search runs the full pipeline: validate, expand scopes, flatten each
// scope to its leaf Features, filter, sort, truncate and wrap. Resolver,
// flattener and predicate errors abort immediately with no partial
// results; nothing is retried at this layer.
func (e *Engine) Search(ctx context.Context, q *Query) (*stac.FeatureCollection, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	scopes := q.Collections
	if len(scopes) == 0 {
		scopes = e.rootScopes()
		e.logger.Debug("search without collections, using root scope", "collections", len(scopes))
	}

	// Scopes flatten independently; results are reconciled in scope order,
	// never completion order.
	results := make([][]*stac.Item, len(scopes))
	errs := make([]error, len(scopes))
	var wg sync.WaitGroup
	for i, scope := range scopes {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i], errs[i] = e.collectScope(ctx, scope)
		}
		if e.pool != nil {
			if err := e.pool.Submit(task); err != nil {
				task()
			}
		} else {
			task()
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var items []*stac.Item
	for _, scoped := range results {
		items = append(items, scoped...)
	}
	e.logger.Debug("search flattened candidate set", "items", len(items))

	matches, err := Filter(items, q)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("search filtered results", "matched", matches.Len())

	return Assemble(items, matches, q.Sort(), q.MaxItemsOrUnbounded()), nil
}

// collectScope resolves one collection scope and flattens it to leaves.
func (e *Engine) collectScope(ctx context.Context, scope string) ([]*stac.Item, error) {
	resolved, err := e.ResolvePath(ctx, scope)
	if err != nil {
		return nil, err
	}
	if resolved.IsAsset() {
		return nil, &QueryError{Err: fmt.Errorf("collection scope %q resolved to a raw asset", scope)}
	}
	if item, ok := resolved.Node.(*stac.Item); ok {
		return []*stac.Item{item}, nil
	}
	return e.flatten(ctx, resolved.Node.NodeLinks())
}

// rootScopes enumerates all collections by reading the rel=child links of
// the service root document.
func (e *Engine) rootScopes() []string {
	var scopes []string
	for _, link := range e.RootCatalog().GetLinks(stac.RelChild) {
		href := strings.TrimSuffix(link.Href, "/")
		if idx := strings.LastIndex(href, "/"); idx >= 0 {
			href = href[idx+1:]
		}
		if q := strings.Index(href, "?"); q >= 0 {
			href = href[:q]
		}
		if href != "" {
			scopes = append(scopes, href)
		}
	}
	return scopes
}
