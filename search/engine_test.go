package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-stac-search/pkg/stac"
	"github.com/robert-malhotra/go-stac-search/provider"
)

const testBaseURL = "http://test.local/stac"

// fakeProvider serves canned documents keyed by path relative to the
// collection root ("" is the collection root itself).
type fakeProvider struct {
	docs  map[string]string
	errs  map[string]error
	calls atomic.Int64
}

func (f *fakeProvider) GetDataPath(ctx context.Context, baseURL, path, relativePath string) (provider.Result, error) {
	f.calls.Add(1)
	key := strings.Trim(relativePath, "/")
	if err, ok := f.errs[key]; ok {
		return provider.Result{}, err
	}
	doc, ok := f.docs[key]
	if !ok {
		return provider.Result{}, fmt.Errorf("%w: %s", provider.ErrNotFound, key)
	}
	return provider.StructuredResult([]byte(doc)), nil
}

func featureDoc(id string, bbox string) string {
	return fmt.Sprintf(`{
		"type": "Feature",
		"stac_version": "1.0.0",
		"id": %q,
		"geometry": null,
		"bbox": %s,
		"properties": {},
		"links": [],
		"assets": {}
	}`, id, bbox)
}

func catalogDoc(links ...string) string {
	return fmt.Sprintf(`{"type": "Catalog", "links": [%s]}`, strings.Join(links, ","))
}

func itemLink(href string) string {
	return fmt.Sprintf(`{"rel": "item", "href": %q, "type": "application/geo+json"}`, href)
}

func childLink(href string) string {
	return fmt.Sprintf(`{"rel": "child", "href": %q, "type": "application/json"}`, href)
}

// newTestEngine builds an engine over two fake collections: A with three
// items, B with two, none overlapping.
func newTestEngine(t *testing.T, opts ...Option) (*Engine, *fakeProvider, *fakeProvider) {
	t.Helper()

	providerA := &fakeProvider{docs: map[string]string{
		"": catalogDoc(
			itemLink(testBaseURL+"/A/item-1.json"),
			itemLink(testBaseURL+"/A/item-2.json"),
			itemLink(testBaseURL+"/A/item-3.json"),
			`{"rel": "self", "href": "`+testBaseURL+`/A"}`,
			`{"rel": "root", "href": "`+testBaseURL+`"}`,
		),
		"item-1.json": featureDoc("A-item-1", "[0, 0, 1, 1]"),
		"item-2.json": featureDoc("A-item-2", "[5, 5, 15, 15]"),
		"item-3.json": featureDoc("A-item-3", "[40, 40, 41, 41]"),
	}}
	providerB := &fakeProvider{docs: map[string]string{
		"": catalogDoc(
			itemLink(testBaseURL+"/B/item-1.json"),
			itemLink(testBaseURL+"/B/item-2.json"),
		),
		"item-1.json": featureDoc("B-item-1", "[20, 20, 30, 30]"),
		"item-2.json": featureDoc("B-item-2", "[50, 50, 60, 60]"),
	}}

	engine, err := NewEngine(testBaseURL, []Collection{
		{ID: "A", Description: "collection A", Provider: providerA},
		{ID: "B", Description: "collection B", Provider: providerB},
	}, opts...)
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	return engine, providerA, providerB
}

func TestNewEngineRequiresCollections(t *testing.T) {
	_, err := NewEngine(testBaseURL, nil)
	assert.ErrorIs(t, err, ErrMissingCollection)
}

func TestRootCatalogLinks(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	root := engine.RootCatalog()

	children := root.GetLinks(stac.RelChild)
	require.Len(t, children, 2)
	assert.Equal(t, testBaseURL+"/A", children[0].Href)
	assert.Equal(t, testBaseURL+"/B", children[1].Href)

	require.NotNil(t, root.GetLink(stac.RelSearch))
	require.NotNil(t, root.GetLink(stac.RelSelf))
	assert.Equal(t, stac.Version, root.Version)
}

func TestResolvePathUnknownCollection(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.ResolvePath(context.Background(), "nope")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestResolvePathMergesEnvelope(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	resolved, err := engine.ResolvePath(context.Background(), "A")
	require.NoError(t, err)
	require.False(t, resolved.IsAsset())

	cat, ok := resolved.Node.(*stac.Catalog)
	require.True(t, ok)
	// The provider document has no description; the envelope's survives.
	assert.Equal(t, "collection A", cat.Description)
	assert.Equal(t, stac.Version, cat.Version)
}

func TestResolvePathAppendsStaticLinks(t *testing.T) {
	p := &fakeProvider{docs: map[string]string{"": catalogDoc()}}
	engine, err := NewEngine(testBaseURL, []Collection{{
		ID:       "A",
		Provider: p,
		Links:    []*stac.Link{{Rel: "license", Href: "http://test.local/license"}},
	}})
	require.NoError(t, err)
	defer engine.Close()

	resolved, err := engine.ResolvePath(context.Background(), "A")
	require.NoError(t, err)

	links := resolved.Node.NodeLinks()
	require.Len(t, links, 1)
	assert.Equal(t, "license", links[0].Rel)
}

func TestFlattenCollectsAllLeaves(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	resolved, err := engine.ResolvePath(context.Background(), "A")
	require.NoError(t, err)

	items, err := engine.flatten(context.Background(), resolved.Node.NodeLinks())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "A-item-1", items[0].Id)
	assert.Equal(t, "A-item-3", items[2].Id)
}

func TestFlattenDescendsNestedCatalogs(t *testing.T) {
	p := &fakeProvider{docs: map[string]string{
		"":                 catalogDoc(childLink(testBaseURL + "/C/2020")),
		"2020":             catalogDoc(itemLink(testBaseURL + "/C/2020/item-1.json")),
		"2020/item-1.json": featureDoc("C-item-1", "null"),
	}}
	engine, err := NewEngine(testBaseURL, []Collection{{ID: "C", Provider: p}})
	require.NoError(t, err)
	defer engine.Close()

	items, err := engine.collectScope(context.Background(), "C")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "C-item-1", items[0].Id)
}

func TestFlattenDuplicateLeavesKept(t *testing.T) {
	// The same item is linked from the collection root and from a child
	// catalog; it appears twice in the candidate set.
	p := &fakeProvider{docs: map[string]string{
		"": catalogDoc(
			itemLink(testBaseURL+"/C/item-1.json"),
			childLink(testBaseURL+"/C/sub"),
		),
		"sub":         catalogDoc(itemLink(testBaseURL + "/C/item-1.json")),
		"item-1.json": featureDoc("C-item-1", "null"),
	}}
	engine, err := NewEngine(testBaseURL, []Collection{{ID: "C", Provider: p}})
	require.NoError(t, err)
	defer engine.Close()

	items, err := engine.collectScope(context.Background(), "C")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFlattenTerminatesOnCycle(t *testing.T) {
	// C/sub links back to the collection root: a pathological cycle.
	p := &fakeProvider{docs: map[string]string{
		"": catalogDoc(
			itemLink(testBaseURL+"/C/item-1.json"),
			childLink(testBaseURL+"/C/sub"),
		),
		"sub":         catalogDoc(childLink(testBaseURL + "/C")),
		"item-1.json": featureDoc("C-item-1", "null"),
	}}
	engine, err := NewEngine(testBaseURL, []Collection{{ID: "C", Provider: p}})
	require.NoError(t, err)
	defer engine.Close()

	items, err := engine.collectScope(context.Background(), "C")
	require.NoError(t, err)
	assert.NotEmpty(t, items)
}

func TestFlattenDepthBound(t *testing.T) {
	p := &fakeProvider{docs: map[string]string{
		"":          catalogDoc(childLink(testBaseURL + "/C/l1")),
		"l1":        catalogDoc(childLink(testBaseURL + "/C/l1/l2")),
		"l1/l2":     catalogDoc(itemLink(testBaseURL + "/C/item.json")),
		"item.json": featureDoc("C-item", "null"),
	}}
	engine, err := NewEngine(testBaseURL, []Collection{{ID: "C", Provider: p}},
		WithMaxDepth(2))
	require.NoError(t, err)
	defer engine.Close()

	items, err := engine.collectScope(context.Background(), "C")
	require.NoError(t, err)
	// The leaf sits below the depth bound and is never reached.
	assert.Empty(t, items)
}

func TestSearchByID(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	fc, err := engine.Search(context.Background(), &Query{IDs: []string{"A-item-2"}})
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "A-item-2", fc.Features[0].Id)
}

func TestSearchDefaultsToAllCollections(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	fc, err := engine.Search(context.Background(), &Query{})
	require.NoError(t, err)
	assert.Len(t, fc.Features, 5)
}

func TestSearchScopeOrderWithWorkers(t *testing.T) {
	engine, _, _ := newTestEngine(t, WithWorkers(4))

	// Results must follow collection-scope order, not completion order.
	fc, err := engine.Search(context.Background(), &Query{Collections: []string{"B", "A"}})
	require.NoError(t, err)
	require.Len(t, fc.Features, 5)
	assert.Equal(t, "B-item-1", fc.Features[0].Id)
	assert.Equal(t, "A-item-1", fc.Features[2].Id)
}

func TestSearchBBox(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	fc, err := engine.Search(context.Background(), &Query{BBox: []float64{0, 0, 10, 10}})
	require.NoError(t, err)

	ids := featureIDs(fc)
	assert.Contains(t, ids, "A-item-1")
	assert.Contains(t, ids, "A-item-2")
	assert.NotContains(t, ids, "A-item-3")
	assert.NotContains(t, ids, "B-item-1")
}

func TestSearchSortAndTruncate(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	two := 2

	fc, err := engine.Search(context.Background(), &Query{
		SortBy:   []SortField{{Field: "id", Direction: SortDescending}},
		MaxItems: &two,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"B-item-2", "B-item-1"}, featureIDs(fc))
}

func TestSearchValidatesBeforeFlattening(t *testing.T) {
	engine, providerA, providerB := newTestEngine(t)

	_, err := engine.Search(context.Background(), &Query{
		BBox:       []float64{0, 0, 1, 1},
		Intersects: []byte(`{"type": "Point", "coordinates": [0, 0]}`),
	})

	var invalid *InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Zero(t, providerA.calls.Load())
	assert.Zero(t, providerB.calls.Load())
}

// slowProvider blocks until its delay elapses or the context expires.
type slowProvider struct {
	delay time.Duration
}

func (s *slowProvider) GetDataPath(ctx context.Context, baseURL, path, relativePath string) (provider.Result, error) {
	select {
	case <-ctx.Done():
		return provider.Result{}, ctx.Err()
	case <-time.After(s.delay):
		return provider.StructuredResult([]byte(`{"type": "Catalog", "links": []}`)), nil
	}
}

func TestSearchTimeoutAbortsPipeline(t *testing.T) {
	engine, err := NewEngine(testBaseURL, []Collection{
		{ID: "slow", Provider: &slowProvider{delay: 5 * time.Second}},
	}, WithSearchTimeout(50*time.Millisecond))
	require.NoError(t, err)
	defer engine.Close()

	start := time.Now()
	_, err = engine.Search(context.Background(), &Query{})
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)

	// Deadline expiry must stay distinguishable from backend failures.
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	var query *QueryError
	assert.False(t, errors.As(err, &query))
	var connection *ConnectionError
	assert.False(t, errors.As(err, &connection))
}

func TestSearchAbortsOnProviderError(t *testing.T) {
	engine, providerA, _ := newTestEngine(t)
	providerA.errs = map[string]error{"item-2.json": provider.ErrConnection}

	_, err := engine.Search(context.Background(), &Query{Collections: []string{"A"}})
	var connection *ConnectionError
	assert.ErrorAs(t, err, &connection)
}

func TestSearchUnknownCollection(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.Search(context.Background(), &Query{Collections: []string{"missing"}})
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRelativePath(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	tests := []struct {
		href string
		want string
	}{
		{testBaseURL + "/A/item-1.json", "A/item-1.json"},
		{testBaseURL + "/A", "A"},
		{"http://other.host/stac/B/x.json", "B/x.json"},
		{"A/item-1.json", "A/item-1.json"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, engine.relativePath(tc.href), tc.href)
	}
}
