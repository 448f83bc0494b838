package search

import (
	"fmt"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/robert-malhotra/go-stac-search/pkg/stac"
)

// predicateFunc evaluates one search predicate over the candidate set and
// records matched indices in the MatchSet.
type predicateFunc func(q *Query, items []*stac.Item, matches MatchSet) error

// predicateTable is the immutable predicate dispatch table, built once and
// queried read-only per request. Evaluation order is fixed, though it does
// not affect the result since per-predicate matches are unioned.
var predicateTable = []struct {
	name string
	eval predicateFunc
}{
	{"ids", matchIDs},
	{"bbox", matchBBox},
	{"intersects", matchIntersects},
}

// Filter evaluates every active predicate over items and returns the union
// of matched indices. With no active predicate all indices pass through.
//
// Active predicates combine by logical OR. Conventional STAC item-search
// combines independent filters by AND; changing this would change observable
// results for clients that rely on the union.
func Filter(items []*stac.Item, q *Query) (MatchSet, error) {
	matches := make(MatchSet)
	active := false

	for _, p := range predicateTable {
		if !q.HasPredicate(p.name) {
			continue
		}
		active = true
		if err := p.eval(q, items, matches); err != nil {
			return nil, err
		}
	}

	if !active {
		for i := range items {
			matches.Add(i)
		}
	}
	return matches, nil
}

func matchIDs(q *Query, items []*stac.Item, matches MatchSet) error {
	wanted := make(map[string]bool, len(q.IDs))
	for _, id := range q.IDs {
		wanted[id] = true
	}
	for i, item := range items {
		if wanted[item.Id] {
			matches.Add(i)
		}
	}
	return nil
}

func matchBBox(q *Query, items []*stac.Item, matches MatchSet) error {
	query := rect{minX: q.BBox[0], minY: q.BBox[1], maxX: q.BBox[2], maxY: q.BBox[3]}
	for i, item := range items {
		if len(item.Bbox) < 4 {
			continue
		}
		candidate := rect{minX: item.Bbox[0], minY: item.Bbox[1], maxX: item.Bbox[2], maxY: item.Bbox[3]}
		if query.intersects(candidate) {
			matches.Add(i)
		}
	}
	return nil
}

func matchIntersects(q *Query, items []*stac.Item, matches MatchSet) error {
	queryGeom, err := geom.UnmarshalGeoJSON(q.Intersects)
	if err != nil {
		return &InvalidParameterError{Reason: fmt.Sprintf("error in converting geojson: %v", err)}
	}
	for i, item := range items {
		if len(item.Geometry) == 0 || string(item.Geometry) == "null" {
			continue
		}
		itemGeom, err := geom.UnmarshalGeoJSON(item.Geometry)
		if err != nil {
			// Items with unusable geometry simply do not match.
			continue
		}
		if geom.Intersects(queryGeom, itemGeom) {
			matches.Add(i)
		}
	}
	return nil
}

// rect is an axis-aligned rectangle in WGS84 coordinates. No antimeridian
// wraparound handling.
type rect struct {
	minX, minY, maxX, maxY float64
}

// intersects is the standard 2D rectangle-intersection test; touching
// edges count as intersecting.
func (r rect) intersects(other rect) bool {
	return r.minX <= other.maxX && r.maxX >= other.minX &&
		r.minY <= other.maxY && r.maxY >= other.minY
}
