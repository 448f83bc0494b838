package search

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SortDirection enumerates query sort orders.
type SortDirection string

const (
	// SortAscending orders results ascending. It is the default.
	SortAscending SortDirection = "asc"
	// SortDescending orders results descending.
	SortDescending SortDirection = "desc"
)

// SortField describes one sort clause of a search query.
type SortField struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction,omitempty"`
}

// Query is the parsed search request. The zero value matches everything.
type Query struct {
	Collections []string        `json:"collections,omitempty"`
	IDs         []string        `json:"ids,omitempty"`
	BBox        []float64       `json:"bbox,omitempty"`
	Intersects  json.RawMessage `json:"intersects,omitempty"`
	SortBy      []SortField     `json:"sortby,omitempty"`
	MaxItems    *int            `json:"max_items,omitempty"`

	// Limit is accepted for STAC API compatibility and stripped before
	// predicate evaluation; the service does not paginate.
	Limit int `json:"limit,omitempty"`
}

// Unbounded is the MaxItems value meaning "emit all matches".
const Unbounded = -1

// ParseQuery builds a Query from GET query parameters. The ids,
// collections and bbox parameters are comma-separated; sortby takes a
// field name with an optional +/- direction prefix.
func ParseQuery(values url.Values) (*Query, error) {
	q := &Query{}

	if raw := values.Get("ids"); raw != "" {
		q.IDs = splitList(raw)
	}
	if raw := values.Get("collections"); raw != "" {
		q.Collections = splitList(raw)
	}
	if raw := values.Get("bbox"); raw != "" {
		parts := splitList(raw)
		bbox := make([]float64, 0, len(parts))
		for _, part := range parts {
			f, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, &InvalidParameterError{Reason: fmt.Sprintf("bbox coordinate %q is not a number", part)}
			}
			bbox = append(bbox, f)
		}
		q.BBox = bbox
	}
	if raw := values.Get("intersects"); raw != "" {
		q.Intersects = json.RawMessage(raw)
	}
	if raw := values.Get("sortby"); raw != "" {
		q.SortBy = []SortField{parseSortBy(raw)}
	}
	if raw := values.Get("max_items"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &InvalidParameterError{Reason: fmt.Sprintf("max_items %q is not an integer", raw)}
		}
		q.MaxItems = &n
	}
	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &InvalidParameterError{Reason: fmt.Sprintf("limit %q is not an integer", raw)}
		}
		q.Limit = n
	}

	return q, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseSortBy(raw string) SortField {
	direction := SortAscending
	switch {
	case strings.HasPrefix(raw, "-"):
		direction = SortDescending
		raw = raw[1:]
	case strings.HasPrefix(raw, "+"):
		raw = raw[1:]
	}
	return SortField{Field: raw, Direction: direction}
}

// Validate enforces the query invariants: bbox and intersects are mutually
// exclusive, and a bbox must carry exactly four coordinates.
func (q *Query) Validate() error {
	if len(q.BBox) > 0 && len(q.Intersects) > 0 {
		return &InvalidParameterError{Reason: "only one of either intersects or bbox may be specified"}
	}
	if len(q.BBox) > 0 && len(q.BBox) != 4 {
		return &InvalidParameterError{Reason: "bbox must contain exactly 4 coordinates"}
	}
	return nil
}

// HasPredicate reports whether the named predicate is active.
func (q *Query) HasPredicate(name string) bool {
	switch name {
	case "ids":
		return len(q.IDs) > 0
	case "bbox":
		return len(q.BBox) > 0
	case "intersects":
		return len(q.Intersects) > 0
	}
	return false
}

// Sort returns the first sort clause, or a zero clause when none was
// requested. Only the first clause participates, matching the service's
// single-field ordering.
func (q *Query) Sort() SortField {
	if len(q.SortBy) == 0 {
		return SortField{}
	}
	return q.SortBy[0]
}

// MaxItemsOrUnbounded returns the requested cap, or Unbounded.
func (q *Query) MaxItemsOrUnbounded() int {
	if q.MaxItems == nil {
		return Unbounded
	}
	return *q.MaxItems
}
