package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryCommaSeparatedLists(t *testing.T) {
	values := url.Values{}
	values.Set("ids", "a,b,c")
	values.Set("collections", "lakes,rivers")
	values.Set("bbox", "0,0,10,10")

	q, err := ParseQuery(values)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, q.IDs)
	assert.Equal(t, []string{"lakes", "rivers"}, q.Collections)
	assert.Equal(t, []float64{0, 0, 10, 10}, q.BBox)
}

func TestParseQueryBadBBox(t *testing.T) {
	values := url.Values{}
	values.Set("bbox", "0,0,ten,10")

	_, err := ParseQuery(values)
	var invalid *InvalidParameterError
	assert.ErrorAs(t, err, &invalid)
}

func TestParseQuerySortBy(t *testing.T) {
	tests := []struct {
		raw       string
		field     string
		direction SortDirection
	}{
		{"id", "id", SortAscending},
		{"+id", "id", SortAscending},
		{"-datetime", "datetime", SortDescending},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			values := url.Values{}
			values.Set("sortby", tc.raw)

			q, err := ParseQuery(values)
			require.NoError(t, err)
			require.Len(t, q.SortBy, 1)
			assert.Equal(t, tc.field, q.SortBy[0].Field)
			assert.Equal(t, tc.direction, q.SortBy[0].Direction)
		})
	}
}

func TestParseQueryMaxItemsAndLimit(t *testing.T) {
	values := url.Values{}
	values.Set("max_items", "7")
	values.Set("limit", "10")

	q, err := ParseQuery(values)
	require.NoError(t, err)
	assert.Equal(t, 7, q.MaxItemsOrUnbounded())
	assert.Equal(t, 10, q.Limit)

	_, err = ParseQuery(url.Values{"max_items": []string{"many"}})
	assert.Error(t, err)
}

func TestQueryDefaults(t *testing.T) {
	q := &Query{}
	assert.Equal(t, Unbounded, q.MaxItemsOrUnbounded())
	assert.Equal(t, SortField{}, q.Sort())
	assert.False(t, q.HasPredicate("ids"))
	assert.False(t, q.HasPredicate("bbox"))
	assert.False(t, q.HasPredicate("intersects"))
}

func TestQueryValidateExclusiveSpatialFilters(t *testing.T) {
	q := &Query{
		BBox:       []float64{0, 0, 1, 1},
		Intersects: []byte(`{"type": "Point", "coordinates": [0, 0]}`),
	}

	err := q.Validate()
	var invalid *InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, "only one of either intersects or bbox")
}

func TestQueryValidateBBoxLength(t *testing.T) {
	assert.Error(t, (&Query{BBox: []float64{0, 0, 1}}).Validate())
	assert.NoError(t, (&Query{BBox: []float64{0, 0, 1, 1}}).Validate())
	assert.NoError(t, (&Query{}).Validate())
}
