package search

import (
	"sort"

	"github.com/robert-malhotra/go-stac-search/pkg/stac"
)

// Assemble selects the matched items in discovery order, sorts them by the
// requested field, truncates to maxItems and wraps the result as a
// FeatureCollection. Items lacking the sort field sort as the empty string;
// assembly never errors. maxItems of Unbounded (-1) emits all matches.
func Assemble(items []*stac.Item, matches MatchSet, sortBy SortField, maxItems int) *stac.FeatureCollection {
	selected := make([]*stac.Item, 0, matches.Len())
	for i, item := range items {
		if matches.Has(i) {
			selected = append(selected, item)
		}
	}

	descending := sortBy.Direction == SortDescending
	sort.SliceStable(selected, func(i, j int) bool {
		a := selected[i].SortValue(sortBy.Field)
		b := selected[j].SortValue(sortBy.Field)
		if descending {
			return b < a
		}
		return a < b
	})

	if maxItems >= 0 && maxItems < len(selected) {
		selected = selected[:maxItems]
	}

	return stac.NewFeatureCollection(selected)
}
