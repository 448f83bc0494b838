// Package search implements the STAC search core: resolving catalog paths
// through collection providers, recursively flattening the catalog link
// graph into a candidate item set, evaluating the search predicates over
// that set, and assembling the ordered, capped FeatureCollection response.
//
// The search starts from the collection level. When a query names no
// collections the engine expands the scope to every collection linked from
// the service root document. Each scope is flattened to its leaf Features,
// the predicate engine computes a match index set over the combined
// candidates, and the assembler sorts, truncates and wraps the result.
package search
