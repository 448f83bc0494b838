// Package stac provides the SpatioTemporal Asset Catalog (STAC) data model
// used by the search service: Catalog, Collection, Item, Link and Asset
// types plus the Node union the catalog traversal operates on.
//
// All entity types support "foreign members" - JSON fields not defined in
// the STAC specification. Foreign members survive unmarshal/marshal round
// trips via the AdditionalFields map, which is what lets the service merge
// provider documents over its own envelopes without losing upstream fields.
//
// Example usage:
//
//	node, err := stac.DecodeNode(data)
//	if item, ok := node.(*stac.Item); ok {
//	    fmt.Println(item.Id)
//	}
package stac
