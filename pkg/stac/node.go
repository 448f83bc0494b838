package stac

import (
	"encoding/json"
	"fmt"
)

// STAC entity type discriminants.
const (
	CatalogType    = "Catalog"
	CollectionType = "Collection"
	FeatureType    = "Feature"
)

// Version is the STAC specification version emitted by this service.
const Version = "1.0.0"

// Node is the tagged union over the STAC entity kinds. A resolved catalog
// path yields exactly one of *Catalog, *Collection or *Item.
type Node interface {
	// NodeType returns the STAC type discriminant.
	NodeType() string
	// NodeID returns the entity id.
	NodeID() string
	// NodeLinks returns the entity's link list.
	NodeLinks() []*Link
}

// DecodeNode parses a STAC document and returns the concrete entity based
// on its "type" discriminant. Documents without a type field decode as a
// Catalog, matching how upstream catalogs omit it.
func DecodeNode(data []byte) (Node, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decoding node type: %w", err)
	}

	switch probe.Type {
	case FeatureType:
		var item Item
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("decoding item: %w", err)
		}
		return &item, nil
	case CollectionType:
		var col Collection
		if err := json.Unmarshal(data, &col); err != nil {
			return nil, fmt.Errorf("decoding collection: %w", err)
		}
		return &col, nil
	case CatalogType, "":
		var cat Catalog
		if err := json.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("decoding catalog: %w", err)
		}
		return &cat, nil
	default:
		return nil, fmt.Errorf("unknown STAC type %q", probe.Type)
	}
}

// NodeType implements Node.
func (cat *Catalog) NodeType() string { return CatalogType }

// NodeID implements Node.
func (cat *Catalog) NodeID() string { return cat.ID }

// NodeLinks implements Node.
func (cat *Catalog) NodeLinks() []*Link { return cat.Links }

// NodeType implements Node.
func (col *Collection) NodeType() string { return CollectionType }

// NodeID implements Node.
func (col *Collection) NodeID() string { return col.Id }

// NodeLinks implements Node.
func (col *Collection) NodeLinks() []*Link { return col.Links }

// NodeType implements Node.
func (item *Item) NodeType() string { return FeatureType }

// NodeID implements Node.
func (item *Item) NodeID() string { return item.Id }

// NodeLinks implements Node.
func (item *Item) NodeLinks() []*Link { return item.Links }
