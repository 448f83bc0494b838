package stac

// FeatureCollection is the GeoJSON envelope a search response is wrapped
// in: {"type": "FeatureCollection", "features": [...]}.
type FeatureCollection struct {
	Type     string  `json:"type"`
	Features []*Item `json:"features"`
}

// NewFeatureCollection wraps items in a FeatureCollection envelope. A nil
// item slice still serializes as an empty features array.
func NewFeatureCollection(items []*Item) *FeatureCollection {
	if items == nil {
		items = []*Item{}
	}
	return &FeatureCollection{Type: "FeatureCollection", Features: items}
}

// CollectionsList represents the /stac/collections listing envelope.
type CollectionsList struct {
	Collections []Node  `json:"collections"`
	Links       []*Link `json:"links,omitempty"`
}
