package stac

import "encoding/json"

// Relation types the catalog traversal cares about. Only child and item
// links are traversal edges; root, self and parent point back up or at the
// document itself and must never be descended.
const (
	RelRoot        = "root"
	RelSelf        = "self"
	RelParent      = "parent"
	RelChild       = "child"
	RelItem        = "item"
	RelSearch      = "search"
	RelServiceDesc = "service-desc"
	RelServiceDoc  = "service-doc"
)

// Link represents a STAC Link with support for additional fields.
type Link struct {
	Href  string `json:"href"`
	Rel   string `json:"rel"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`

	// AdditionalFields holds foreign members (e.g., "method", "body" for POST links).
	AdditionalFields map[string]any `json:"-"`
}

// IsTraversal reports whether the link is a child or item edge.
func (link *Link) IsTraversal() bool {
	return link.Rel == RelChild || link.Rel == RelItem
}

// IsBacklink reports whether the link points at the document itself or up
// the tree (root, self, parent).
func (link *Link) IsBacklink() bool {
	return link.Rel == RelRoot || link.Rel == RelSelf || link.Rel == RelParent
}

var knownLinkFields = map[string]bool{
	"href": true, "rel": true, "type": true, "title": true,
}

// UnmarshalJSON implements custom unmarshaling to capture foreign members.
func (link *Link) UnmarshalJSON(data []byte) error {
	type linkAlias Link
	var aux linkAlias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*link = Link(aux)

	link.AdditionalFields = make(map[string]any)
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, val := range raw {
		if !knownLinkFields[key] {
			var decoded any
			if err := json.Unmarshal(val, &decoded); err != nil {
				continue
			}
			link.AdditionalFields[key] = decoded
		}
	}

	return nil
}

// MarshalJSON implements custom marshaling to include foreign members.
func (link Link) MarshalJSON() ([]byte, error) {
	type linkAlias Link
	aux := linkAlias(link)

	data, err := json.Marshal(aux)
	if err != nil {
		return nil, err
	}

	if len(link.AdditionalFields) == 0 {
		return data, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}

	for key, val := range link.AdditionalFields {
		encoded, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		obj[key] = encoded
	}

	return json.Marshal(obj)
}
