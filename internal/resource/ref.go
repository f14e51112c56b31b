package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref is a foreign reference that the backend sends either as a bare id or as
// an expanded {_id, name} object. It re-encodes in the form it arrived in.
type Ref struct {
	ID       string
	Name     string
	expanded bool
}

// Reference is the bare-id form.
func Reference(id string) Ref {
	return Ref{ID: id}
}

// Expanded is the populated form.
func Expanded(id, name string) Ref {
	return Ref{ID: id, Name: name, expanded: true}
}

// IsZero reports whether the reference points nowhere.
func (r Ref) IsZero() bool {
	return r.ID == "" && r.Name == ""
}

// IsExpanded reports whether the reference arrived populated.
func (r Ref) IsExpanded() bool {
	return r.expanded
}

// Label is what a table cell shows for the reference.
func (r Ref) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

func (r Ref) String() string {
	return r.Label()
}

type expandedRef struct {
	ID    string `json:"_id"`
	AltID string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r Ref) MarshalJSON() ([]byte, error) {
	switch {
	case r.IsZero():
		return []byte("null"), nil
	case r.expanded:
		return json.Marshal(expandedRef{ID: r.ID, Name: r.Name})
	default:
		return json.Marshal(r.ID)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*r = Ref{}
		return nil
	case data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Reference(id)
		return nil
	case data[0] == '{':
		var obj expandedRef
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		id := obj.ID
		if id == "" {
			id = obj.AltID
		}
		*r = Expanded(id, obj.Name)
		return nil
	default:
		return fmt.Errorf("resource: unsupported reference %s", data)
	}
}
