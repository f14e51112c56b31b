// Package settings edits the backend key/value settings and the signed-in
// account.
package settings

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Setting is one key/value entry. Value is kept as the raw JSON the backend
// sent, since it may be a string, number, boolean or object.
type Setting struct {
	ID        string          `json:"_id,omitempty"`
	Name      string          `json:"key"`
	Value     json.RawMessage `json:"value,omitempty"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
}

// Key implements resource.Entity. Settings are addressed by key, not id.
func (s Setting) Key() string { return s.Name }

// Display renders Value for the table: strings unquoted, everything else
// as compact JSON.
func (s Setting) Display() string {
	raw := bytes.TrimSpace(s.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// Draft is the setting form. On edit the key is fixed by the URL.
type Draft struct {
	Original string `form:"-"`
	Name     string `form:"key" validate:"required,max=100" label:"Key"`
	Value    string `form:"value" label:"Value"`
	// Text marks a value the backend stores as a JSON string, so "123" or
	// "true" typed into it stay strings.
	Text bool `form:"value_kind"`
}

type payload struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// DraftKey implements listeditor.Draft.
func (d Draft) DraftKey() string { return d.Original }

// Payload implements listeditor.Draft. Input that is a JSON object, array,
// number or boolean is sent as that type unless the setting is a text one;
// anything else is sent as text.
func (d Draft) Payload() any {
	if d.Text {
		return payload{Key: d.Name, Value: d.Value}
	}
	return payload{Key: d.Name, Value: typedValue(d.Value)}
}

// IsText reports whether the stored value is a JSON string.
func (s Setting) IsText() bool {
	raw := bytes.TrimSpace(s.Value)
	return len(raw) > 0 && raw[0] == '"'
}

func typedValue(input string) any {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || strings.HasPrefix(trimmed, `"`) || trimmed == "null" {
		return input
	}
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	return input
}
