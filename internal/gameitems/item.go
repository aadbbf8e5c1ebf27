package gameitems

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var errEmptyItem = errors.New("game item: empty payload")

// GameItem is one catalog record. Its schema belongs to whoever produces the
// catalog, so the exact JSON is kept and re-encoded verbatim. Accessors read
// well-known fields for display and never fail.
type GameItem struct {
	raw    json.RawMessage
	fields map[string]json.RawMessage
}

// NewGameItem wraps an already encoded JSON value.
func NewGameItem(raw []byte) (GameItem, error) {
	var item GameItem
	if err := item.UnmarshalJSON(raw); err != nil {
		return GameItem{}, err
	}
	return item, nil
}

func (item *GameItem) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errEmptyItem
	}
	if !json.Valid(trimmed) {
		return errors.New("game item: invalid json")
	}

	item.raw = append(json.RawMessage(nil), trimmed...)
	item.fields = nil

	var fields map[string]json.RawMessage
	if trimmed[0] == '{' && json.Unmarshal(trimmed, &fields) == nil {
		item.fields = fields
	}
	return nil
}

func (item GameItem) MarshalJSON() ([]byte, error) {
	if len(item.raw) == 0 {
		return []byte("null"), nil
	}
	return item.raw, nil
}

// Raw returns the JSON exactly as received.
func (item GameItem) Raw() json.RawMessage {
	return item.raw
}

func (item GameItem) Field(key string) (json.RawMessage, bool) {
	value, ok := item.fields[key]
	return value, ok
}

// Text renders a scalar field as display text. Strings are unquoted, numbers
// and booleans keep their literal form, anything else is empty.
func (item GameItem) Text(key string) string {
	value, ok := item.Field(key)
	if !ok {
		return ""
	}

	value = bytes.TrimSpace(value)
	if len(value) == 0 {
		return ""
	}

	switch value[0] {
	case '"':
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '{', '[', 'n':
		return ""
	default:
		return string(value)
	}
}

func (item GameItem) ID() string {
	return item.Text("id")
}

func (item GameItem) Name() string {
	if name := item.Text("name"); name != "" {
		return name
	}
	if title := item.Text("title"); title != "" {
		return title
	}
	return item.ID()
}

func (item GameItem) Description() string {
	return item.Text("description")
}

// IsRecord reports whether the item is a JSON object.
func (item GameItem) IsRecord() bool {
	return item.fields != nil
}
