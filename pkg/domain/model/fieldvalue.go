package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldValue is a single record field as returned by the table API.
// Depending on the result-shape flag a field arrives either as a bare
// scalar or as a {display_value, value} pair. Both variants resolve
// through the same accessors so callers never probe the shape.
type FieldValue struct {
	raw        string
	display    string
	hasDisplay bool
}

// NewScalar creates a FieldValue from a bare scalar
func NewScalar(v string) FieldValue {
	return FieldValue{raw: v}
}

// NewDisplay creates a FieldValue carrying both raw and display forms
func NewDisplay(display, raw string) FieldValue {
	return FieldValue{raw: raw, display: display, hasDisplay: true}
}

// Value returns the raw coded value
func (v FieldValue) Value() string {
	return v.raw
}

// Display returns the human-readable form, falling back to the raw
// value when the field arrived as a bare scalar
func (v FieldValue) Display() string {
	if v.hasDisplay {
		return v.display
	}
	return v.raw
}

// IsEmpty reports whether the field carries no value in either form
func (v FieldValue) IsEmpty() bool {
	return v.raw == "" && v.display == ""
}

// UnmarshalJSON accepts a bare string, number, boolean, null, or a
// {display_value, value} object
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*v = FieldValue{}
		return nil
	}

	if strings.HasPrefix(trimmed, "{") {
		var pair struct {
			DisplayValue json.RawMessage `json:"display_value"`
			Value        json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(data, &pair); err != nil {
			return err
		}
		*v = NewDisplay(scalarString(pair.DisplayValue), scalarString(pair.Value))
		return nil
	}

	*v = NewScalar(scalarString(json.RawMessage(data)))
	return nil
}

// MarshalJSON emits the pair form when a display value is present
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.hasDisplay {
		return json.Marshal(map[string]string{
			"display_value": v.display,
			"value":         v.raw,
		})
	}
	return json.Marshal(v.raw)
}

// scalarString renders a raw JSON scalar as its string form, without
// surrounding quotes for strings
func scalarString(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	var anyVal any
	if err := json.Unmarshal(data, &anyVal); err == nil {
		if anyVal == nil {
			return ""
		}
		return fmt.Sprintf("%v", anyVal)
	}
	return string(data)
}
