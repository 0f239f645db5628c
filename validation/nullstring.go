package validation

import (
	"encoding/json"
	"strings"
)

// NullString is an optional text field that remembers whether the payload
// mentioned it at all. Empty strings, null and absence all normalize to a nil
// Value; Set tells a partial update whether to write the column.
type NullString struct {
	Set   bool
	Value *string
}

// NewNullString returns a set NullString holding s.
func NewNullString(s string) NullString {
	return NullString{Set: true, Value: &s}
}

func (n *NullString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func (n NullString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Normalize trims the value and turns blank input into nil.
func (n *NullString) Normalize() {
	n.Value = OptionalString(n.Value)
}

// Ptr returns the normalized value.
func (n NullString) Ptr() *string {
	return OptionalString(n.Value)
}

// OptionalString maps nil, "" and whitespace-only strings to nil and trims the rest.
func OptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
