// Package entity contains the core business objects of the storefront client,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ID is an opaque backend identifier. The storefront API emits ids either as
// JSON strings or as numbers depending on the resource, so ID accepts both and
// always serializes as a string.
type ID string

// String returns the identifier text.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// UnmarshalJSON accepts "abc", 42 and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""

		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())

	return nil
}
