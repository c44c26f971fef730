package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidSchema is returned when a schema definition is malformed.
var ErrInvalidSchema = errors.New("invalid schema")

// MismatchError reports which fields of an item violate the bound schema.
type MismatchError struct {
	Missing  []string // required fields absent or null
	Unknown  []string // fields not declared by the schema
	Mistyped []string // fields whose value has the wrong kind
}

func (m *MismatchError) empty() bool {
	return len(m.Missing) == 0 && len(m.Unknown) == 0 && len(m.Mistyped) == 0
}

func (m *MismatchError) sort() {
	sort.Strings(m.Missing)
	sort.Strings(m.Unknown)
	sort.Strings(m.Mistyped)
}

func (m *MismatchError) Error() string {
	var parts []string
	if len(m.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required field(s) %s", strings.Join(m.Missing, ", ")))
	}
	if len(m.Unknown) > 0 {
		parts = append(parts, fmt.Sprintf("unknown field(s) %s", strings.Join(m.Unknown, ", ")))
	}
	if len(m.Mistyped) > 0 {
		parts = append(parts, fmt.Sprintf("wrong type for field(s) %s", strings.Join(m.Mistyped, ", ")))
	}
	return "schema mismatch: " + strings.Join(parts, "; ")
}
