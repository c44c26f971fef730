package schema

import (
	"fmt"
	"strings"
)

// Kind represents the declared type of a schema field.
type Kind int

const (
	Text Kind = iota
	Integer
	Real
	Boolean
)

// String returns the textual form of the kind as persisted in the schema table.
func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Boolean:
		return "boolean"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses the persisted textual form back into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "text":
		return Text, nil
	case "integer":
		return Integer, nil
	case "real":
		return Real, nil
	case "boolean":
		return Boolean, nil
	default:
		return 0, fmt.Errorf("unknown field kind %q", s)
	}
}

// Field describes a single column declared by the user.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
}

// Schema is the ordered set of fields bound to one database. The order is
// fixed at creation time and defines the canonical column order for
// import and export.
type Schema struct {
	Fields []Field
}

// Names of columns every item table carries regardless of the declared
// fields. User fields must not collide with them.
var reservedNames = map[string]bool{
	"id":      true,
	"done":    true,
	"done_at": true,
}

// New builds a Schema from the given fields, or returns ErrInvalidSchema
// if the definition is malformed.
func New(fields []Field) (Schema, error) {
	if len(fields) == 0 {
		return Schema{}, fmt.Errorf("%w: no fields declared", ErrInvalidSchema)
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return Schema{}, fmt.Errorf("%w: empty field name", ErrInvalidSchema)
		}
		// Field names end up quoted inside generated DDL.
		if strings.ContainsAny(f.Name, `"`) {
			return Schema{}, fmt.Errorf("%w: field name %q contains a quote", ErrInvalidSchema, f.Name)
		}
		if reservedNames[f.Name] {
			return Schema{}, fmt.Errorf("%w: field name %q is reserved", ErrInvalidSchema, f.Name)
		}
		if seen[f.Name] {
			return Schema{}, fmt.Errorf("%w: duplicate field name %q", ErrInvalidSchema, f.Name)
		}
		seen[f.Name] = true
		switch f.Kind {
		case Text, Integer, Real, Boolean:
		default:
			return Schema{}, fmt.Errorf("%w: unknown kind for field %q", ErrInvalidSchema, f.Name)
		}
	}

	return Schema{Fields: fields}, nil
}

// Field returns the declared field with the given name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the field names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Validate checks that values covers exactly the declared fields: every
// required field present and non-null, no unknown fields, every value of
// the declared kind. Violations are collected into a single MismatchError.
func (s Schema) Validate(values Values) error {
	var m MismatchError

	for _, f := range s.Fields {
		v, ok := values[f.Name]
		if !ok || (f.Required && v.Null) {
			if f.Required {
				m.Missing = append(m.Missing, f.Name)
			}
			continue
		}
		if v.Kind != f.Kind {
			m.Mistyped = append(m.Mistyped, f.Name)
		}
	}

	for name := range values {
		if _, ok := s.Field(name); !ok {
			m.Unknown = append(m.Unknown, name)
		}
	}

	if m.empty() {
		return nil
	}
	m.sort()
	return &m
}

// Complete fills in null values for declared optional fields absent from
// values, so that stored items always carry the full field set.
func (s Schema) Complete(values Values) Values {
	full := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		if v, ok := values[f.Name]; ok {
			full[f.Name] = v
		} else {
			full[f.Name] = NullValue(f.Kind)
		}
	}
	return full
}
