package schema

import (
	"fmt"
	"strconv"
)

// Value is a tagged scalar conforming to one field kind. Only the member
// matching Kind is meaningful; Null marks an absent optional value.
// Values are comparable with ==.
type Value struct {
	Kind Kind
	Null bool
	Text string
	Int  int64
	Real float64
	Bool bool
}

// Values maps field names to their typed values for one item.
type Values map[string]Value

func TextValue(s string) Value  { return Value{Kind: Text, Text: s} }
func IntValue(i int64) Value    { return Value{Kind: Integer, Int: i} }
func RealValue(f float64) Value { return Value{Kind: Real, Real: f} }
func BoolValue(b bool) Value    { return Value{Kind: Boolean, Bool: b} }

// NullValue returns the null value of the given kind.
func NullValue(k Kind) Value { return Value{Kind: k, Null: true} }

// Coerce converts a raw textual input into a typed value of the given kind.
// An empty string coerces to the null value.
func Coerce(raw string, kind Kind) (Value, error) {
	if raw == "" {
		return NullValue(kind), nil
	}

	switch kind {
	case Text:
		return TextValue(raw), nil
	case Integer:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid integer %q", raw)
		}
		return IntValue(i), nil
	case Real:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid real %q", raw)
		}
		return RealValue(f), nil
	case Boolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, fmt.Errorf("invalid boolean %q", raw)
		}
		return BoolValue(b), nil
	default:
		return Value{}, fmt.Errorf("unknown field kind %v", kind)
	}
}

// Format returns the canonical textual form of the value, suitable for
// export. Null values format as the empty string.
func (v Value) Format() string {
	if v.Null {
		return ""
	}
	switch v.Kind {
	case Text:
		return v.Text
	case Integer:
		return strconv.FormatInt(v.Int, 10)
	case Real:
		return strconv.FormatFloat(v.Real, 'g', -1, 64)
	case Boolean:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}
