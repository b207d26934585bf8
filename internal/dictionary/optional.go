package dictionary

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// OptionalValueKind enumerates the displayable kinds an optional field
// may hold.
type OptionalValueKind int

const (
	OptionalString OptionalValueKind = iota
	OptionalNumber
	OptionalBool
)

// OptionalValue is one value of the open "optional" mapping on an entry.
// The pipeline only ever emits strings, numbers, and booleans there.
type OptionalValue struct {
	Kind   OptionalValueKind
	Str    string
	Number float64
	Bool   bool
}

// String renders the value for display.
func (v OptionalValue) String() string {
	switch v.Kind {
	case OptionalNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case OptionalBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// UnmarshalJSON accepts a JSON string, number, or boolean.
func (v *OptionalValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	switch value := raw.(type) {
	case string:
		*v = OptionalValue{Kind: OptionalString, Str: value}
	case float64:
		*v = OptionalValue{Kind: OptionalNumber, Number: value}
	case bool:
		*v = OptionalValue{Kind: OptionalBool, Bool: value}
	default:
		return fmt.Errorf("optional field must be a string, number or boolean, got %T", raw)
	}
	return nil
}

// MarshalJSON writes the value back in its original JSON kind.
func (v OptionalValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case OptionalNumber:
		return json.Marshal(v.Number)
	case OptionalBool:
		return json.Marshal(v.Bool)
	default:
		return json.Marshal(v.Str)
	}
}
