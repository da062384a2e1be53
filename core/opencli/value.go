package opencli

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind identifies the concrete type held by a Value.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is an open-ended metadata value: null, boolean, number, string,
// sequence, or string-keyed mapping. Numbers are normalized to float64 on
// decode so that YAML and JSON decodes of the same document compare equal.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	seq  []Value
	obj  map[string]Value
}

// NullValue returns the null value.
func NullValue() Value {
	return Value{kind: KindNull}
}

// BoolValue returns a boolean value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// NumberValue returns a numeric value.
func NumberValue(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// StringValue returns a string value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// SequenceValue returns a sequence value.
func SequenceValue(vs ...Value) Value {
	return Value{kind: KindSequence, seq: vs}
}

// MappingValue returns a string-keyed mapping value.
func MappingValue(m map[string]Value) Value {
	return Value{kind: KindMapping, obj: m}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean payload, if the value is a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsNumber returns the numeric payload, if the value is a number.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsString returns the string payload, if the value is a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsSequence returns the sequence payload, if the value is a sequence.
func (v Value) AsSequence() ([]Value, bool) {
	return v.seq, v.kind == KindSequence
}

// AsMapping returns the mapping payload, if the value is a mapping.
func (v Value) AsMapping() (map[string]Value, bool) {
	return v.obj, v.kind == KindMapping
}

// Equal reports whether two values are structurally equal.
func (v Value) Equal(other Value) bool {
	return reflect.DeepEqual(v, other)
}

// fromGoValue converts a decoded format-native value into a Value.
// Mapping keys must be strings; any other key type is rejected.
func fromGoValue(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(x), nil
	case string:
		return StringValue(x), nil
	case int:
		return NumberValue(float64(x)), nil
	case int64:
		return NumberValue(float64(x)), nil
	case uint64:
		return NumberValue(float64(x)), nil
	case float64:
		return NumberValue(x), nil
	case time.Time:
		// YAML resolves timestamp-shaped scalars; carry them as strings.
		return StringValue(x.Format(time.RFC3339)), nil
	case []interface{}:
		seq := make([]Value, len(x))
		for i, item := range x {
			v, err := fromGoValue(item)
			if err != nil {
				return Value{}, err
			}
			seq[i] = v
		}
		return Value{kind: KindSequence, seq: seq}, nil
	case map[string]interface{}:
		obj := make(map[string]Value, len(x))
		for k, item := range x {
			v, err := fromGoValue(item)
			if err != nil {
				return Value{}, err
			}
			obj[k] = v
		}
		return Value{kind: KindMapping, obj: obj}, nil
	case map[interface{}]interface{}:
		return Value{}, fmt.Errorf("metadata value: mapping keys must be strings")
	default:
		return Value{}, fmt.Errorf("metadata value: unsupported type %T", raw)
	}
}

// toGoValue converts the Value back into a format-native representation
// suitable for either encoder.
func (v Value) toGoValue() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindSequence:
		seq := make([]interface{}, len(v.seq))
		for i, item := range v.seq {
			seq[i] = item.toGoValue()
		}
		return seq
	case KindMapping:
		obj := make(map[string]interface{}, len(v.obj))
		for k, item := range v.obj {
			obj[k] = item.toGoValue()
		}
		return obj
	default:
		return nil
	}
}

// MarshalJSON encodes the value in its JSON-native form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.toGoValue())
}

// UnmarshalJSON decodes any JSON value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := fromGoValue(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes the value in its YAML-native form.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.toGoValue(), nil
}

// UnmarshalYAML decodes any YAML value.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw interface{}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := fromGoValue(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
