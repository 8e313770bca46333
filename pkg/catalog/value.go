package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ValueKind discriminates the variants of Value.
type ValueKind uint8

const (
	// NullKind is the JSON null literal (and the zero Value).
	NullKind ValueKind = iota
	// BoolKind is a JSON boolean.
	BoolKind
	// NumberKind is a JSON number, kept in its textual form.
	NumberKind
	// StringKind is a JSON string.
	StringKind
	// ArrayKind is a JSON array.
	ArrayKind
	// ObjectKind is a JSON object.
	ObjectKind
)

// String returns a human-readable name for the kind.
func (k ValueKind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an untyped JSON value: a tagged union of null, bool, number,
// string, array and object. It is the boundary type between raw response
// bodies and the typed value objects of this package.
//
// The zero Value is null. Values are immutable once built; accessors return
// the underlying slices and maps, which callers must not modify.
type Value struct {
	kind ValueKind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  map[string]Value
}

// NullValue returns the JSON null.
func NullValue() Value {
	return Value{}
}

// BoolValue wraps a boolean.
func BoolValue(b bool) Value {
	return Value{kind: BoolKind, b: b}
}

// NumberValue wraps a JSON number in its textual form.
func NumberValue(n json.Number) Value {
	return Value{kind: NumberKind, num: n}
}

// FloatValue wraps a float using the shortest representation that round-trips.
func FloatValue(f float64) Value {
	return NumberValue(json.Number(strconv.FormatFloat(f, 'f', -1, 64)))
}

// IntValue wraps an integer.
func IntValue(i int64) Value {
	return NumberValue(json.Number(strconv.FormatInt(i, 10)))
}

// StringValue wraps a string.
func StringValue(s string) Value {
	return Value{kind: StringKind, str: s}
}

// ArrayValue builds an array from the given items. It never yields a nil slice.
func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{kind: ArrayKind, arr: items}
}

// ObjectValue builds an object from the given fields. It never yields a nil map.
func ObjectValue(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}

	return Value{kind: ObjectKind, obj: fields}
}

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether v is the JSON null.
func (v Value) IsNull() bool {
	return v.kind == NullKind
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == BoolKind
}

// AsNumber returns the number held by v in its textual form.
func (v Value) AsNumber() (json.Number, bool) {
	return v.num, v.kind == NumberKind
}

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == StringKind
}

// AsArray returns the items held by v.
func (v Value) AsArray() ([]Value, bool) {
	return v.arr, v.kind == ArrayKind
}

// AsObject returns the fields held by v.
func (v Value) AsObject() (map[string]Value, bool) {
	return v.obj, v.kind == ObjectKind
}

// Field looks up key when v is an object.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != ObjectKind {
		return Value{}, false
	}

	field, ok := v.obj[key]

	return field, ok
}

// Len returns the number of items or fields for arrays and objects, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case ArrayKind:
		return len(v.arr)
	case ObjectKind:
		return len(v.obj)
	default:
		return 0
	}
}

// Equal reports whether v and o hold the same JSON value.
// Numbers compare by numeric value, so 1, 1.0 and 1e0 are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == o.b
	case NumberKind:
		return numbersEqual(v.num, o.num)
	case StringKind:
		return v.str == o.str
	case ArrayKind:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for key, field := range v.obj {
			other, ok := o.obj[key]
			if !ok || !field.Equal(other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func numbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}

	fa, errA := a.Float64()
	fb, errB := b.Float64()

	return errA == nil && errB == nil && fa == fb
}

// Any converts v into plain Go values: nil, bool, json.Number, string,
// []any and map[string]any.
func (v Value) Any() any {
	switch v.kind {
	case BoolKind:
		return v.b
	case NumberKind:
		return v.num
	case StringKind:
		return v.str
	case ArrayKind:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Any()
		}
		return out
	case ObjectKind:
		out := make(map[string]any, len(v.obj))
		for key, field := range v.obj {
			out[key] = field.Any()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler. Object keys are emitted in sorted order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case NullKind:
		return []byte("null"), nil
	case BoolKind:
		return json.Marshal(v.b)
	case NumberKind:
		if !isValidNumber(v.num) {
			return nil, fmt.Errorf("invalid JSON number %q", string(v.num))
		}
		return []byte(v.num), nil
	case StringKind:
		return json.Marshal(v.str)
	case ArrayKind:
		if len(v.arr) == 0 {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	case ObjectKind:
		if len(v.obj) == 0 {
			return []byte("{}"), nil
		}
		return json.Marshal(v.obj)
	default:
		return nil, fmt.Errorf("unknown value kind %d", v.kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}

// ParseValue parses a single JSON document. Trailing data is an error.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("parsing JSON: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("parsing JSON: unexpected data after top-level value")
	}

	return FromAny(raw)
}

// FromAny converts plain Go values into a Value. It accepts the shapes
// produced by encoding/json (with or without UseNumber) plus the common
// scalar types, which makes it convenient for building attribute maps.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return t, nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		if !isValidNumber(t) {
			return Value{}, fmt.Errorf("invalid JSON number %q", string(t))
		}
		return NumberValue(t), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Value{}, fmt.Errorf("unsupported float value %v", t)
		}
		return FloatValue(t), nil
	case float32:
		return FromAny(float64(t))
	case int:
		return IntValue(int64(t)), nil
	case int32:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case string:
		return StringValue(t), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			converted, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = converted
		}
		return ArrayValue(items...), nil
	case []string:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = StringValue(item)
		}
		return ArrayValue(items...), nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for key, field := range t {
			converted, err := FromAny(field)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			fields[key] = converted
		}
		return ObjectValue(fields), nil
	default:
		return Value{}, fmt.Errorf("unsupported type %T", x)
	}
}

// MustFromAny is like FromAny but panics on unsupported input.
// Intended for literals in tests and examples.
func MustFromAny(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}

	return v
}

func isValidNumber(n json.Number) bool {
	if n == "" {
		return false
	}

	if c := n[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}

	return json.Valid([]byte(n))
}
