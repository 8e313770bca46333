package catalog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateTimeLayout is the format used when serializing typed timestamps.
const DateTimeLayout = "2006-01-02 15:04:05"

// acceptedTimeLayouts are tried in order when parsing typed timestamps.
var acceptedTimeLayouts = []string{
	time.RFC3339Nano,
	DateTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// fieldReader pulls typed fields out of a JSON object. The first failure
// sticks: once err is set, every accessor returns a zero value, so decoders
// read all fields and check the error once.
type fieldReader struct {
	path   string
	fields map[string]Value
	err    *Error
}

// newFieldReader starts reading v, which must be an object.
func newFieldReader(v Value, path string) *fieldReader {
	r := &fieldReader{path: path}

	fields, ok := v.AsObject()
	if !ok {
		r.err = newMalformedError(path, "expected object, got "+v.Kind().String())
		return r
	}

	r.fields = fields

	return r
}

// Err returns the first failure, or nil. The return type is error so that
// a nil *Error never leaks as a non-nil interface.
func (r *fieldReader) Err() error {
	if r.err == nil {
		return nil
	}

	return r.err
}

func (r *fieldReader) fieldPath(key string) string {
	return r.path + "." + key
}

func (r *fieldReader) fail(key, format string, args ...any) {
	if r.err == nil {
		r.err = newMalformedError(r.fieldPath(key), fmt.Sprintf(format, args...))
	}
}

// lookup returns the field unless it is absent or null.
func (r *fieldReader) lookup(key string) (Value, bool) {
	if r.err != nil {
		return Value{}, false
	}

	v, ok := r.fields[key]
	if !ok || v.IsNull() {
		return Value{}, false
	}

	return v, true
}

// requiredString reads a string field. Numbers are accepted in their
// textual form, so numeric ids become strings.
func (r *fieldReader) requiredString(key string) string {
	v, ok := r.lookup(key)
	if !ok {
		r.fail(key, "missing required field")
		return ""
	}

	s, ok := scalarText(v)
	if !ok {
		r.fail(key, "expected string, got %s", v.Kind())
		return ""
	}

	return s
}

// optionalString reads a string field; absent or null yields nil.
func (r *fieldReader) optionalString(key string) *string {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}

	s, ok := scalarText(v)
	if !ok {
		r.fail(key, "expected string, got %s", v.Kind())
		return nil
	}

	return &s
}

// optionalFloat reads a number or numeric string; absent or null yields nil.
func (r *fieldReader) optionalFloat(key string) *float64 {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}

	f, err := coerceFloat(v)
	if err != nil {
		r.fail(key, "%v", err)
		return nil
	}

	return &f
}

// requiredInt reads an integer field.
func (r *fieldReader) requiredInt(key string) int64 {
	v, ok := r.lookup(key)
	if !ok {
		r.fail(key, "missing required field")
		return 0
	}

	i, err := coerceInt(v)
	if err != nil {
		r.fail(key, "%v", err)
		return 0
	}

	return i
}

// intOr reads an integer field, falling back to def when absent or null.
func (r *fieldReader) intOr(key string, def int64) int64 {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}

	i, err := coerceInt(v)
	if err != nil {
		r.fail(key, "%v", err)
		return def
	}

	return i
}

// optionalInt reads an integer field; absent or null yields nil.
func (r *fieldReader) optionalInt(key string) *int64 {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}

	i, err := coerceInt(v)
	if err != nil {
		r.fail(key, "%v", err)
		return nil
	}

	return &i
}

// boolOr reads a boolean-ish field, falling back to def when absent or null.
func (r *fieldReader) boolOr(key string, def bool) bool {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}

	b, err := coerceBool(v)
	if err != nil {
		r.fail(key, "%v", err)
		return def
	}

	return b
}

// optionalTime parses a timestamp field; absent or null yields nil.
func (r *fieldReader) optionalTime(key string) *time.Time {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}

	s, ok := v.AsString()
	if !ok {
		r.fail(key, "expected timestamp string, got %s", v.Kind())
		return nil
	}

	t, err := parseTimestamp(s)
	if err != nil {
		r.fail(key, "%v", err)
		return nil
	}

	return &t
}

// array returns the items of an array field. Absent, null, or non-array
// fields yield ok=false so callers can fall back to an empty collection.
func (r *fieldReader) array(key string) ([]Value, bool) {
	v, ok := r.lookup(key)
	if !ok {
		return nil, false
	}

	return v.AsArray()
}

// object returns an object field. Absent, null, or non-object fields
// yield ok=false.
func (r *fieldReader) object(key string) (Value, bool) {
	v, ok := r.lookup(key)
	if !ok || v.Kind() != ObjectKind {
		return Value{}, false
	}

	return v, true
}

// nested records err (from decoding a nested value) as the reader's failure.
func (r *fieldReader) nested(err error) {
	if err == nil || r.err != nil {
		return
	}

	if catalogErr, ok := AsError(err); ok {
		r.err = catalogErr
		return
	}

	r.err = newMalformedError(r.path, err.Error())
}

func scalarText(v Value) (string, bool) {
	switch v.Kind() {
	case StringKind:
		s, _ := v.AsString()
		return s, true
	case NumberKind:
		n, _ := v.AsNumber()
		return n.String(), true
	default:
		return "", false
	}
}

func coerceFloat(v Value) (float64, error) {
	var text string

	switch v.Kind() {
	case NumberKind:
		n, _ := v.AsNumber()
		text = n.String()
	case StringKind:
		s, _ := v.AsString()
		text = strings.TrimSpace(s)
	default:
		return 0, fmt.Errorf("expected number, got %s", v.Kind())
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expected number, got %q", text)
	}

	return f, nil
}

// coerceInt accepts integral numbers and numeric strings. Fractional values
// are truncated toward zero.
func coerceInt(v Value) (int64, error) {
	var text string

	switch v.Kind() {
	case NumberKind:
		n, _ := v.AsNumber()
		text = n.String()
	case StringKind:
		s, _ := v.AsString()
		text = strings.TrimSpace(s)
	default:
		return 0, fmt.Errorf("expected integer, got %s", v.Kind())
	}

	i, err := strconv.ParseInt(text, 10, 64)
	switch {
	case err == nil:
		return i, nil
	case errors.Is(err, strconv.ErrRange):
		return 0, fmt.Errorf("integer %q out of range", text)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expected integer, got %q", text)
	}

	// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("integer %q out of range", text)
	}

	return int64(f), nil
}

func coerceBool(v Value) (bool, error) {
	switch v.Kind() {
	case BoolKind:
		b, _ := v.AsBool()
		return b, nil
	case NumberKind:
		n, _ := v.AsNumber()
		f, err := n.Float64()
		if err != nil {
			return false, fmt.Errorf("expected boolean, got %q", n.String())
		}
		return f != 0, nil
	case StringKind:
		s, _ := v.AsString()
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "1", "true", "yes", "on":
			return true, nil
		case "0", "false", "no", "off", "":
			return false, nil
		}
		return false, fmt.Errorf("expected boolean, got %q", s)
	default:
		return false, fmt.Errorf("expected boolean, got %s", v.Kind())
	}
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range acceptedTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// formatTimestamp renders t in UTC using DateTimeLayout.
func formatTimestamp(t *time.Time) Value {
	if t == nil {
		return NullValue()
	}

	return StringValue(t.UTC().Format(DateTimeLayout))
}

func optionalStringValue(s *string) Value {
	if s == nil {
		return NullValue()
	}

	return StringValue(*s)
}

func optionalFloatValue(f *float64) Value {
	if f == nil {
		return NullValue()
	}

	return FloatValue(*f)
}

func optionalIntValue(i *int64) Value {
	if i == nil {
		return NullValue()
	}

	return IntValue(*i)
}

// decodeList maps every item of an array through decode. The first failing
// item aborts the whole list.
func decodeList[T any](v Value, path string, decode func(Value, string) (T, error)) ([]T, error) {
	items, ok := v.AsArray()
	if !ok {
		return nil, newMalformedError(path, "expected array, got "+v.Kind().String())
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		decoded, err := decode(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}

	return out, nil
}

// encodeList serializes items with encode, never yielding null.
func encodeList[T any](items []T, encode func(T) Value) Value {
	out := make([]Value, 0, len(items))
	for _, item := range items {
		out = append(out, encode(item))
	}

	return ArrayValue(out...)
}

// Ptr returns a pointer to v. It is a convenience for filling optional
// fields of inputs and value objects.
func Ptr[T any](v T) *T {
	return &v
}
