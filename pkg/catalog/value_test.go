package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue_Kinds(t *testing.T) {
	v, err := ParseValue([]byte(`{"n":null,"b":true,"num":12345678901234567890,"s":"x","a":[1,"two"],"o":{}}`))
	require.NoError(t, err)
	require.Equal(t, ObjectKind, v.Kind())

	tests := []struct {
		key  string
		want ValueKind
	}{
		{"n", NullKind},
		{"b", BoolKind},
		{"num", NumberKind},
		{"s", StringKind},
		{"a", ArrayKind},
		{"o", ObjectKind},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			field, ok := v.Field(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, field.Kind())
		})
	}

	num, _ := v.Field("num")
	n, ok := num.AsNumber()
	require.True(t, ok)
	assert.Equal(t, json.Number("12345678901234567890"), n, "large integers keep their textual form")
}

func TestParseValue_RejectsTrailingData(t *testing.T) {
	_, err := ParseValue([]byte(`{"a":1} {"b":2}`))
	assert.Error(t, err)
}

func TestParseValue_RejectsInvalidJSON(t *testing.T) {
	_, err := ParseValue([]byte(`{"a":`))
	assert.Error(t, err)

	_, err = ParseValue(nil)
	assert.Error(t, err)
}

func TestValue_ZeroIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestValue_MarshalJSON_SortsKeys(t *testing.T) {
	v := ObjectValue(map[string]Value{
		"b": IntValue(1),
		"a": ArrayValue(),
		"c": ObjectValue(nil),
	})

	data, err := v.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"a":[],"b":1,"c":{}}`, string(data))
}

func TestValue_MarshalJSON_RejectsInvalidNumber(t *testing.T) {
	_, err := NumberValue(json.Number("not-a-number")).MarshalJSON()
	assert.Error(t, err)

	_, err = NumberValue(json.Number(`"1"`)).MarshalJSON()
	assert.Error(t, err)
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"integer and float forms", MustFromAny(json.Number("1")), MustFromAny(json.Number("1.0")), true},
		{"different numbers", IntValue(1), IntValue(2), false},
		{"number and string", IntValue(1), StringValue("1"), false},
		{"nested objects", MustFromAny(map[string]any{"a": []any{1, "x"}}), MustFromAny(map[string]any{"a": []any{1, "x"}}), true},
		{"object missing key", MustFromAny(map[string]any{"a": 1}), MustFromAny(map[string]any{"b": 1}), false},
		{"nulls", NullValue(), Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestFromAny(t *testing.T) {
	v, err := FromAny(map[string]any{
		"color": "red",
		"size":  42,
		"tags":  []string{"a", "b"},
		"ratio": 0.5,
		"ok":    true,
		"none":  nil,
	})
	require.NoError(t, err)

	data, err := v.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"color":"red","size":42,"tags":["a","b"],"ratio":0.5,"ok":true,"none":null}`, string(data))

	_, err = FromAny(struct{}{})
	assert.Error(t, err)
}

func TestValue_Any(t *testing.T) {
	v := MustFromAny(map[string]any{"a": []any{true, "x"}})

	assert.Equal(t, map[string]any{"a": []any{true, "x"}}, v.Any())
}

func TestValue_UnmarshalJSON(t *testing.T) {
	var holder struct {
		Payload Value `json:"payload"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"payload":[1,2,3]}`), &holder))
	assert.Equal(t, ArrayKind, holder.Payload.Kind())
	assert.Equal(t, 3, holder.Payload.Len())
}
