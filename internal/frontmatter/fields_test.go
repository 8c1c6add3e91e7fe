package frontmatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_SetKeepsInsertionOrder(t *testing.T) {
	f := NewFields()
	f.Set("title", StringValue("a"))
	f.Set("published", BoolValue(true))
	f.Set("author", StringValue("me"))
	f.Set("title", StringValue("b"))

	assert.Equal(t, []string{"title", "published", "author"}, f.Keys())
	v, ok := f.Get("title")
	require.True(t, ok)
	assert.Equal(t, "b", v.String())
}

func TestFields_DeletePreservesRemainingOrder(t *testing.T) {
	f := NewFields(
		Field{Key: "a", Value: IntValue(1)},
		Field{Key: "b", Value: IntValue(2)},
		Field{Key: "c", Value: IntValue(3)},
	)
	f.Delete("b")
	f.Delete("missing")

	assert.Equal(t, []string{"a", "c"}, f.Keys())
	assert.False(t, f.Has("b"))
	assert.Equal(t, 2, f.Len())

	f.Set("b", IntValue(4))
	assert.Equal(t, []string{"a", "c", "b"}, f.Keys())
}

func TestFields_KeysAreCaseSensitive(t *testing.T) {
	f := NewFields()
	f.Set("Draft", BoolValue(true))
	assert.False(t, f.Has("draft"))
	assert.False(t, HasRequired(f))
}

func TestFields_CloneIsIndependent(t *testing.T) {
	f := NewFields(Field{Key: "a", Value: IntValue(1)})
	c := f.Clone()
	c.Set("b", IntValue(2))

	assert.Equal(t, []string{"a"}, f.Keys())
	assert.Equal(t, []string{"a", "b"}, c.Keys())
}

func TestValue_String(t *testing.T) {
	nested := NewFields(Field{Key: "x", Value: IntValue(1)}, Field{Key: "y", Value: StringValue("z")})
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", NullValue(), "null"},
		{"string", StringValue("Hello World"), "Hello World"},
		{"bool", BoolValue(false), "false"},
		{"int", IntValue(42), "42"},
		{"float", FloatValue(1.5), "1.5"},
		{"date", TimeValue(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)), "2024-03-09"},
		{"timestamp", TimeValue(time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC)), "2024-03-09T10:30:00Z"},
		{"string list", StringListValue([]string{"Hugo", "教程"}), `["Hugo", "教程"]`},
		{"mixed list", ListValue(IntValue(1), BoolValue(true), StringValue("a")), `[1, true, "a"]`},
		{"empty list", ListValue(), "[]"},
		{"map", MapValue(nested), `{x: 1, y: "z"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValue_Truthy(t *testing.T) {
	assert.False(t, NullValue().Truthy())
	assert.False(t, BoolValue(false).Truthy())
	assert.True(t, BoolValue(true).Truthy())
	assert.False(t, StringValue("").Truthy())
	// A non-empty string is truthy even when it spells "false".
	assert.True(t, StringValue("false").Truthy())
	assert.False(t, IntValue(0).Truthy())
	assert.True(t, FloatValue(0.1).Truthy())
	assert.False(t, ListValue().Truthy())
	assert.True(t, StringListValue([]string{"a"}).Truthy())
	assert.False(t, MapValue(NewFields()).Truthy())
}
