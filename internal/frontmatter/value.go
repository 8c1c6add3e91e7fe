package frontmatter

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindBool
	KindInt
	KindFloat
	KindTime
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTime:
		return "time"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a decoded header value. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	b    bool
	i    int64
	f    float64
	t    time.Time
	list []Value
	m    *Fields
}

func NullValue() Value               { return Value{} }
func StringValue(s string) Value     { return Value{kind: KindString, str: s} }
func BoolValue(b bool) Value         { return Value{kind: KindBool, b: b} }
func IntValue(i int64) Value         { return Value{kind: KindInt, i: i} }
func FloatValue(f float64) Value     { return Value{kind: KindFloat, f: f} }
func TimeValue(t time.Time) Value    { return Value{kind: KindTime, t: t} }
func ListValue(items ...Value) Value { return Value{kind: KindList, list: items} }
func MapValue(m *Fields) Value       { return Value{kind: KindMap, m: m} }

// StringListValue builds a list of string values.
func StringListValue(items []string) Value {
	list := make([]Value, 0, len(items))
	for _, s := range items {
		list = append(list, StringValue(s))
	}
	return ListValue(list...)
}

// Kind returns the variant.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string payload when v is a string.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsBool returns the bool payload when v is a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsList returns the items when v is a list.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

// AsTime returns the time payload when v is a timestamp.
func (v Value) AsTime() (time.Time, bool) { return v.t, v.kind == KindTime }

// Truthy reports the value's truthiness: false for null, false, zero numbers,
// the zero time and empty strings, lists and maps.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindTime:
		return !v.t.IsZero()
	case KindList:
		return len(v.list) > 0
	case KindMap:
		return v.m.Len() > 0
	default:
		return false
	}
}

// String renders the value the way it is written after "key: " in an
// emitted header.
func (v Value) String() string {
	var sb strings.Builder
	v.render(&sb, false)
	return sb.String()
}

func (v Value) render(sb *strings.Builder, nested bool) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindString:
		if nested {
			sb.WriteString(strconv.Quote(v.str))
		} else {
			sb.WriteString(v.str)
		}
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		sb.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindTime:
		sb.WriteString(formatTime(v.t))
	case KindList:
		sb.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.render(sb, true)
		}
		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('{')
		i := 0
		for k, item := range v.m.All() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			item.render(sb, true)
			i++
		}
		sb.WriteByte('}')
	}
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}
