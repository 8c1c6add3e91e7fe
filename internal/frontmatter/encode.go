package frontmatter

import (
	"bytes"
	"time"
)

// FileTimes are the source timestamps used for injected date fields.
type FileTimes struct {
	Created  time.Time
	Modified time.Time
}

// Encode renders fields as a header block, injecting date, lastmod,
// categories and tags when the mapping does not carry them. fields is not
// modified.
func Encode(fields *Fields, tags []string, times FileTimes, p Policy) []byte {
	work := fields.Clone()
	pending := tags
	if len(tags) > 0 {
		if existing, ok := work.Get(KeyTags); ok {
			work.Set(KeyTags, appendTags(existing, tags))
			pending = nil
		}
	}

	var buf bytes.Buffer
	buf.WriteString(Marker + "\n")
	for k, v := range work.All() {
		writeField(&buf, k, v.String())
	}
	if !work.Has(KeyDate) {
		writeField(&buf, KeyDate, times.Created.Format(DateLayout))
	}
	if !work.Has(KeyLastmod) {
		writeField(&buf, KeyLastmod, times.Modified.Format(DateLayout))
	}
	if !work.Has(KeyCategories) {
		writeField(&buf, KeyCategories, StringListValue([]string{p.DefaultCategory}).String())
	}
	if len(pending) > 0 {
		writeField(&buf, KeyTags, StringListValue(pending).String())
	}
	buf.WriteString(Marker + "\n")
	return buf.Bytes()
}

func writeField(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteByte('\n')
}

// appendTags extends a header tags value with inline tags.
func appendTags(existing Value, tags []string) Value {
	var items []Value
	switch existing.Kind() {
	case KindList:
		list, _ := existing.AsList()
		items = append(items, list...)
	case KindNull:
	default:
		items = append(items, existing)
	}
	for _, t := range tags {
		items = append(items, StringValue(t))
	}
	return ListValue(items...)
}
