package frontmatter

import "time"

// Well-known header keys.
const (
	KeyPublished  = "published"
	KeyDraft      = "draft"
	KeyDate       = "date"
	KeyLastmod    = "lastmod"
	KeyCategories = "categories"
	KeyTags       = "tags"
)

// DateLayout is the format of injected date and lastmod values.
const DateLayout = time.DateOnly

// Policy holds the immutable normalization settings applied before a header
// is re-emitted.
type Policy struct {
	// Defaults are appended, in order, for every key the header lacks.
	Defaults []Field

	// DefaultCategory is emitted as a single-element categories list when
	// the header has none.
	DefaultCategory string
}

// DefaultPolicy returns the stock Hugo defaults.
func DefaultPolicy() Policy {
	return Policy{
		Defaults: []Field{
			{Key: "comment", Value: StringValue("false")},
			{Key: "author", Value: StringValue("yjloong")},
			{Key: "omit_header_text", Value: StringValue("true")},
			{Key: "featured_image", Value: StringValue("/images/bg01.JPG")},
			{Key: "toc", Value: StringValue("false")},
			{Key: "reward", Value: StringValue("false")},
		},
		DefaultCategory: "nocategory",
	}
}

// Normalize rewrites fields in place: published becomes draft = !published,
// then every default key missing from fields is appended.
func Normalize(fields *Fields, p Policy) {
	if published, ok := fields.Get(KeyPublished); ok {
		fields.Set(KeyDraft, BoolValue(!published.Truthy()))
		fields.Delete(KeyPublished)
	}
	for _, d := range p.Defaults {
		if !fields.Has(d.Key) {
			fields.Set(d.Key, d.Value)
		}
	}
}
