package frontmatter

import "iter"

// Field is a single key/value pair of a header mapping.
type Field struct {
	Key   string
	Value Value
}

// Fields is an insertion-ordered key/value mapping decoded from a document
// header. Keys are case-sensitive and unique; Set on an existing key
// replaces the value in place.
type Fields struct {
	keys   []string
	values map[string]Value
}

// NewFields returns an empty mapping, optionally seeded with pairs in order.
func NewFields(pairs ...Field) *Fields {
	f := &Fields{values: make(map[string]Value, len(pairs))}
	for _, p := range pairs {
		f.Set(p.Key, p.Value)
	}
	return f
}

// Set upserts key. A new key is appended; an existing key keeps its position.
func (f *Fields) Set(key string, v Value) {
	if f.values == nil {
		f.values = make(map[string]Value)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = v
}

// Get returns the value stored for key.
func (f *Fields) Get(key string) (Value, bool) {
	if f == nil {
		return Value{}, false
	}
	v, ok := f.values[key]
	return v, ok
}

// Has reports whether key is present.
func (f *Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Delete removes key, preserving the order of the remaining keys.
func (f *Fields) Delete(key string) {
	if _, ok := f.values[key]; !ok {
		return
	}
	delete(f.values, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// All iterates over the pairs in insertion order.
func (f *Fields) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if f == nil {
			return
		}
		for _, k := range f.keys {
			if !yield(k, f.values[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy; values are immutable so sharing them is safe.
func (f *Fields) Clone() *Fields {
	out := &Fields{values: make(map[string]Value, f.Len())}
	for k, v := range f.All() {
		out.Set(k, v)
	}
	return out
}
