// Package frontmatter decodes and re-emits the leading metadata block of a
// note document.
//
// The block is read one line at a time: every line between the two marker
// lines is decoded as its own YAML document and merged into an ordered
// Fields mapping, later keys overwriting earlier ones.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Marker opens and closes a header block.
const Marker = "---"

// ErrMalformedMetadataLine indicates a header line that does not decode to a
// key/value mapping.
var ErrMalformedMetadataLine = errors.New("malformed metadata line")

// IsMarker reports whether line opens or closes a header block.
func IsMarker(line string) bool {
	return strings.HasPrefix(line, Marker)
}

// HasRequired reports whether fields carries a publication status.
func HasRequired(fields *Fields) bool {
	return fields.Has(KeyPublished) || fields.Has(KeyDraft)
}

// DecodeLine decodes a single header line and upserts its pairs into fields.
//
// Blank lines, comments and explicit nulls decode to nothing and are ignored.
func DecodeLine(line string, fields *Fields) error {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(line), &doc); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrMalformedMetadataLine, strings.TrimRight(line, "\r\n"), err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	switch {
	case root.Kind == yaml.MappingNode:
	case root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null":
		return nil
	default:
		return fmt.Errorf("%w: %q: expected key: value", ErrMalformedMetadataLine, strings.TrimRight(line, "\r\n"))
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		v, err := valueFromNode(valNode)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrMalformedMetadataLine, strings.TrimRight(line, "\r\n"), err)
		}
		fields.Set(keyNode.Value, v)
	}
	return nil
}

func valueFromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return valueFromNode(n.Alias)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := valueFromNode(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return ListValue(items...), nil
	case yaml.MappingNode:
		m := NewFields()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := valueFromNode(n.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			m.Set(n.Content[i].Value, v)
		}
		return MapValue(m), nil
	case yaml.ScalarNode:
		return scalarFromNode(n)
	default:
		return Value{}, fmt.Errorf("unsupported yaml node kind %d", n.Kind)
	}
}

func scalarFromNode(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return NullValue(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return BoolValue(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// Out of int64 range: keep the literal text.
			return StringValue(n.Value), nil
		}
		return IntValue(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return FloatValue(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return StringValue(n.Value), nil
		}
		return TimeValue(t), nil
	default:
		return StringValue(n.Value), nil
	}
}
