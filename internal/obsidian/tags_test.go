package obsidian

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		tags    []string
		cleaned string
	}{
		{"mixed", "hello #foo-bar world #a/b", []string{"foo-bar", "a/b"}, "hello world"},
		{"no tags", "  plain text  ", nil, "plain text"},
		{"heading is not a tag", "# Title", nil, "# Title"},
		{"preceded by word char", "issue#12 and a#b", nil, "issue#12 and a#b"},
		{"line start", "#todo buy milk", []string{"todo"}, "buy milk"},
		{"adjacent after slash", "#a/#b", []string{"a/", "b"}, ""},
		{"double hash", "##x", []string{"x"}, "#"},
		{"punctuation before", "(#x) end", []string{"x"}, "() end"},
		{"unicode word char blocks", "é#x", nil, "é#x"},
		{"digits only", "#2024 review", []string{"2024"}, "review"},
		{"trailing whitespace consumed", "a #x   b", []string{"x"}, "a b"},
		{"duplicates kept", "#x #x", []string{"x", "x"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags, cleaned := ExtractTags(tt.line)
			assert.Equal(t, tt.tags, tags)
			assert.Equal(t, tt.cleaned, cleaned)
		})
	}
}

func TestExtractTags_Idempotent(t *testing.T) {
	lines := []string{
		"hello #foo-bar world #a/b",
		"#a/#b c",
		"see [[note#Header]] #tag",
	}
	for _, line := range lines {
		_, once := ExtractTags(line)
		tags, twice := ExtractTags(once)
		assert.Empty(t, tags, line)
		assert.Equal(t, once, twice, line)
	}
}
