// Package obsidian rewrites the inline note syntax of a vault (hashtags and
// wikilinks) into portable Markdown.
package obsidian

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tagPattern matches a tag token. The "not preceded by a word character"
// rule is applied by precededByWord since RE2 has no lookbehind. A token
// never contains '#', so every '#' that can open a tag starts a match.
var tagPattern = regexp.MustCompile(`#[A-Za-z0-9_/-]+`)

// ExtractTags returns the tags found in line, in order and without the
// leading '#', and the line with every tag and the whitespace following it
// removed, trimmed.
func ExtractTags(line string) ([]string, string) {
	locs := tagPattern.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return nil, strings.TrimSpace(line)
	}

	var tags []string
	var sb strings.Builder
	last := 0
	for _, loc := range locs {
		if precededByWord(line, loc[0]) {
			continue
		}
		tags = append(tags, line[loc[0]+1:loc[1]])
		sb.WriteString(line[last:loc[0]])
		last = skipSpace(line, loc[1])
	}
	sb.WriteString(line[last:])
	return tags, strings.TrimSpace(sb.String())
}

func precededByWord(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}
