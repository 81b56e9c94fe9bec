package gen

import (
	"strings"
	"unicode"
)

// LowerCamel normalizes a raw identifier (table or column name) into
// lowerCamelCase: words joined at their boundaries, first letter lowercase.
// The transform is idempotent — LowerCamel(LowerCamel(s)) == LowerCamel(s).
func LowerCamel(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// UpperCamel is the same normalization as LowerCamel with the first letter
// uppercased. Used for generated type names.
func UpperCamel(s string) string {
	words := splitWords(s)

	var b strings.Builder
	for _, w := range words {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// splitWords breaks an identifier into words at delimiters (_ - . space)
// and at case boundaries: a lower-to-upper transition starts a new word,
// and in an all-caps run the last capital before a lowercase letter does
// too ("XMLData" → "XML", "Data"). Each word comes back lowercased so the
// caller controls casing uniformly.
func splitWords(s string) []string {
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			prevUpper := i > 0 && unicode.IsUpper(runes[i-1])
			if prevLower || (prevUpper && nextLower) {
				flush()
			}
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()

	return words
}

// capitalize uppercases the first letter of an already-lowercased word.
func capitalize(w string) string {
	if w == "" {
		return ""
	}
	r := []rune(w)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
