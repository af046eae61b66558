package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler turns a camelCase or snake_case field name into a label, for
// example "complainantDob" -> "Complainant Dob".
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, titleCase(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
			continue
		case i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]):
			flush()
		case i > 0 && unicode.IsDigit(r) != unicode.IsDigit(runes[i-1]):
			flush()
		}
		current = append(current, r)
	}
	flush()
	return strings.Join(words, " ")
}

func titleCase(word string) string {
	lower := strings.ToLower(word)
	if lower == "" {
		return ""
	}
	r := []rune(lower)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
