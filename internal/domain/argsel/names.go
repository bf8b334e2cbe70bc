package argsel

import (
	"strings"
	"unicode"
)

// accessorPrefixes are stripped from call names before they are used as
// argument names: getWidth() is a width, isEmpty() is an empty.
var accessorPrefixes = []string{"get", "set", "is"}

// SplitTerms splits an identifier into lowercase terms.
// Examples:
//
//	"getUserToken"  -> ["get", "user", "token"]
//	"APIKey"        -> ["api", "key"]
//	"max_len"       -> ["max", "len"]
//	"md5Hash"       -> ["md5", "hash"]
func SplitTerms(name string) []string {
	var terms []string
	for _, part := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		for _, tok := range splitCamelCase(part) {
			terms = append(terms, strings.ToLower(tok))
		}
	}
	return terms
}

// LowerUnderscore converts camelCase, PascalCase and snake_case names to a
// single lower_underscore form so that naming style does not count as an edit.
func LowerUnderscore(name string) string {
	return strings.Join(SplitTerms(name), "_")
}

// StripAccessorPrefix removes a leading get/set/is term from a call name.
// "getValue" -> "Value", "get" -> "", "settle" -> "settle", "IS_OPEN" -> "OPEN".
func StripAccessorPrefix(name string) string {
	for _, prefix := range accessorPrefixes {
		if len(name) < len(prefix) || !strings.EqualFold(name[:len(prefix)], prefix) {
			continue
		}
		rest := name[len(prefix):]
		if rest == "" {
			return ""
		}
		head := name[:len(prefix)]
		next := rune(rest[0])
		switch {
		case next == '_':
			return strings.TrimLeft(rest, "_")
		case head == strings.ToUpper(head):
			// All-caps prefix only counts with an explicit separator: ISSUE is not IS+SUE.
		case unicode.IsUpper(next) || unicode.IsDigit(next):
			return rest
		}
	}
	return name
}

// splitCamelCase splits a string on CamelCase boundaries. Digits stay
// attached to the letters before them.
//
//	"getUserToken" -> ["get", "User", "Token"]
//	"APIKey"       -> ["API", "Key"]
//	"LOGIN"        -> ["LOGIN"]
func splitCamelCase(s string) []string {
	if len(s) == 0 {
		return nil
	}

	runes := []rune(s)
	var parts []string
	start := 0

	for i := 1; i < len(runes); i++ {
		prev := runes[i-1]
		cur := runes[i]

		split := false
		switch {
		// lowercase or digit -> uppercase: "getUser", "md5Hash"
		case (unicode.IsLower(prev) || unicode.IsDigit(prev)) && unicode.IsUpper(cur):
			split = true
		// uppercase run followed by a word: "APIKey" splits before 'K'
		case unicode.IsUpper(prev) && unicode.IsUpper(cur):
			if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				split = true
			}
		}

		if split {
			parts = append(parts, string(runes[start:i]))
			start = i
		}
	}

	parts = append(parts, string(runes[start:]))
	return parts
}

// simpleName drops package qualifiers and type arguments from a type name:
// "java.util.List<String>" -> "List", "pkg.Widget[int]" -> "Widget".
func simpleName(name string) string {
	if i := strings.IndexAny(name, "<["); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimLeft(name, "*&")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSpace(name)
}
