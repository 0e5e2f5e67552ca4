package search

import (
	"strings"
	"unicode"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

const (
	initialismThreshold = 75
	weightedThreshold   = 50
)

// tokenInitialism reduces a name to the first letters of its tokens,
// so "Visual Studio Code" becomes "vsc". Tokens split on spaces,
// punctuation and case boundaries inside camel-cased names.
func tokenInitialism(name string) string {
	var b strings.Builder
	prev := ' '
	start := true
	for _, r := range name {
		switch {
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.' || r == '(' || r == ')':
			start = true
		case start:
			b.WriteRune(unicode.ToLower(r))
			start = false
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			b.WriteRune(unicode.ToLower(r))
		}
		prev = r
	}
	return b.String()
}

// initialismRatio scores the query against the initialism of the name.
func initialismRatio(query, name string) int {
	ini := tokenInitialism(name)
	if ini == "" {
		return 0
	}
	return fuzzy.Ratio(strings.ToLower(query), ini)
}

// fuzzyMatch reports whether name is close enough to the query to
// surface when no substring match exists.
func fuzzyMatch(query, name string) bool {
	if initialismRatio(query, name) >= initialismThreshold {
		return true
	}
	return fuzzy.WRatio(strings.ToLower(query), strings.ToLower(name)) >= weightedThreshold
}
