package normalize

import (
	"strings"
	"unicode"

	"licensee-matcher/core/table"
)

// SplitName splits a licensee into first and last name on the first
// whitespace run. The last name is everything after it, or null for a
// single-token name. Null or blank input yields two nulls.
func SplitName(licensee table.Value) (first, last table.Value) {
	if !licensee.Valid {
		return table.Null(), table.Null()
	}
	s := strings.TrimLeftFunc(licensee.Str, unicode.IsSpace)
	if s == "" {
		return table.Null(), table.Null()
	}

	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return table.Str(s), table.Null()
	}
	rest := strings.TrimLeftFunc(s[i:], unicode.IsSpace)
	if rest == "" {
		return table.Str(s[:i]), table.Null()
	}
	return table.Str(s[:i]), table.Str(rest)
}
