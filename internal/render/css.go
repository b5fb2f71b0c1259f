package render

import (
	"strings"
	"unicode"
)

func kebab(key string) string {
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// safeCSSValue rejects values that could close the declaration or open a
// url() or expression.
func safeCSSValue(value string) bool {
	if strings.ContainsAny(value, ";{}<>\"'\\") {
		return false
	}
	lower := strings.ToLower(value)
	return !strings.Contains(lower, "url(") && !strings.Contains(lower, "expression(")
}
