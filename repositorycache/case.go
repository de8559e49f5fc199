package repositorycache

import (
	"strings"
	"unicode"
)

// toSnake turns an exported Go type name into the snake_case cache namespace
// of its aggregate. An upper case letter starts a new word after a lower case
// letter, and also ends an acronym when a lower case letter follows it.
func toSnake(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		if i > 0 {
			prev := runes[i-1]
			acronymEnd := unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || acronymEnd {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
