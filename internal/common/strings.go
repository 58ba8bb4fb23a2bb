package common

import (
	"strings"
	"unicode"
)

// SnakeCase converts an exported identifier to its snake_case file-name form.
// "RoleMapper" becomes "role_mapper", acronym runs stay together:
// "URLStatMapper" becomes "url_stat_mapper".
func SnakeCase(ident string) string {
	var b strings.Builder

	b.Grow(len(ident) + 4)

	runes := []rune(ident)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}

			b.WriteRune(unicode.ToLower(r))

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
