package helper

import (
	"strings"
	"unicode"
)

// Underscore converts a StructField name like "PresenterName" to its JSON
// key form "presenter_name". Acronym runs stay together ("RegistrationID"
// becomes "registration_id").
func Underscore(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && !unicode.IsUpper(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
