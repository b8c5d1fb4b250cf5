package services

import "strings"

// CountWords collapses runs of whitespace and counts the remaining
// space-separated tokens. Punctuation and medical abbreviations are not
// special-cased; "G-CSF" is one word.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
