package fbi

import (
	"strings"
	"unicode"
)

// NormalizeHeader lower-cases a header and joins its lines:
// "Murder and\nnonnegligent\nmanslaughter" becomes "murder and nonnegligent manslaughter".
func NormalizeHeader(h string) string {
	h = strings.ReplaceAll(h, "\r\n", "\n")
	return strings.TrimSpace(strings.ToLower(strings.ReplaceAll(h, "\n", " ")))
}

// CleanName removes footnote digits and lower-cases a city or state value:
// "Abilene3" becomes "abilene".
func CleanName(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
