package config

import (
	"strings"
	"unicode"
)

// SanitizeDirectoryName replaces every character other than letters and
// digits (any script), '_' and '-' with '_'.
func SanitizeDirectoryName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, name)
}

// SanitizeProfileName applies the directory rule to profile names
func SanitizeProfileName(name string) string {
	return SanitizeDirectoryName(name)
}
