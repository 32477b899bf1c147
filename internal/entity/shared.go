package entity

import "strings"

// NormalizeWordToken lowercases and trims a word for case-insensitive comparison.
func NormalizeWordToken(word string) string {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(trimmed)
}
