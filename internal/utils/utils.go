package utils

import "strings"

const (
	maskVisiblePrefix = 6
	maskVisibleSuffix = 4
	// Keys at or under this length are shown as-is; they are assumed to be placeholders.
	maskMinLength = maskVisiblePrefix + maskVisibleSuffix
)

// MaskAPIKey masks the API key for display. Keys longer than 10 characters
// keep their first 6 and last 4 characters with every character in between
// replaced by '*', so the masked key has the original length. Lengths are
// counted in runes.
func MaskAPIKey(key string) string {
	runes := []rune(key)
	if len(runes) <= maskMinLength {
		return key
	}
	return string(runes[:maskVisiblePrefix]) +
		strings.Repeat("*", len(runes)-maskMinLength) +
		string(runes[len(runes)-maskVisibleSuffix:])
}

// Truncate shortens s to at most width runes, ending it with "..." when cut.
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
