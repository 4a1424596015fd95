// Package utils provides common utility functions.
package utils

import "strings"

// CollapseWhitespace trims the string and replaces runs of whitespace
// (including newlines from multi-line HTML text nodes) with single spaces.
func CollapseWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// Truncate shortens str to at most maxLength runes, appending "..." when
// anything was cut.
func Truncate(str string, maxLength int) string {
	runes := []rune(str)
	if len(runes) <= maxLength {
		return str
	}

	return string(runes[:maxLength]) + "..."
}
