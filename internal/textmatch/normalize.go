// Package textmatch holds the text normalization, keyword matching and skill
// extraction shared by every job source.
package textmatch

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRun   = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, replaces any run of characters outside [a-z0-9]
// with a single space and trims. Matching against pre-normalized variant
// phrases only works when both sides went through this function.
func Normalize(text string) string {
	return strings.TrimSpace(nonAlnumRun.ReplaceAllString(strings.ToLower(text), " "))
}

// CleanText collapses all whitespace runs into single spaces and trims.
func CleanText(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
