package app

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxTracedQueryLength = 512

var (
	tracedQuerySpaces   = regexp.MustCompile(`\s+`)
	tracedQueryLiterals = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// formatDBQueryForTrace collapses whitespace, masks inline string
// literals and caps the statement stored on db spans.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}
	query = tracedQueryLiterals.ReplaceAllString(query, "'?'")
	query = tracedQuerySpaces.ReplaceAllString(query, " ")
	if len(query) > maxTracedQueryLength {
		query = truncateAtRune(query, maxTracedQueryLength) + "..."
	}
	return query
}

// truncateAtRune cuts s to at most limit bytes without splitting a
// multi-byte character.
func truncateAtRune(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
