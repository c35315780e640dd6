// Package text provides the text clean-up applied to AI replies before they
// are sent to Telegram.
package text

import (
	"strings"
	"unicode/utf16"
)

// StripMarkup removes every character of MarkupChars from s. It is
// idempotent: StripMarkup(StripMarkup(s)) == StripMarkup(s).
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, MarkupChars) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(MarkupChars, r) {
			return -1
		}
		return r
	}, s)
}

// Truncate shortens s to at most limit UTF-16 code units, which is how
// Telegram measures message length, marking the cut with an ellipsis.
// Surrogate pairs are never split. Strings within the limit are returned
// unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 || UTF16Len(s) <= limit {
		return s
	}
	if limit <= 1 {
		return ellipsis
	}

	budget := limit - UTF16Len(ellipsis)
	used := 0
	for i, r := range s {
		n := runeUnits(r)
		if used+n > budget {
			return s[:i] + ellipsis
		}
		used += n
	}
	return s
}

// UTF16Len counts the UTF-16 code units needed to encode s.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

func runeUnits(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}
