// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize prepares report text and keywords for literal substring
// matching. Both sides of a comparison must pass through Text.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Text returns s in NFC form, lowercased, with hyphenated line breaks joined
// ("sustain-\nability" becomes "sustainability"), every whitespace run
// collapsed to a single space, and no leading or trailing whitespace.
// Text is idempotent.
func Text(s string) string {
	s = strings.ToLower(norm.NFC.String(s))
	s = joinHyphenation(s)
	return strings.Join(strings.Fields(s), " ")
}

// joinHyphenation drops every '-' that is directly followed by whitespace,
// together with that whitespace.
func joinHyphenation(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '-' && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
