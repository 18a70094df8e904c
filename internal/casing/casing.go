// Package casing converts display names into identifiers with word-boundary
// aware case rules. Word boundaries are non-alphanumeric runes, a lowercase
// (or digit) rune followed by an uppercase one, and the last uppercase rune of
// an acronym when a lowercase rune follows (HTTPRequest -> HTTP, Request).
package casing

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words splits s into its words.
func Words(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	// lowerMode tracks whether the word so far ends in a lowercase run.
	// Digits keep whatever mode precedes them.
	lowerMode := false
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			lowerMode = false
			continue
		}
		if unicode.IsUpper(r) {
			switch {
			case lowerMode:
				flush()
			case len(cur) > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
			lowerMode = false
		} else if unicode.IsLower(r) {
			lowerMode = true
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// Snake converts s to lowercase words joined by underscores.
// "ElectionsPhragmen" -> "elections_phragmen".
func Snake(s string) string {
	words := Words(s)
	// Casers are stateful and not safe for concurrent use.
	lower := cases.Lower(language.Und)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return strings.Join(words, "_")
}

// UpperCamel converts s to capitalized words joined without separators.
// "transfer_keep_alive" -> "TransferKeepAlive".
func UpperCamel(s string) string {
	words := Words(s)
	title := cases.Title(language.Und)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(title.String(w))
	}
	return b.String()
}
