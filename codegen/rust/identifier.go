package rust

import (
	"strings"
	"unicode"
)

// Strict and reserved keywords of the 2021 edition.
var reservedWords = map[string]bool{
	"as":       true,
	"async":    true,
	"await":    true,
	"break":    true,
	"const":    true,
	"continue": true,
	"dyn":      true,
	"else":     true,
	"enum":     true,
	"extern":   true,
	"false":    true,
	"fn":       true,
	"for":      true,
	"if":       true,
	"impl":     true,
	"in":       true,
	"let":      true,
	"loop":     true,
	"match":    true,
	"mod":      true,
	"move":     true,
	"mut":      true,
	"pub":      true,
	"ref":      true,
	"return":   true,
	"static":   true,
	"struct":   true,
	"trait":    true,
	"true":     true,
	"type":     true,
	"unsafe":   true,
	"use":      true,
	"where":    true,
	"while":    true,
	"abstract": true,
	"become":   true,
	"box":      true,
	"do":       true,
	"final":    true,
	"macro":    true,
	"override": true,
	"priv":     true,
	"try":      true,
	"typeof":   true,
	"unsized":  true,
	"virtual":  true,
	"yield":    true,
}

// Path keywords cannot be written as raw identifiers.
var pathKeywords = map[string]bool{
	"self":  true,
	"Self":  true,
	"super": true,
	"crate": true,
}

// escapeIdent makes name usable as an identifier. Keywords become raw
// identifiers (r#type); path keywords get a trailing underscore.
func escapeIdent(name string) string {
	switch {
	case pathKeywords[name]:
		return name + "_"
	case reservedWords[name]:
		return "r#" + name
	default:
		return sanitizeIdent(name)
	}
}

// sanitizeIdent replaces characters that cannot appear in an identifier.
func sanitizeIdent(name string) string {
	if name == "" {
		return "_"
	}
	valid := true
	for i, r := range name {
		if !isIdentRune(r, i == 0) {
			valid = false
			break
		}
	}
	if valid {
		return name
	}

	var b strings.Builder
	for i, r := range name {
		if i == 0 && unicode.IsDigit(r) {
			b.WriteRune('_')
		}
		if isIdentRune(r, false) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func isIdentRune(r rune, first bool) bool {
	if r == '_' || unicode.IsLetter(r) {
		return true
	}
	return !first && unicode.IsDigit(r)
}
