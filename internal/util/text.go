package util

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

var reParenthetical = regexp.MustCompile(`\s*\([^()]*?\)`)

// CleanText decodes HTML entities, repairs UTF-8 that was misread as Latin-1
// and trims surrounding whitespace. Text that cannot be repaired is kept as
// unescaped.
func CleanText(input string) string {
	if input == "" {
		return ""
	}
	s := html.UnescapeString(input)
	if repaired, ok := RepairMojibake(s); ok {
		s = repaired
	}
	return strings.TrimSpace(s)
}

// RepairMojibake encodes s one byte per rune as ISO-8859-1 and decodes the
// result as UTF-8. ok is false when a rune has no Latin-1 byte or the bytes
// are not valid UTF-8.
func RepairMojibake(s string) (string, bool) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return "", false
	}
	if !utf8.ValidString(encoded) {
		return "", false
	}
	return encoded, true
}

// StripParentheticals drops every non-nested "(...)" group together with the
// whitespace in front of it.
func StripParentheticals(input string) string {
	return strings.TrimSpace(reParenthetical.ReplaceAllString(input, ""))
}
