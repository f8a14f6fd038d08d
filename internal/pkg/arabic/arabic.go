// Package arabic normalizes employee codes and imported labels that arrive in
// mixed Arabic/Latin script. Biometric exports and spreadsheet imports use
// Arabic-Indic digits, zero-width characters and letter variants
// interchangeably, so every lookup key in the engine goes through this package.
package arabic

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// invisible characters commonly pasted in from spreadsheets
var invisibles = runes.Predicate(func(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\u200e', '\u200f', '\ufeff', '\u061c':
		return true
	}
	return false
})

var stripInvisibles = runes.Remove(invisibles)

// NormalizeDigits maps Arabic-Indic (U+0660..U+0669) and Extended
// Arabic-Indic (U+06F0..U+06F9) digits to their ASCII equivalents.
func NormalizeDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeCode canonicalizes an employee code for use as a lookup key.
// Invisible characters are stripped, digits are mapped to ASCII and purely
// numeric codes collapse to their integer form so "٠٠٧", "007" and "7" are
// the same identity. Alphanumeric codes are only trimmed.
func NormalizeCode(code string) string {
	out, _, err := transform.String(stripInvisibles, code)
	if err != nil {
		out = code
	}
	out = strings.TrimSpace(NormalizeDigits(out))
	if out == "" {
		return ""
	}
	if isASCIIDigits(out) {
		trimmed := strings.TrimLeft(out, "0")
		if trimmed == "" {
			return "0"
		}
		return trimmed
	}
	return out
}

func isASCIIDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var foldTransform = transform.Chain(
	norm.NFD,
	stripInvisibles,
	runes.Remove(runes.In(unicode.Mn)), // harakat and other combining marks
	norm.NFC,
)

// FoldLabel normalizes a free-text type label from an import: diacritics
// removed, Arabic letter variants folded, tatweel dropped, whitespace
// collapsed and lowercased. Used to match effect types regardless of how the
// source spreadsheet spelled them.
func FoldLabel(s string) string {
	out, _, err := transform.String(foldTransform, s)
	if err != nil {
		out = s
	}
	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		switch r {
		case 'ـ': // tatweel
			continue
		case 'أ', 'إ', 'آ': // alef with hamza above/below, madda
			r = 'ا'
		case 'ة': // teh marbuta
			r = 'ه'
		case 'ى': // alef maqsura
			r = 'ي'
		}
		b.WriteRune(r)
	}
	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}
