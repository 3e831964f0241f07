// Package normalize turns the free-text fragments of an extracted timetable
// (Arabic or English day names, Arabic-Indic digits, odd time notations) into
// canonical values. Every function here is tolerant: unrecognized input
// yields "no value", never an error.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// glyphReplacer folds look-alike glyphs to ASCII.
var glyphReplacer = strings.NewReplacer(
	// Arabic-Indic digits
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	// Extended Arabic-Indic (Persian) digits
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
)

// timeReplacer extends glyphReplacer with separators that appear inside
// times and ranges.
var timeReplacer = strings.NewReplacer(
	"٫", ".", // Arabic decimal separator
	"：", ":", // full-width colon
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"―", "-", // horizontal bar
	"−", "-", // minus sign
	"\u0640", "", // tatweel
)

// DigitsToASCII translates Arabic-Indic digits to ASCII digits and leaves
// everything else untouched.
func DigitsToASCII(s string) string {
	return glyphReplacer.Replace(s)
}

func normalizeTimeText(s string) string {
	return timeReplacer.Replace(glyphReplacer.Replace(s))
}

// isInvisible reports bidi and formatting marks that OCR leaves around RTL
// text.
func isInvisible(r rune) bool {
	switch {
	case r == '\u200e', r == '\u200f', r == '\u061c': // LRM, RLM, ALM
		return true
	case r >= '\u202a' && r <= '\u202e': // embeddings and overrides
		return true
	case r >= '\u2066' && r <= '\u2069': // isolates
		return true
	case r == '\u200b', r == '\u200c', r == '\u200d', r == '\ufeff':
		return true
	}
	return false
}

// isArabicMark reports harakat, the superscript alef and tatweel.
func isArabicMark(r rune) bool {
	return (r >= '\u064b' && r <= '\u065f') || r == '\u0670' || r == '\u0640'
}

// cleanToken strips invisible marks and diacritics, applies NFKC so Arabic
// presentation forms fold to base letters, and translates digits.
func cleanToken(tok string) string {
	tok = strings.Map(func(r rune) rune {
		if isInvisible(r) || isArabicMark(r) {
			return -1
		}
		return r
	}, tok)
	tok = norm.NFKC.String(tok)
	tok = DigitsToASCII(tok)
	return strings.TrimFunc(tok, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsDigit(r)
	})
}
