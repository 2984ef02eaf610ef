package voice

import (
	"unicode"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// scriptRange maps a Unicode codepoint range to a language label. The range
// check is a cheap proxy for spoken language.
type scriptRange struct {
	language string
	lo, hi   rune
}

// scriptTable is the fixed, ordered list of script checks. The first range
// containing any character of the text wins, so Indic scripts are always
// classified before the Latin fallback is considered. Devanagari maps to
// Hindi; Marathi shares the script and inherits the label.
var scriptTable = []scriptRange{
	{language: "Hindi", lo: 0x0900, hi: 0x097F}, // Devanagari
	{language: "Bengali", lo: 0x0980, hi: 0x09FF},
	{language: "Punjabi", lo: 0x0A00, hi: 0x0A7F}, // Gurmukhi
	{language: "Gujarati", lo: 0x0A80, hi: 0x0AFF},
	{language: "Tamil", lo: 0x0B80, hi: 0x0BFF},
	{language: "Telugu", lo: 0x0C00, hi: 0x0C7F},
	{language: "Kannada", lo: 0x0C80, hi: 0x0CFF},
	{language: "Malayalam", lo: 0x0D00, hi: 0x0D7F},
}

// DetectLanguage classifies text by script. Indic ranges are checked in
// table order and the first match wins; text with only Latin letters falls
// back to the generic "English" label; text with no letters at all yields
// no label.
func DetectLanguage(text string) fn.Option[string] {
	for _, sr := range scriptTable {
		for _, r := range text {
			if r >= sr.lo && r <= sr.hi {
				return fn.Some(sr.language)
			}
		}
	}

	for _, r := range text {
		if unicode.Is(unicode.Latin, r) {
			return fn.Some("English")
		}
	}

	return fn.None[string]()
}
