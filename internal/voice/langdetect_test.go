package voice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDetectLanguageScripts covers each script range, the Latin fallback,
// and the no-letter case.
func TestDetectLanguageScripts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		none bool
	}{
		{name: "devanagari", text: "नमस्ते", want: "Hindi"},
		{name: "bengali", text: "নমস্কার", want: "Bengali"},
		{name: "gurmukhi", text: "ਸਤ ਸ੍ਰੀ ਅਕਾਲ", want: "Punjabi"},
		{name: "gujarati", text: "નમસ્તે", want: "Gujarati"},
		{name: "tamil", text: "வணக்கம்", want: "Tamil"},
		{name: "telugu", text: "నమస్కారం", want: "Telugu"},
		{name: "kannada", text: "ನಮಸ್ಕಾರ", want: "Kannada"},
		{name: "malayalam", text: "നമസ്കാരം", want: "Malayalam"},
		{name: "latin fallback", text: "hello there", want: "English"},
		{
			name: "devanagari wins over latin",
			text: "please translate नमस्ते",
			want: "Hindi",
		},
		{name: "digits only", text: "12345 !?", none: true},
		{name: "empty", text: "", none: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectLanguage(tc.text)
			if tc.none {
				require.True(t, got.IsNone())
				return
			}
			require.Equal(t, tc.want, got.UnwrapOr(""))
		})
	}
}
