package liaison

import "unicode"

// Unicode blocks, not scripts: the Telugu and Devanagari script tables omit
// unassigned and shared code points that the blocks include.
var (
	teluguBlock = &unicode.RangeTable{
		R16: []unicode.Range16{{Lo: 0x0C00, Hi: 0x0C7F, Stride: 1}},
	}
	devanagariBlock = &unicode.RangeTable{
		R16: []unicode.Range16{{Lo: 0x0900, Hi: 0x097F, Stride: 1}},
	}
)

// DetectLanguage labels text by the scripts it contains. Any Telugu code point
// wins, then any Devanagari code point (reported as Hindi); everything else,
// including the empty string, is English. Mixed-script and transliterated text
// is misclassified; this is a script sniff, not language identification.
func DetectLanguage(text string) Language {
	hindi := false
	for _, r := range text {
		if unicode.Is(teluguBlock, r) {
			return LanguageTelugu
		}
		if !hindi && unicode.Is(devanagariBlock, r) {
			hindi = true
		}
	}
	if hindi {
		return LanguageHindi
	}
	return LanguageEnglish
}
