package reveal

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Word is a space-separated span of the revealed text, in rune offsets.
type Word struct {
	Text    string `json:"text"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Keyword bool   `json:"keyword"`
}

// Words splits text on single spaces and flags the words matching any
// keyword. Matching is case-insensitive on letters and digits only, and
// either side may contain the other.
func Words(text string, keywords []string) []Word {
	text = norm.NFC.String(text)
	// Casers carry state and are not shared between calls.
	upper := cases.Upper(language.Und)

	cleanKeys := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if c := cleanWord(upper, k); c != "" {
			cleanKeys = append(cleanKeys, c)
		}
	}

	var words []Word
	offset := 0
	for _, w := range strings.Split(text, " ") {
		n := len([]rune(w))
		word := Word{Text: w, Start: offset, End: offset + n}
		if c := cleanWord(upper, w); c != "" {
			for _, k := range cleanKeys {
				if strings.Contains(c, k) || strings.Contains(k, c) {
					word.Keyword = true
					break
				}
			}
		}
		words = append(words, word)
		offset += n + 1
	}
	return words
}

func cleanWord(upper cases.Caser, s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, upper.String(s))
}
