package wordlist

import (
	"strings"
	"unicode"

	"github.com/verte-zerg/kanatype/internal/kana"
)

// FilterFunc returns true when a symbol should be kept.
type FilterFunc func(rune) bool

// FilterKnown keeps symbols the transliteration table can romanize.
func FilterKnown() FilterFunc {
	return kana.Known
}

func normalizeLine(line string) string {
	line = kana.ToHiragana(kana.Normalize(line))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ',' {
			return -1
		}
		return r
	}, line)
}
