package kana

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	kanaBlockStart     = 0x3040
	kanaBlockEnd       = 0x30FF
	katakanaFoldStart  = 0x30A1
	katakanaFoldEnd    = 0x30F6
	katakanaFoldOffset = 0x60
)

// Normalize applies NFKC so half-width katakana, full-width latin and
// combining voicing marks compare against their canonical forms.
func Normalize(s string) string {
	return norm.NFKC.String(s)
}

// ContainsKana reports whether s has any hiragana or katakana code point.
func ContainsKana(s string) bool {
	for _, r := range s {
		if r >= kanaBlockStart && r <= kanaBlockEnd {
			return true
		}
	}
	return false
}

// ToHiragana shifts katakana (ァ..ヶ) down to the matching hiragana.
func ToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= katakanaFoldStart && r <= katakanaFoldEnd {
			return r - katakanaFoldOffset
		}
		return r
	}, s)
}
