package kana

import "strings"

// Word is a generated target: its kana plus the romaji segment of each kana.
type Word struct {
	Kana     []rune
	Segments []string
	Romaji   string
}

// NewWord builds a Word from kana symbols.
func NewWord(symbols []rune) Word {
	kanaCopy := make([]rune, len(symbols))
	copy(kanaCopy, symbols)
	segments := make([]string, len(kanaCopy))
	for i, r := range kanaCopy {
		segments[i] = Segment(r)
	}
	return Word{
		Kana:     kanaCopy,
		Segments: segments,
		Romaji:   strings.Join(segments, ""),
	}
}

// ParseWord builds a Word from a kana string.
func ParseWord(s string) Word {
	return NewWord([]rune(s))
}

// String returns the kana form.
func (w Word) String() string {
	return string(w.Kana)
}

// Len returns the kana count.
func (w Word) Len() int {
	return len(w.Kana)
}

// RomajiPrefix concatenates the first n segments.
func (w Word) RomajiPrefix(n int) string {
	if n <= 0 {
		return ""
	}
	if n > len(w.Segments) {
		n = len(w.Segments)
	}
	return strings.Join(w.Segments[:n], "")
}

// KanaForRomajiLength counts the segments wholly covered by the first length
// bytes of the romaji string. A partially typed segment earns nothing.
func (w Word) KanaForRomajiLength(length int) int {
	consumed := 0
	count := 0
	for _, seg := range w.Segments {
		next := consumed + len(seg)
		if length < next {
			break
		}
		consumed = next
		count++
	}
	return count
}
