package matcher

import (
	"strings"

	"github.com/verte-zerg/kanatype/internal/kana"
)

// Outcome is the verdict on a submitted answer.
type Outcome int

const (
	Empty Outcome = iota
	Correct
	Incorrect
)

func (o Outcome) String() string {
	switch o {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "empty"
	}
}

// Evaluate checks a submitted buffer. Kana answers must equal the word after
// katakana folding; romaji answers must equal its romaji after lower-casing.
func Evaluate(raw string, w kana.Word) Outcome {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Empty
	}
	normalized := kana.Normalize(trimmed)
	if kana.ContainsKana(normalized) {
		if kana.ToHiragana(normalized) == w.String() {
			return Correct
		}
		return Incorrect
	}
	if strings.ToLower(normalized) == w.Romaji {
		return Correct
	}
	return Incorrect
}
