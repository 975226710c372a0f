// Package matcher reconciles raw typed input against a target kana word.
package matcher

import (
	"strings"

	"github.com/verte-zerg/kanatype/internal/kana"
)

// Mode is the script that governed a match.
type Mode int

const (
	ModeNone Mode = iota
	ModeKana
	ModeRomaji
)

func (m Mode) String() string {
	switch m {
	case ModeKana:
		return "kana"
	case ModeRomaji:
		return "romaji"
	default:
		return "none"
	}
}

// State is the confirmed progress through a word.
type State struct {
	Mode        Mode
	MatchedKana int
	// TypedRomaji is the romaji of the first MatchedKana segments.
	TypedRomaji string
	// PendingRomaji is a valid prefix of the next segment that earns no
	// credit yet. Always empty in kana mode.
	PendingRomaji string
}

// Match computes the longest confirmed prefix of w for the raw input buffer.
// It is recomputed from the whole buffer every time, so switching scripts
// mid-word evaluates only the new buffer.
func Match(raw string, w kana.Word) State {
	normalized := kana.Normalize(raw)
	if normalized == "" {
		return State{}
	}
	if kana.ContainsKana(normalized) {
		return matchKana(kana.ToHiragana(normalized), w)
	}
	return matchRomaji(strings.ToLower(normalized), w)
}

func matchKana(input string, w kana.Word) State {
	typed := []rune(input)
	limit := len(typed)
	if w.Len() < limit {
		limit = w.Len()
	}
	matched := 0
	for matched < limit && typed[matched] == w.Kana[matched] {
		matched++
	}
	return State{
		Mode:        ModeKana,
		MatchedKana: matched,
		TypedRomaji: w.RomajiPrefix(matched),
	}
}

func matchRomaji(input string, w kana.Word) State {
	limit := len(input)
	if len(w.Romaji) < limit {
		limit = len(w.Romaji)
	}
	k := 0
	for k < limit && input[k] == w.Romaji[k] {
		k++
	}
	matched := w.KanaForRomajiLength(k)
	typed := w.RomajiPrefix(matched)
	return State{
		Mode:          ModeRomaji,
		MatchedKana:   matched,
		TypedRomaji:   typed,
		PendingRomaji: w.Romaji[len(typed):k],
	}
}
