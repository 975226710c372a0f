package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/kanatype/internal/kana"
	"github.com/verte-zerg/kanatype/internal/matcher"
)

type styledRune struct {
	s     string
	width int
}

// buildKanaRunes styles the target word: confirmed kana, the next kana
// under the cursor, then the rest.
func buildKanaRunes(w kana.Word, st matcher.State) []styledRune {
	out := make([]styledRune, 0, w.Len())
	for i, r := range w.Kana {
		style := pendingStyle
		switch {
		case i < st.MatchedKana:
			style = correctStyle
		case i == st.MatchedKana:
			style = cursorStyle
		}
		out = append(out, styledRune{
			s:     style.Render(string(r)),
			width: runewidth.RuneWidth(r),
		})
	}
	return out
}

// buildRomajiRunes styles the romaji hint: credited segments, then the
// typed-but-uncredited tail, then the rest.
func buildRomajiRunes(w kana.Word, st matcher.State) []styledRune {
	typed := utf8.RuneCountInString(st.TypedRomaji)
	pending := typed + utf8.RuneCountInString(st.PendingRomaji)
	out := make([]styledRune, 0, len(w.Romaji))
	i := 0
	for _, r := range w.Romaji {
		style := pendingStyle
		switch {
		case i < typed:
			style = correctStyle
		case i < pending:
			style = currentWordStyle
		}
		out = append(out, styledRune{
			s:     style.Render(string(r)),
			width: runewidth.RuneWidth(r),
		})
		i++
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func lineWidthOf(line []styledRune) int {
	width := 0
	for _, item := range line {
		width += item.width
	}
	return width
}

// spaced renders the runes with a gap between cells, which reads better for
// wide kana glyphs.
func spaced(runes []styledRune) string {
	parts := make([]string, 0, len(runes))
	for _, item := range runes {
		parts = append(parts, item.s)
	}
	return strings.Join(parts, " ")
}
