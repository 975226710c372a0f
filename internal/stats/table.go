package stats

import (
	"github.com/mattn/go-runewidth"
)

// field is one label/value line of a two-column table.
type field struct {
	label string
	value string
}

// alignFields left-aligns labels and right-aligns values. Widths are
// measured in terminal cells, so kana count double.
func alignFields(fields []field) []string {
	labelWidth, valueWidth := 0, 0
	for _, f := range fields {
		labelWidth = max(labelWidth, runewidth.StringWidth(f.label))
		valueWidth = max(valueWidth, runewidth.StringWidth(f.value))
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, runewidth.FillRight(f.label, labelWidth)+" "+runewidth.FillLeft(f.value, valueWidth))
	}
	return lines
}
