// Package stats renders round results.
package stats

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/kanatype/internal/game"
)

var (
	bestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

func summaryFields(s game.Summary) []field {
	return []field{
		{"Score", fmt.Sprintf("%d", s.Score)},
		{"Cleared", fmt.Sprintf("%d", s.Successes)},
		{"Attempts", fmt.Sprintf("%d", s.Attempts)},
		{"Accuracy", fmt.Sprintf("%.1f%%", s.Accuracy)},
		{"High score", fmt.Sprintf("%d", s.HighScore)},
	}
}

// SummaryLines formats a round summary as an aligned table, followed by a
// marker line when the round set a new best.
func SummaryLines(s game.Summary, useColor bool) []string {
	lines := alignFields(summaryFields(s))
	rows := len(lines)
	if s.NewBest {
		marker := "New high score!"
		if useColor {
			marker = bestStyle.Render(marker)
		}
		lines = append(lines, marker)
	}
	if useColor {
		for i := range lines[:rows] {
			lines[i] = labelStyle.Render(lines[i])
		}
	}
	return lines
}

// RenderHighScore prints the stored high score.
func RenderHighScore(w io.Writer, highScore int, useColor bool) error {
	lines := alignFields([]field{
		{"Key", "High score"},
		{game.HighScoreStorage, fmt.Sprintf("%d", highScore)},
	})
	for i, line := range lines {
		if useColor && i == 0 {
			line = labelStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
