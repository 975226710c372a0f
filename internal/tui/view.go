package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kanatype/internal/game"
	"github.com/verte-zerg/kanatype/internal/generator"
	"github.com/verte-zerg/kanatype/internal/stats"
)

const appTitle = "かなタイピング"

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.state.Phase {
	case game.PhaseIdle:
		content = m.viewTitle()
	case game.PhaseEnded:
		content = m.viewResult()
	default:
		content = m.viewGame()
	}
	footer := footerStyle.Render(m.renderHints())
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) viewTitle() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(appTitle),
		"",
		m.renderLevels(),
		"",
		fmt.Sprintf("High score %d", m.state.LiveHighScore()),
		footerStyle.Render(m.renderSettings()),
	)
}

func (m *Model) viewGame() string {
	kanaRunes := buildKanaRunes(m.state.Word, m.state.Match)
	prompt := spaced(kanaRunes)
	if m.width > 0 && lineWidthOf(kanaRunes)*2 > m.width {
		prompt = renderStyledRunes(kanaRunes)
	}
	romaji := renderStyledRunes(buildRomajiRunes(m.state.Word, m.state.Match))
	return lipgloss.JoinVertical(lipgloss.Center,
		m.renderHUD(),
		"",
		prompt,
		romaji,
		"",
		m.input.View(),
		m.renderFeedback(),
	)
}

func (m *Model) viewResult() string {
	lines := stats.SummaryLines(m.state.Summary(), true)
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("結果"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

func (m *Model) renderLevels() string {
	parts := make([]string, 0, len(generator.Levels))
	for _, l := range generator.Levels {
		if l == m.state.Level {
			parts = append(parts, currentWordStyle.Render("["+l.Label()+"]"))
			continue
		}
		parts = append(parts, pendingStyle.Render(" "+l.Label()+" "))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderSettings() string {
	return fmt.Sprintf("Sound %s · Music %s", onOff(m.audio.Enabled()), onOff(m.audio.MusicEnabled()))
}

// renderHUD is the status line shown during play.
func (m *Model) renderHUD() string {
	timer := fmt.Sprintf("Time %02d", m.state.Remaining)
	if m.state.Remaining <= game.WarningSeconds {
		timer = incorrectStyle.Render(timer)
	}
	segments := []string{
		currentWordStyle.Render(m.state.Level.Label()),
		timer,
		fmt.Sprintf("Score %d", m.state.Stats.Score),
		fmt.Sprintf("Best %d", m.state.LiveHighScore()),
		fmt.Sprintf("Sound %s", onOff(m.audio.Enabled())),
	}
	return strings.Join(segments, "  ")
}

func (m *Model) renderFeedback() string {
	switch m.feedbackKind {
	case feedbackBonus:
		return bonusStyle.Render(m.feedback)
	case feedbackError:
		return incorrectStyle.Render(m.feedback)
	default:
		return ""
	}
}

func (m *Model) renderHints() string {
	switch m.state.Phase {
	case game.PhaseIdle:
		return "enter start  ←/→ level  s sound  m music  q quit"
	case game.PhaseEnded:
		return "enter retry  ←/→ level  esc title  q quit"
	default:
		return "enter submit  esc title  ctrl+s sound"
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
