// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kanatype/internal/game"
	"github.com/verte-zerg/kanatype/internal/generator"
	"github.com/verte-zerg/kanatype/internal/store"
)

type feedbackKind int

const (
	feedbackNone feedbackKind = iota
	feedbackBonus
	feedbackError
)

const (
	feedbackCleared = "クリア！"
	feedbackMissed  = "もう一度チャレンジ！"
	feedbackEmpty   = "入力してからエンター！"
)

// feedbackDuration is how long a feedback message stays visible.
const feedbackDuration = 700 * time.Millisecond

// timerMsg carries a scheduled engine command back into the update loop.
type timerMsg struct {
	cmd game.Command
}

// feedbackExpiredMsg hides the feedback message numbered seq, unless a newer
// one replaced it.
type feedbackExpiredMsg struct {
	seq int
}

// Model implements the Bubble Tea game UI.
type Model struct {
	engine *game.Engine
	state  game.State
	store  store.HighScoreStore
	audio  Audio
	input  textinput.Model

	width  int
	height int

	feedback     string
	feedbackKind feedbackKind
	feedbackSeq  int
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Copy().Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	bonusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
)

// NewModel constructs the game UI. The stored high score is read here and
// again whenever a round starts or the player returns to the title;
// a nil store or audio is allowed.
func NewModel(engine *game.Engine, st store.HighScoreStore, audio Audio, level generator.Level) *Model {
	if audio == nil {
		audio = &silentAudio{}
	}
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "かな / romaji"
	input.CharLimit = 64
	input.Width = 24
	return &Model{
		engine: engine,
		state:  game.NewState(level, store.Load(context.Background(), st)),
		store:  st,
		audio:  audio,
		input:  input,
	}
}

// State returns the current session state.
func (m *Model) State() game.State {
	return m.state
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case timerMsg:
		return m, m.apply(msg.cmd)
	case feedbackExpiredMsg:
		if msg.seq == m.feedbackSeq {
			m.setFeedback("", feedbackNone)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.audio.StopMusic()
			return m, tea.Quit
		}
		switch m.state.Phase {
		case game.PhaseIdle, game.PhaseEnded:
			return m, m.handleMenuKey(msg)
		default:
			return m, m.handleGameKey(msg)
		}
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", " ":
		m.audio.PlayButton()
		if m.state.Phase == game.PhaseEnded {
			return m.apply(game.Command{Type: game.CmdRetry})
		}
		return m.apply(game.Command{Type: game.CmdStart, Level: m.state.Level})
	case "left", "h", "shift+tab":
		return m.apply(game.Command{Type: game.CmdSelectLevel, Level: m.shiftLevel(-1)})
	case "right", "l", "tab":
		return m.apply(game.Command{Type: game.CmdSelectLevel, Level: m.shiftLevel(1)})
	case "s":
		m.toggleSound()
		return nil
	case "m":
		m.audio.SetMusic(!m.audio.MusicEnabled())
		return nil
	case "esc":
		if m.state.Phase == game.PhaseEnded {
			m.audio.PlayButton()
			return m.apply(game.Command{Type: game.CmdReturn})
		}
		return nil
	case "q":
		m.audio.StopMusic()
		return tea.Quit
	default:
		return nil
	}
}

func (m *Model) handleGameKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		return m.apply(game.Command{Type: game.CmdSubmit})
	case tea.KeyEsc:
		m.audio.PlayButton()
		return m.apply(game.Command{Type: game.CmdReturn})
	case tea.KeyCtrlS:
		m.toggleSound()
		return nil
	}
	if !m.state.AcceptsInput() {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == m.state.Input {
		return cmd
	}
	return tea.Batch(cmd, m.apply(game.Command{Type: game.CmdInput, Raw: m.input.Value()}))
}

func (m *Model) toggleSound() {
	m.audio.SetEnabled(!m.audio.Enabled())
	if m.audio.Enabled() {
		m.audio.PlayButton()
		if m.state.Phase == game.PhasePlaying || m.state.Phase == game.PhaseAwaiting {
			m.audio.StartMusic()
		}
	}
}

func (m *Model) shiftLevel(delta int) generator.Level {
	idx := 0
	for i, l := range generator.Levels {
		if l == m.state.Level {
			idx = i
			break
		}
	}
	n := len(generator.Levels)
	return generator.Levels[((idx+delta)%n+n)%n]
}

// apply runs one engine transition and turns its side effects into
// sounds, feedback, persistence and scheduled ticks.
func (m *Model) apply(cmd game.Command) tea.Cmd {
	ctx := context.Background()
	switch cmd.Type {
	case game.CmdStart, game.CmdRetry, game.CmdReturn:
		m.state = m.state.WithStoredHighScore(store.Load(ctx, m.store))
	}
	var res game.Result
	m.state, res = m.engine.Apply(m.state, cmd)
	if res.Persist {
		best := store.Save(ctx, m.store, m.state.SessionID, m.state.Stats.HighScore)
		m.state, res = game.SyncHighScore(m.state, res, best)
	}

	cmds := make([]tea.Cmd, 0, len(res.Timers)+2)
	for _, evt := range res.Events {
		m.audio.PlayEvent(evt.Type)
		switch evt.Type {
		case game.EvtRoundStarted:
			log.Printf("session %s: round started (level %s)", m.state.SessionID, m.state.Level)
			m.setFeedback("", feedbackNone)
			m.audio.StartMusic()
		case game.EvtWordCompleted:
			cmds = append(cmds, m.flashFeedback(fmt.Sprintf("%s +%d", feedbackCleared, evt.Bonus), feedbackBonus))
		case game.EvtWordMissed:
			cmds = append(cmds, m.flashFeedback(feedbackMissed, feedbackError))
		case game.EvtEmptySubmit:
			cmds = append(cmds, m.flashFeedback(feedbackEmpty, feedbackError))
		case game.EvtRoundEnded:
			log.Printf("session %s: round ended score=%d best=%d", m.state.SessionID, evt.Summary.Score, evt.Summary.HighScore)
		}
	}
	if m.state.Phase == game.PhaseIdle || m.state.Phase == game.PhaseEnded {
		m.audio.StopMusic()
	}

	for _, t := range res.Timers {
		cmds = append(cmds, timerCmd(t))
	}
	cmds = append(cmds, m.syncInput())
	return tea.Batch(cmds...)
}

func timerCmd(t game.Timer) tea.Cmd {
	cmd := t.Command()
	return tea.Tick(t.After, func(time.Time) tea.Msg {
		return timerMsg{cmd: cmd}
	})
}

// syncInput mirrors the engine's buffer into the text field and disables the
// field outside of play.
func (m *Model) syncInput() tea.Cmd {
	if !m.state.AcceptsInput() {
		m.input.Blur()
		m.input.SetValue("")
		return nil
	}
	if m.input.Value() != m.state.Input {
		m.input.SetValue(m.state.Input)
		m.input.CursorEnd()
	}
	return m.input.Focus()
}

func (m *Model) setFeedback(text string, kind feedbackKind) {
	m.feedbackSeq++
	m.feedback = text
	m.feedbackKind = kind
}

// flashFeedback shows text and schedules it to disappear.
func (m *Model) flashFeedback(text string, kind feedbackKind) tea.Cmd {
	m.setFeedback(text, kind)
	seq := m.feedbackSeq
	return tea.Tick(feedbackDuration, func(time.Time) tea.Msg {
		return feedbackExpiredMsg{seq: seq}
	})
}
