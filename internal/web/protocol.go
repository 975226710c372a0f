package web

import (
	"fmt"

	"github.com/verte-zerg/kanatype/internal/game"
	"github.com/verte-zerg/kanatype/internal/generator"
	"github.com/verte-zerg/kanatype/internal/tone"
)

// ClientMessage is what the browser sends over the socket.
type ClientMessage struct {
	Type  string `json:"type"`
	Level string `json:"level,omitempty"`
	Value string `json:"value,omitempty"`
	Seq   uint64 `json:"seq,omitempty"`
}

// ServerMessage is what the session pushes to the browser.
type ServerMessage struct {
	Type   string      `json:"type"`
	State  *Snapshot   `json:"state,omitempty"`
	Events []EventView `json:"events,omitempty"`
	Error  string      `json:"error,omitempty"`
}

const (
	msgState = "state"
	msgError = "error"
)

// Snapshot is the render-ready view of a game.State.
type Snapshot struct {
	SessionID     string  `json:"sessionId,omitempty"`
	Phase         string  `json:"phase"`
	Level         string  `json:"level"`
	LevelLabel    string  `json:"levelLabel"`
	Remaining     int     `json:"remaining"`
	Word          string  `json:"word"`
	Romaji        string  `json:"romaji"`
	MatchedKana   int     `json:"matchedKana"`
	TypedRomaji   string  `json:"typedRomaji"`
	PendingRomaji string  `json:"pendingRomaji"`
	Mode          string  `json:"mode"`
	Input         string  `json:"input"`
	InputSeq      uint64  `json:"inputSeq"`
	AcceptsInput  bool    `json:"acceptsInput"`
	Score         int     `json:"score"`
	Successes     int     `json:"successes"`
	Attempts      int     `json:"attempts"`
	Accuracy      float64 `json:"accuracy"`
	HighScore     int     `json:"highScore"`
	NewBest       bool    `json:"newBest"`
}

// EventView is a game event plus the cue the page should play for it.
type EventView struct {
	Type    string        `json:"type"`
	Cue     string        `json:"cue,omitempty"`
	Bonus   int           `json:"bonus,omitempty"`
	Summary *game.Summary `json:"summary,omitempty"`
}

// NewSnapshot flattens a session state for the wire.
func NewSnapshot(s game.State) *Snapshot {
	summary := s.Summary()
	return &Snapshot{
		SessionID:     s.SessionID,
		Phase:         string(s.Phase),
		Level:         string(s.Level),
		LevelLabel:    s.Level.Label(),
		Remaining:     s.Remaining,
		Word:          s.Word.String(),
		Romaji:        s.Word.Romaji,
		MatchedKana:   s.Match.MatchedKana,
		TypedRomaji:   s.Match.TypedRomaji,
		PendingRomaji: s.Match.PendingRomaji,
		Mode:          s.Match.Mode.String(),
		Input:         s.Input,
		AcceptsInput:  s.AcceptsInput(),
		Score:         summary.Score,
		Successes:     summary.Successes,
		Attempts:      summary.Attempts,
		Accuracy:      summary.Accuracy,
		HighScore:     summary.HighScore,
		NewBest:       summary.NewBest,
	}
}

func newEventViews(events []game.Event) []EventView {
	if len(events) == 0 {
		return nil
	}
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		v := EventView{Type: string(e.Type), Bonus: e.Bonus, Summary: e.Summary}
		if c, ok := tone.CueForEvent(e.Type); ok {
			v.Cue = string(c)
		}
		out = append(out, v)
	}
	return out
}

// toCommand maps a client message to an engine command. Timer commands are
// never accepted from the client.
func toCommand(m ClientMessage) (game.Command, error) {
	switch m.Type {
	case "start":
		cmd := game.Command{Type: game.CmdStart}
		if m.Level != "" {
			level, err := generator.ParseLevel(m.Level)
			if err != nil {
				return game.Command{}, err
			}
			cmd.Level = level
		}
		return cmd, nil
	case "level":
		level, err := generator.ParseLevel(m.Level)
		if err != nil {
			return game.Command{}, err
		}
		return game.Command{Type: game.CmdSelectLevel, Level: level}, nil
	case "input":
		return game.Command{Type: game.CmdInput, Raw: m.Value}, nil
	case "retry":
		return game.Command{Type: game.CmdRetry}, nil
	case "return":
		return game.Command{Type: game.CmdReturn}, nil
	case "submit":
		return game.Command{Type: game.CmdSubmit}, nil
	case "compositionstart":
		return game.Command{Type: game.CmdCompositionStart}, nil
	case "compositionend":
		return game.Command{Type: game.CmdCompositionEnd}, nil
	default:
		return game.Command{}, fmt.Errorf("unknown message type %q", m.Type)
	}
}
