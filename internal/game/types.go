// Package game implements the timed round state machine.
package game

import (
	"time"

	"github.com/verte-zerg/kanatype/internal/generator"
	"github.com/verte-zerg/kanatype/internal/kana"
	"github.com/verte-zerg/kanatype/internal/matcher"
)

const (
	RoundSeconds     = 60
	WordBonus        = 100
	WarningSeconds   = 10
	TickInterval     = time.Second
	NextWordDelay    = 220 * time.Millisecond
	HighScoreStorage = "typingGame.highScore"
)

// Phase is the lifecycle stage of a session.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhasePlaying  Phase = "playing"
	PhaseAwaiting Phase = "awaiting"
	PhaseEnded    Phase = "ended"
)

// Stats are the per-session counters plus the persisted best.
type Stats struct {
	Score     int
	Successes int
	Attempts  int
	HighScore int
}

// State is the full session context. It is a value: Apply returns a new one.
type State struct {
	SessionID  string
	Phase      Phase
	Level      generator.Level
	Remaining  int
	Word       kana.Word
	Input      string
	Match      matcher.State
	Stats      Stats
	Generation uint64

	Warned        bool
	NewBest       bool
	Composing     bool
	PendingSubmit bool
}

// NewState returns an idle session seeded with a persisted high score.
func NewState(level generator.Level, highScore int) State {
	if highScore < 0 {
		highScore = 0
	}
	return State{
		Phase:     PhaseIdle,
		Level:     level,
		Remaining: RoundSeconds,
		Stats:     Stats{HighScore: highScore},
	}
}

// LiveHighScore is the best score including the round in progress.
func (s State) LiveHighScore() int {
	if s.Stats.Score > s.Stats.HighScore {
		return s.Stats.Score
	}
	return s.Stats.HighScore
}

// WithStoredHighScore raises the carried best to stored, which another
// session may have written since this one last read it. A round that no
// longer beats it loses its new-best flag.
func (s State) WithStoredHighScore(stored int) State {
	if stored <= s.Stats.HighScore {
		return s
	}
	s.Stats.HighScore = stored
	if s.Stats.Score <= stored {
		s.NewBest = false
	}
	return s
}

// SyncHighScore folds stored into s and rewrites any round summary in res so
// it reports the same best.
func SyncHighScore(s State, res Result, stored int) (State, Result) {
	s = s.WithStoredHighScore(stored)
	if len(res.Events) == 0 {
		return s, res
	}
	events := make([]Event, len(res.Events))
	copy(events, res.Events)
	for i := range events {
		if events[i].Summary != nil {
			summary := s.Summary()
			events[i].Summary = &summary
		}
	}
	res.Events = events
	return s, res
}

// Summary reports the round counters; it is final once the phase is Ended.
func (s State) Summary() Summary {
	return Summary{
		Score:     s.Stats.Score,
		Successes: s.Stats.Successes,
		Attempts:  s.Stats.Attempts,
		Accuracy:  Accuracy(s.Stats.Successes, s.Stats.Attempts),
		HighScore: s.LiveHighScore(),
		NewBest:   s.NewBest,
	}
}

// AcceptsInput reports whether the input surface should be enabled.
func (s State) AcceptsInput() bool {
	return s.Phase == PhasePlaying
}

// CommandType names an engine command.
type CommandType string

const (
	CmdStart            CommandType = "start"
	CmdRetry            CommandType = "retry"
	CmdReturn           CommandType = "return"
	CmdSelectLevel      CommandType = "level"
	CmdInput            CommandType = "input"
	CmdSubmit           CommandType = "submit"
	CmdTick             CommandType = "tick"
	CmdNextWord         CommandType = "nextword"
	CmdCompositionStart CommandType = "compositionstart"
	CmdCompositionEnd   CommandType = "compositionend"
)

// Command is an external trigger: a UI action, a keystroke or a timer firing.
type Command struct {
	Type       CommandType
	Level      generator.Level
	Raw        string
	Generation uint64
}

// EventType names a notification emitted by a transition.
type EventType string

const (
	EvtRoundStarted     EventType = "roundStarted"
	EvtWordCompleted    EventType = "wordCompleted"
	EvtWordMissed       EventType = "wordMissed"
	EvtEmptySubmit      EventType = "emptySubmit"
	EvtCountdownWarning EventType = "countdownWarning"
	EvtRoundEnded       EventType = "roundEnded"
)

// Event is a notification for the presentation and audio collaborators.
type Event struct {
	Type    EventType
	Bonus   int
	Summary *Summary
}

// Summary is the frozen result of an ended round.
type Summary struct {
	Score     int     `json:"score"`
	Successes int     `json:"successes"`
	Attempts  int     `json:"attempts"`
	Accuracy  float64 `json:"accuracy"`
	HighScore int     `json:"highScore"`
	NewBest   bool    `json:"newBest"`
}

// TimerKind says which command a Timer fires.
type TimerKind string

const (
	TimerTick     TimerKind = "tick"
	TimerNextWord TimerKind = "nextword"
)

// Timer is a one-shot callback the driver must schedule. When it fires the
// driver applies Command() and the engine drops it if the generation moved on.
type Timer struct {
	Kind       TimerKind
	Generation uint64
	After      time.Duration
}

// Command converts the timer into the command to apply when it fires.
func (t Timer) Command() Command {
	switch t.Kind {
	case TimerNextWord:
		return Command{Type: CmdNextWord, Generation: t.Generation}
	default:
		return Command{Type: CmdTick, Generation: t.Generation}
	}
}

// Result carries the side effects of a transition.
type Result struct {
	Events []Event
	Timers []Timer
	// Persist is set when the high score changed and must be stored.
	Persist bool
}

// Has reports whether an event of type t was emitted.
func (r Result) Has(t EventType) bool {
	for _, e := range r.Events {
		if e.Type == t {
			return true
		}
	}
	return false
}
