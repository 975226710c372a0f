package game

import (
	"math"

	"github.com/google/uuid"

	"github.com/verte-zerg/kanatype/internal/generator"
	"github.com/verte-zerg/kanatype/internal/kana"
	"github.com/verte-zerg/kanatype/internal/matcher"
)

// WordSource produces target words.
type WordSource interface {
	Generate(level generator.Level) kana.Word
}

// Engine applies commands to session state.
type Engine struct {
	words WordSource
	newID func() string
}

// NewEngine returns an Engine drawing words from words.
func NewEngine(words WordSource) *Engine {
	return &Engine{words: words, newID: uuid.NewString}
}

// Apply runs one transition. Commands that do not fit the current phase are
// absorbed and return the state unchanged.
func (e *Engine) Apply(s State, cmd Command) (State, Result) {
	switch cmd.Type {
	case CmdStart:
		if s.Phase != PhaseIdle && s.Phase != PhaseEnded {
			return s, Result{}
		}
		if cmd.Level != "" {
			s.Level = cmd.Level
		}
		return e.start(s)
	case CmdRetry:
		if s.Phase != PhaseEnded {
			return s, Result{}
		}
		return e.start(s)
	case CmdReturn:
		return toIdle(s), Result{}
	case CmdSelectLevel:
		if s.Phase != PhaseIdle && s.Phase != PhaseEnded {
			return s, Result{}
		}
		s.Level = cmd.Level
		return s, Result{}
	case CmdInput:
		if !s.AcceptsInput() {
			return s, Result{}
		}
		s.Input = cmd.Raw
		s.Match = matcher.Match(cmd.Raw, s.Word)
		return s, Result{}
	case CmdSubmit:
		if !s.AcceptsInput() {
			return s, Result{}
		}
		if s.Composing {
			s.PendingSubmit = true
			return s, Result{}
		}
		return e.submit(s)
	case CmdCompositionStart:
		if !s.AcceptsInput() {
			return s, Result{}
		}
		s.Composing = true
		return s, Result{}
	case CmdCompositionEnd:
		s.Composing = false
		if !s.PendingSubmit {
			return s, Result{}
		}
		s.PendingSubmit = false
		if !s.AcceptsInput() {
			return s, Result{}
		}
		return e.submit(s)
	case CmdTick:
		return e.tick(s, cmd.Generation)
	case CmdNextWord:
		if s.Phase != PhaseAwaiting || cmd.Generation != s.Generation {
			return s, Result{}
		}
		s = e.nextWord(s)
		s.Phase = PhasePlaying
		return s, Result{}
	default:
		return s, Result{}
	}
}

func (e *Engine) start(s State) (State, Result) {
	s.Generation++
	s.SessionID = e.newID()
	s.Phase = PhasePlaying
	s.Remaining = RoundSeconds
	s.Warned = false
	s.NewBest = false
	s.Stats = Stats{HighScore: s.Stats.HighScore}
	s = e.nextWord(s)
	return s, Result{
		Events: []Event{{Type: EvtRoundStarted}},
		Timers: []Timer{{Kind: TimerTick, Generation: s.Generation, After: TickInterval}},
	}
}

func (e *Engine) nextWord(s State) State {
	s.Word = e.words.Generate(s.Level)
	return clearInput(s)
}

func (e *Engine) submit(s State) (State, Result) {
	switch matcher.Evaluate(s.Input, s.Word) {
	case matcher.Empty:
		return s, Result{Events: []Event{{Type: EvtEmptySubmit}}}
	case matcher.Correct:
		s.Stats.Attempts++
		s.Stats.Successes++
		s.Stats.Score = s.Stats.Successes * WordBonus
		s = clearInput(s)
		s.Phase = PhaseAwaiting
		return s, Result{
			Events: []Event{{Type: EvtWordCompleted, Bonus: WordBonus}},
			Timers: []Timer{{Kind: TimerNextWord, Generation: s.Generation, After: NextWordDelay}},
		}
	default:
		s.Stats.Attempts++
		s = clearInput(s)
		return s, Result{Events: []Event{{Type: EvtWordMissed}}}
	}
}

func (e *Engine) tick(s State, generation uint64) (State, Result) {
	if generation != s.Generation {
		return s, Result{}
	}
	if s.Phase != PhasePlaying && s.Phase != PhaseAwaiting {
		return s, Result{}
	}
	var res Result
	if s.Remaining > 0 {
		s.Remaining--
	}
	if !s.Warned && s.Remaining > 0 && s.Remaining <= WarningSeconds {
		s.Warned = true
		res.Events = append(res.Events, Event{Type: EvtCountdownWarning})
	}
	if s.Remaining <= 0 {
		var endRes Result
		s, endRes = end(s)
		res.Events = append(res.Events, endRes.Events...)
		res.Persist = endRes.Persist
		return s, res
	}
	res.Timers = []Timer{{Kind: TimerTick, Generation: s.Generation, After: TickInterval}}
	return s, res
}

func end(s State) (State, Result) {
	s.Generation++
	s.Phase = PhaseEnded
	s = clearInput(s)
	if s.Stats.Score > s.Stats.HighScore {
		s.Stats.HighScore = s.Stats.Score
		s.NewBest = true
	}
	summary := s.Summary()
	return s, Result{
		Events:  []Event{{Type: EvtRoundEnded, Summary: &summary}},
		Persist: s.NewBest,
	}
}

func toIdle(s State) State {
	s.Generation++
	s.Phase = PhaseIdle
	return clearInput(s)
}

func clearInput(s State) State {
	s.Input = ""
	s.Match = matcher.State{}
	s.Composing = false
	s.PendingSubmit = false
	return s
}

// Accuracy is successes/attempts as a percentage rounded to one decimal.
func Accuracy(successes, attempts int) float64 {
	if attempts <= 0 {
		return 0
	}
	return math.Round(float64(successes)/float64(attempts)*1000) / 10
}
