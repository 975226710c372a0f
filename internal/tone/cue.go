// Package tone synthesizes the game's effect cues and background drone.
package tone

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"

	"github.com/verte-zerg/kanatype/internal/game"
)

const (
	SampleRate = beep.SampleRate(44100)
	MasterGain = 0.7

	DefaultAttack  = 10 * time.Millisecond
	DefaultRelease = 120 * time.Millisecond
)

// Cue names a short sound effect.
type Cue string

const (
	CueStart     Cue = "start"
	CueWord      Cue = "word"
	CueMiss      Cue = "miss"
	CueButton    Cue = "button"
	CueCountdown Cue = "countdown"
	CueEnd       Cue = "end"
)

// Wave is an oscillator shape.
type Wave string

const (
	WaveSine     Wave = "sine"
	WaveTriangle Wave = "triangle"
	WaveSquare   Wave = "square"
	WaveSawtooth Wave = "sawtooth"
)

// Note is one enveloped oscillator voice. Detune is in cents.
type Note struct {
	Frequency float64
	Duration  time.Duration
	Wave      Wave
	Gain      float64
	Detune    float64
}

// Cues maps every cue to the notes played together for it.
var Cues = map[Cue][]Note{
	CueStart: {
		{Frequency: 523.25, Duration: 200 * time.Millisecond, Wave: WaveTriangle, Gain: 0.5},
		{Frequency: 659.25, Duration: 250 * time.Millisecond, Wave: WaveSine, Gain: 0.35, Detune: 5},
	},
	CueWord: {
		{Frequency: 520, Duration: 200 * time.Millisecond, Wave: WaveTriangle, Gain: 0.5},
		{Frequency: 780, Duration: 240 * time.Millisecond, Wave: WaveSine, Gain: 0.35},
	},
	CueMiss: {
		{Frequency: 280, Duration: 250 * time.Millisecond, Wave: WaveSawtooth, Gain: 0.35},
	},
	CueButton: {
		{Frequency: 600, Duration: 120 * time.Millisecond, Wave: WaveTriangle, Gain: 0.3},
	},
	CueCountdown: {
		{Frequency: 920, Duration: 250 * time.Millisecond, Wave: WaveSquare, Gain: 0.4},
	},
	CueEnd: {
		{Frequency: 392, Duration: 300 * time.Millisecond, Wave: WaveSine, Gain: 0.4},
		{Frequency: 294, Duration: 350 * time.Millisecond, Wave: WaveTriangle, Gain: 0.3},
	},
}

// CueForEvent returns the cue a game event plays, if any.
func CueForEvent(evt game.EventType) (Cue, bool) {
	switch evt {
	case game.EvtRoundStarted:
		return CueStart, true
	case game.EvtWordCompleted:
		return CueWord, true
	case game.EvtWordMissed:
		return CueMiss, true
	case game.EvtCountdownWarning:
		return CueCountdown, true
	case game.EvtRoundEnded:
		return CueEnd, true
	default:
		return "", false
	}
}

// DetunedFrequency applies the detune in cents.
func (n Note) DetunedFrequency() float64 {
	if n.Detune == 0 {
		return n.Frequency
	}
	return n.Frequency * math.Pow(2, n.Detune/1200)
}

// Streamer builds the enveloped voice at sample rate sr.
func (n Note) Streamer(sr beep.SampleRate) (beep.Streamer, error) {
	freq := n.DetunedFrequency()
	var (
		osc beep.Streamer
		err error
	)
	switch n.Wave {
	case WaveTriangle:
		osc, err = generators.TriangleTone(sr, freq)
	case WaveSquare:
		osc, err = generators.SquareTone(sr, freq)
	case WaveSawtooth:
		osc, err = generators.SawtoothTone(sr, freq)
	default:
		osc, err = generators.SineTone(sr, freq)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build %s tone at %.2fHz: %w", n.Wave, freq, err)
	}
	return newEnvelope(osc, sr, n.Gain*MasterGain, DefaultAttack, n.Duration+DefaultRelease), nil
}

// CueStreamer mixes all notes of a cue.
func CueStreamer(c Cue, sr beep.SampleRate) (beep.Streamer, error) {
	notes, ok := Cues[c]
	if !ok {
		return nil, fmt.Errorf("unknown cue %q", c)
	}
	voices := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := n.Streamer(sr)
		if err != nil {
			return nil, err
		}
		voices = append(voices, s)
	}
	return beep.Mix(voices...), nil
}

// envelope ramps linearly up to gain over the attack, then back down to
// silence by the end of decay, and stops.
type envelope struct {
	src    beep.Streamer
	gain   float64
	attack int
	total  int
	pos    int
}

func newEnvelope(src beep.Streamer, sr beep.SampleRate, gain float64, attack, decay time.Duration) *envelope {
	a := sr.N(attack)
	return &envelope{
		src:    src,
		gain:   gain,
		attack: a,
		total:  a + sr.N(decay),
	}
}

func (e *envelope) level(pos int) float64 {
	if pos < e.attack {
		return e.gain * float64(pos) / float64(e.attack)
	}
	span := e.total - e.attack
	if span <= 0 {
		return 0
	}
	return e.gain * (1 - float64(pos-e.attack)/float64(span))
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.total {
		return 0, false
	}
	if rem := e.total - e.pos; len(samples) > rem {
		samples = samples[:rem]
	}
	n, ok := e.src.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.level(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error {
	return e.src.Err()
}
