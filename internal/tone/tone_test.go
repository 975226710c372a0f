package tone

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/verte-zerg/kanatype/internal/game"
)

func drain(t *testing.T, s beep.Streamer) (samples int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, v := range buf[:n] {
			if a := math.Abs(v[0]); a > peak {
				peak = a
			}
		}
		samples += n
		if !ok {
			return samples, peak
		}
	}
	t.Fatalf("streamer never finished")
	return 0, 0
}

func TestCueForEvent(t *testing.T) {
	cases := map[game.EventType]Cue{
		game.EvtRoundStarted:     CueStart,
		game.EvtWordCompleted:    CueWord,
		game.EvtWordMissed:       CueMiss,
		game.EvtCountdownWarning: CueCountdown,
		game.EvtRoundEnded:       CueEnd,
	}
	for evt, want := range cases {
		got, ok := CueForEvent(evt)
		if !ok || got != want {
			t.Fatalf("event %s: expected %s, got %s (%v)", evt, want, got, ok)
		}
	}
	if _, ok := CueForEvent(game.EvtEmptySubmit); ok {
		t.Fatalf("empty submit should be silent")
	}
}

func TestEveryCueHasNotes(t *testing.T) {
	for _, c := range []Cue{CueStart, CueWord, CueMiss, CueButton, CueCountdown, CueEnd} {
		if len(Cues[c]) == 0 {
			t.Fatalf("cue %s has no notes", c)
		}
	}
}

func TestCueStreamerLength(t *testing.T) {
	s, err := CueStreamer(CueEnd, SampleRate)
	if err != nil {
		t.Fatalf("build cue: %v", err)
	}
	n, peak := drain(t, s)
	longest := SampleRate.N(DefaultAttack) + SampleRate.N(350*time.Millisecond+DefaultRelease)
	if n < longest || n > longest+1024 {
		t.Fatalf("expected about %d samples, got %d", longest, n)
	}
	if peak == 0 || peak > (0.4+0.3)*MasterGain+1e-9 {
		t.Fatalf("unexpected peak %f", peak)
	}
	if _, err := CueStreamer(Cue("fanfare"), SampleRate); err == nil {
		t.Fatalf("expected error for unknown cue")
	}
}

func TestEnvelopeShape(t *testing.T) {
	env := newEnvelope(beep.Silence(-1), SampleRate, 0.5, 10*time.Millisecond, 100*time.Millisecond)
	if got := env.level(0); got != 0 {
		t.Fatalf("expected silent start, got %f", got)
	}
	if got := env.level(env.attack); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected full gain after attack, got %f", got)
	}
	if got := env.level(env.total); math.Abs(got) > 1e-9 {
		t.Fatalf("expected silence at the end, got %f", got)
	}
	mid := env.level(env.attack + (env.total-env.attack)/2)
	if math.Abs(mid-0.25) > 1e-3 {
		t.Fatalf("expected half gain mid decay, got %f", mid)
	}
}

func TestDetune(t *testing.T) {
	n := Note{Frequency: 440, Detune: 1200}
	if got := n.DetunedFrequency(); math.Abs(got-880) > 1e-9 {
		t.Fatalf("expected 880, got %f", got)
	}
	n.Detune = 0
	if got := n.DetunedFrequency(); got != 440 {
		t.Fatalf("expected 440, got %f", got)
	}
}

func TestVibratoFrequency(t *testing.T) {
	if got := vibratoFrequency(0); got != MusicFrequency {
		t.Fatalf("expected %f at t=0, got %f", MusicFrequency, got)
	}
	// A quarter period of 0.2Hz is 1.25s.
	if got := vibratoFrequency(1.25); math.Abs(got-(MusicFrequency+MusicVibratoDepth)) > 1e-9 {
		t.Fatalf("expected peak vibrato, got %f", got)
	}
}

func TestDroneFadesOut(t *testing.T) {
	d := NewDrone(SampleRate)
	buf := make([][2]float64, 1024)
	if n, ok := d.Stream(buf); !ok || n != len(buf) {
		t.Fatalf("drone should keep streaming")
	}
	d.FadeOut()
	n, _ := drain(t, d)
	if n < d.fadeLen {
		t.Fatalf("expected at least %d fade samples, got %d", d.fadeLen, n)
	}
	if !d.Finished() {
		t.Fatalf("drone should be finished")
	}
}
