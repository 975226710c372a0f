package tone

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
)

const (
	MusicFrequency    = 220.0
	MusicGain         = 0.08
	MusicVibratoRate  = 0.2
	MusicVibratoDepth = 15.0

	musicFadeIn  = 800 * time.Millisecond
	musicFadeOut = 250 * time.Millisecond
)

// vibratoFrequency is the drone pitch t seconds after it started.
func vibratoFrequency(t float64) float64 {
	return MusicFrequency + MusicVibratoDepth*math.Sin(2*math.Pi*MusicVibratoRate*t)
}

// Drone is the looping background tone. It runs until FadeOut completes.
// It is not safe for concurrent use; hold the speaker lock around FadeOut.
type Drone struct {
	sr      beep.SampleRate
	phase   float64
	pos     int
	fadeIn  int
	fadeLen int
	// stopAt is the sample index where the fade out began; -1 while playing.
	stopAt int
}

// NewDrone returns a drone that fades in from silence.
func NewDrone(sr beep.SampleRate) *Drone {
	return &Drone{
		sr:      sr,
		fadeIn:  sr.N(musicFadeIn),
		fadeLen: sr.N(musicFadeOut),
		stopAt:  -1,
	}
}

func (d *Drone) gain() float64 {
	g := MusicGain * MasterGain
	if d.pos < d.fadeIn {
		g *= float64(d.pos) / float64(d.fadeIn)
	}
	if d.stopAt >= 0 {
		done := d.pos - d.stopAt
		if done >= d.fadeLen {
			return 0
		}
		g *= 1 - float64(done)/float64(d.fadeLen)
	}
	return g
}

// Finished reports whether the fade out completed.
func (d *Drone) Finished() bool {
	return d.stopAt >= 0 && d.pos-d.stopAt >= d.fadeLen
}

// FadeOut starts the release; repeated calls keep the first start point.
func (d *Drone) FadeOut() {
	if d.stopAt < 0 {
		d.stopAt = d.pos
	}
}

// Stream implements beep.Streamer.
func (d *Drone) Stream(samples [][2]float64) (int, bool) {
	if d.Finished() {
		return 0, false
	}
	rate := float64(d.sr)
	for i := range samples {
		t := float64(d.pos) / rate
		d.phase += 2 * math.Pi * vibratoFrequency(t) / rate
		if d.phase > 2*math.Pi {
			d.phase -= 2 * math.Pi
		}
		v := math.Sin(d.phase) * d.gain()
		samples[i][0] = v
		samples[i][1] = v
		d.pos++
	}
	return len(samples), true
}

func (d *Drone) Err() error {
	return nil
}
