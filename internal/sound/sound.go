//go:build !ci

// Package sound plays tone cues on the default audio device.
package sound

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep/v2/speaker"

	"github.com/verte-zerg/kanatype/internal/game"
	"github.com/verte-zerg/kanatype/internal/tone"
)

// Player plays cues and the background drone on the default audio device.
// Before Init succeeds, or after it fails, every call is silent.
type Player struct {
	mu      sync.Mutex
	ready   bool
	enabled bool
	music   bool
	drone   *tone.Drone
}

// NewPlayer returns a player with the given toggles. Call Init before use.
func NewPlayer(enabled, music bool) *Player {
	return &Player{enabled: enabled, music: music}
}

// Init opens the speaker. On error the player stays usable but silent.
func (p *Player) Init() error {
	if err := speaker.Init(tone.SampleRate, tone.SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	p.mu.Lock()
	p.ready = true
	p.mu.Unlock()
	return nil
}

// Play starts a cue when sound is enabled.
func (p *Player) Play(c tone.Cue) {
	p.mu.Lock()
	active := p.ready && p.enabled
	p.mu.Unlock()
	if !active {
		return
	}
	s, err := tone.CueStreamer(c, tone.SampleRate)
	if err != nil {
		log.Printf("failed to play %s cue: %v", c, err)
		return
	}
	speaker.Play(s)
}

// PlayEvent plays the cue mapped to a game event.
func (p *Player) PlayEvent(evt game.EventType) {
	if c, ok := tone.CueForEvent(evt); ok {
		p.Play(c)
	}
}

// PlayButton plays the UI click cue.
func (p *Player) PlayButton() {
	p.Play(tone.CueButton)
}

// Enabled reports whether cues are played.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// MusicEnabled reports whether the drone plays during rounds.
func (p *Player) MusicEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.music
}

// SetEnabled toggles all audio; disabling also stops the drone.
func (p *Player) SetEnabled(v bool) {
	p.mu.Lock()
	p.enabled = v
	p.mu.Unlock()
	if !v {
		p.StopMusic()
	}
}

// SetMusic toggles the background drone preference.
func (p *Player) SetMusic(v bool) {
	p.mu.Lock()
	p.music = v
	p.mu.Unlock()
	if !v {
		p.StopMusic()
	}
}

// StartMusic starts the drone if sound and music are both on and it is not
// already playing.
func (p *Player) StartMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready || !p.enabled || !p.music || p.drone != nil {
		return
	}
	p.drone = tone.NewDrone(tone.SampleRate)
	speaker.Play(p.drone)
}

// StopMusic fades the drone out.
func (p *Player) StopMusic() {
	p.mu.Lock()
	d := p.drone
	p.drone = nil
	p.mu.Unlock()
	if d == nil {
		return
	}
	speaker.Lock()
	d.FadeOut()
	speaker.Unlock()
}

// Close silences the player and releases the device.
func (p *Player) Close() {
	p.StopMusic()
	p.mu.Lock()
	ready := p.ready
	p.ready = false
	p.enabled = false
	p.mu.Unlock()
	if ready {
		speaker.Clear()
		speaker.Close()
	}
}
