//go:build ci

package sound

import (
	"github.com/verte-zerg/kanatype/internal/game"
	"github.com/verte-zerg/kanatype/internal/tone"
)

// Player keeps the toggles but never touches an audio device.
type Player struct {
	enabled bool
	music   bool
}

// NewPlayer returns a silent player.
func NewPlayer(enabled, music bool) *Player {
	return &Player{enabled: enabled, music: music}
}

func (p *Player) Init() error {
	return nil
}

func (p *Player) Play(c tone.Cue) {
	// No-op
}

func (p *Player) PlayEvent(evt game.EventType) {
	// No-op
}

func (p *Player) PlayButton() {
	// No-op
}

func (p *Player) Enabled() bool {
	return p.enabled
}

func (p *Player) MusicEnabled() bool {
	return p.music
}

func (p *Player) SetEnabled(v bool) {
	p.enabled = v
}

func (p *Player) SetMusic(v bool) {
	p.music = v
}

func (p *Player) StartMusic() {
	// No-op
}

func (p *Player) StopMusic() {
	// No-op
}

func (p *Player) Close() {
	// No-op
}
