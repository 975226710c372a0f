package tui

import "github.com/verte-zerg/kanatype/internal/game"

// Audio is the sound collaborator driven by the UI.
type Audio interface {
	PlayEvent(evt game.EventType)
	PlayButton()
	Enabled() bool
	MusicEnabled() bool
	SetEnabled(v bool)
	SetMusic(v bool)
	StartMusic()
	StopMusic()
}

type silentAudio struct {
	enabled bool
	music   bool
}

func (a *silentAudio) PlayEvent(game.EventType) {}
func (a *silentAudio) PlayButton()              {}
func (a *silentAudio) Enabled() bool            { return a.enabled }
func (a *silentAudio) MusicEnabled() bool       { return a.music }
func (a *silentAudio) SetEnabled(v bool)        { a.enabled = v }
func (a *silentAudio) SetMusic(v bool)          { a.music = v }
func (a *silentAudio) StartMusic()              {}
func (a *silentAudio) StopMusic()               {}
