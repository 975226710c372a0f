//go:build ci

package sound

import "testing"

func TestNoopPlayerKeepsPreferences(t *testing.T) {
	p := NewPlayer(true, false)
	if err := p.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	p.PlayButton()
	p.StartMusic()
	p.SetMusic(true)
	p.SetEnabled(false)
	if p.Enabled() || !p.MusicEnabled() {
		t.Fatalf("unexpected preferences: sound=%v music=%v", p.Enabled(), p.MusicEnabled())
	}
	p.Close()
}
