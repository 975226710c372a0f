package web

import (
	"testing"

	"github.com/verte-zerg/kanatype/internal/game"
	"github.com/verte-zerg/kanatype/internal/generator"
)

func TestToCommand(t *testing.T) {
	cases := []struct {
		msg  ClientMessage
		want game.Command
	}{
		{ClientMessage{Type: "start"}, game.Command{Type: game.CmdStart}},
		{ClientMessage{Type: "start", Level: "hard"}, game.Command{Type: game.CmdStart, Level: generator.LevelHard}},
		{ClientMessage{Type: "level", Level: "Easy"}, game.Command{Type: game.CmdSelectLevel, Level: generator.LevelEasy}},
		{ClientMessage{Type: "input", Value: "さ"}, game.Command{Type: game.CmdInput, Raw: "さ"}},
		{ClientMessage{Type: "retry"}, game.Command{Type: game.CmdRetry}},
		{ClientMessage{Type: "return"}, game.Command{Type: game.CmdReturn}},
		{ClientMessage{Type: "submit"}, game.Command{Type: game.CmdSubmit}},
		{ClientMessage{Type: "compositionstart"}, game.Command{Type: game.CmdCompositionStart}},
		{ClientMessage{Type: "compositionend"}, game.Command{Type: game.CmdCompositionEnd}},
	}
	for _, tc := range cases {
		got, err := toCommand(tc.msg)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.msg.Type, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %+v, got %+v", tc.msg.Type, tc.want, got)
		}
	}
}

func TestToCommandRejects(t *testing.T) {
	for _, msg := range []ClientMessage{
		{Type: "tick"},
		{Type: "nextword"},
		{Type: "level", Level: "extreme"},
		{Type: "level"},
		{Type: "start", Level: "extreme"},
		{Type: ""},
	} {
		if _, err := toCommand(msg); err == nil {
			t.Fatalf("expected error for %+v", msg)
		}
	}
}

func TestNewEventViewsAttachCues(t *testing.T) {
	summary := game.Summary{Score: 100}
	views := newEventViews([]game.Event{
		{Type: game.EvtWordCompleted, Bonus: game.WordBonus},
		{Type: game.EvtEmptySubmit},
		{Type: game.EvtRoundEnded, Summary: &summary},
	})
	if len(views) != 3 {
		t.Fatalf("expected 3 views, got %d", len(views))
	}
	if views[0].Cue != "word" || views[0].Bonus != game.WordBonus {
		t.Fatalf("unexpected word view %+v", views[0])
	}
	if views[1].Cue != "" {
		t.Fatalf("empty submit should have no cue")
	}
	if views[2].Cue != "end" || views[2].Summary == nil || views[2].Summary.Score != 100 {
		t.Fatalf("unexpected end view %+v", views[2])
	}
	if newEventViews(nil) != nil {
		t.Fatalf("expected nil for no events")
	}
}
