package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/kanatype/internal/game"
)

func TestSummaryLinesPlain(t *testing.T) {
	lines := SummaryLines(game.Summary{
		Score:     300,
		Successes: 3,
		Attempts:  5,
		Accuracy:  60,
		HighScore: 300,
		NewBest:   true,
	}, false)
	out := strings.Join(lines, "\n")
	for _, want := range []string{"Score        300", "Accuracy   60.0%", "New high score!"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryLinesWithoutBest(t *testing.T) {
	lines := SummaryLines(game.Summary{Score: 100, HighScore: 300}, false)
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
}

func TestRenderHighScore(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHighScore(&buf, 1200, ShouldUseColor(&buf)); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, game.HighScoreStorage) || !strings.Contains(out, "1200") {
		t.Fatalf("unexpected output: %q", out)
	}
}
