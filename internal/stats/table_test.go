package stats

import "testing"

func TestAlignFields(t *testing.T) {
	lines := alignFields([]field{
		{"Item", "Value"},
		{"Score", "300"},
		{"Accuracy", "60.0%"},
	})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Item     Value" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Score      300" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Accuracy 60.0%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestAlignFieldsCountsWideKana(t *testing.T) {
	lines := alignFields([]field{{"さくら", "1"}, {"ab", "2"}})
	if lines[1] != "ab     2" {
		t.Fatalf("expected kana to count as double width, got %q", lines[1])
	}
}

func TestAlignFieldsEmpty(t *testing.T) {
	if lines := alignFields(nil); len(lines) != 0 {
		t.Fatalf("expected no lines, got %v", lines)
	}
}
