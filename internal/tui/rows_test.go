package tui

import (
	"testing"

	"github.com/verte-zerg/tuicount/internal/model"
)

func TestRowLayoutAlignsOperands(t *testing.T) {
	problems := []model.Problem{
		{Operand1: 3, Operand2: 14, Operation: model.OpAdd, CorrectAnswer: 17},
		{Operand1: 120, Operand2: 5, Operation: model.OpSubtract, CorrectAnswer: 115},
	}
	layout := newRowLayout(problems)
	if got := layout.problem(problems[0]); got != "  3 + 14 =" {
		t.Fatalf("unexpected row %q", got)
	}
	if got := layout.problem(problems[1]); got != "120 -  5 =" {
		t.Fatalf("unexpected row %q", got)
	}
	if layout.answerWidth != minAnswerWidth {
		t.Fatalf("expected answer width %d, got %d", minAnswerWidth, layout.answerWidth)
	}
}

func TestRowLayoutWidensForLongAnswers(t *testing.T) {
	layout := newRowLayout([]model.Problem{{Operand1: 999, Operand2: 1, Operation: model.OpAdd, CorrectAnswer: 1000}})
	if layout.answerWidth != 5 {
		t.Fatalf("expected answer width 5, got %d", layout.answerWidth)
	}
}

func TestPadding(t *testing.T) {
	if got := padLeft("7", 3); got != "  7" {
		t.Fatalf("unexpected padLeft %q", got)
	}
	if got := padRight("-7", 4); got != "-7  " {
		t.Fatalf("unexpected padRight %q", got)
	}
	if got := padRight("12345", 3); got != "12345" {
		t.Fatalf("expected no truncation, got %q", got)
	}
	if got := formatAnswer("12", true); got != "-12" {
		t.Fatalf("unexpected answer %q", got)
	}
}

func TestDeadlineBar(t *testing.T) {
	cases := []struct {
		progress float64
		want     string
	}{
		{0, "░░░░"},
		{0.5, "██░░"},
		{1, "████"},
		{2, "████"},
		{-1, "░░░░"},
	}
	for _, tc := range cases {
		if got := deadlineBar(tc.progress, 4); got != tc.want {
			t.Fatalf("deadlineBar(%v) = %q, want %q", tc.progress, got, tc.want)
		}
	}
	if deadlineBar(0.5, 0) != "" {
		t.Fatalf("expected empty bar for zero width")
	}
}
