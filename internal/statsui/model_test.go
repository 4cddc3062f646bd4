package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuicount/internal/locale"
	"github.com/verte-zerg/tuicount/internal/model"
	"github.com/verte-zerg/tuicount/internal/store"
	"github.com/verte-zerg/tuicount/internal/theme"
)

var testNow = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tuicount.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	sessions := []model.PracticeSession{
		{CompletedAt: testNow.Add(-time.Hour), DurationSeconds: 40, ErrorCount: 0, TotalProblems: 5, DifficultyKey: "20_+_5", CountingRange: 20, Operations: []string{"+"}, ExamplesPerPage: 5},
		{CompletedAt: testNow.AddDate(0, 0, -3), DurationSeconds: 60, ErrorCount: 2, TotalProblems: 5, DifficultyKey: "20_+_5", CountingRange: 20, Operations: []string{"+"}, ExamplesPerPage: 5},
		{CompletedAt: testNow.Add(-2 * time.Hour), DurationSeconds: 90, ErrorCount: 1, TotalProblems: 10, DifficultyKey: "100_+-_10", CountingRange: 100, Operations: []string{"+", "-"}, ExamplesPerPage: 10},
	}
	for _, s := range sessions {
		if _, err := st.InsertSession(context.Background(), s); err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}
	return st
}

func newTestModel(t *testing.T, st *store.Store, cfg model.StatsConfig) *Model {
	t.Helper()
	cat, err := locale.New("en")
	if err != nil {
		t.Fatalf("locale: %v", err)
	}
	m := NewModel(st, cfg, theme.MustGet("dinosaur"), cat)
	m.now = func() time.Time { return testNow }
	m.loadReport()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestDashboardSelectsCurrentKey(t *testing.T) {
	m := newTestModel(t, seededStore(t), model.StatsConfig{CurrentKey: "20_+_5"})
	report := m.Report()
	if report.DifficultyKey != "20_+_5" || report.TimeFrame != model.FrameWeek {
		t.Fatalf("unexpected selection %q %q", report.DifficultyKey, report.TimeFrame)
	}
	if report.Metrics.TotalSessions != 2 || report.Metrics.CleanSheetCount != 1 {
		t.Fatalf("unexpected metrics %+v", report.Metrics)
	}
	view := m.View()
	if !strings.Contains(view, "To 20, +, 5 per page") || !strings.Contains(view, "Average Errors") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestDashboardTabsChangeFrame(t *testing.T) {
	m := newTestModel(t, seededStore(t), model.StatsConfig{CurrentKey: "20_+_5"})
	m.Update(key("left"))
	if got := m.Report(); got.TimeFrame != model.FrameDay || got.Metrics.TotalSessions != 1 {
		t.Fatalf("expected day frame with one session, got %q %d", got.TimeFrame, got.Metrics.TotalSessions)
	}
	m.Update(key("left"))
	if got := m.Report().TimeFrame; got != model.FrameYear {
		t.Fatalf("expected tabs to wrap to year, got %q", got)
	}
	m.Update(key("right"))
	m.Update(key("right"))
	if got := m.Report().TimeFrame; got != model.FrameWeek {
		t.Fatalf("expected week frame, got %q", got)
	}
}

func TestDashboardCyclesDifficultyKeys(t *testing.T) {
	m := newTestModel(t, seededStore(t), model.StatsConfig{CurrentKey: "20_+_5"})
	m.Update(key("]"))
	if got := m.Report().DifficultyKey; got != "100_+-_10" {
		t.Fatalf("expected wrap to first key, got %q", got)
	}
	if !strings.Contains(m.View(), "(1/2)") {
		t.Fatalf("expected key position in header")
	}
	m.Update(key("["))
	if got := m.Report().DifficultyKey; got != "20_+_5" {
		t.Fatalf("expected previous key, got %q", got)
	}
}

func TestDashboardEmptyStore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() {
		_ = st.Close()
	}()
	m := newTestModel(t, st, model.StatsConfig{CurrentKey: "20_+_5"})
	if !strings.Contains(m.View(), "No practice sessions yet") {
		t.Fatalf("expected empty state:\n%s", m.View())
	}
	m.Update(key("]"))
	if got := m.Report().DifficultyKey; got != "20_+_5" {
		t.Fatalf("expected key unchanged without history, got %q", got)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, seededStore(t), model.StatsConfig{})
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestFitLinesAndTruncate(t *testing.T) {
	out := fitLines("ab\ncd\nef", 4, 2)
	if out != "ab  \ncd  " {
		t.Fatalf("unexpected fitLines output %q", out)
	}
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected truncation %q", got)
	}
}
