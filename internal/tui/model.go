// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuicount/internal/generator"
	"github.com/verte-zerg/tuicount/internal/locale"
	"github.com/verte-zerg/tuicount/internal/model"
	"github.com/verte-zerg/tuicount/internal/practice"
	"github.com/verte-zerg/tuicount/internal/store"
	"github.com/verte-zerg/tuicount/internal/theme"
)

const tickInterval = 100 * time.Millisecond

type tickMsg struct {
	page int
	at   time.Time
}

// Model implements the Bubble Tea practice UI.
type Model struct {
	settings model.Settings
	store    *store.Store
	gen      *generator.Generator
	theme    theme.Theme
	cat      locale.Catalog
	keys     keyMap
	help     help.Model
	now      func() time.Time

	width  int
	height int

	attempt *practice.Attempt
	page    int
	cursor  int
	saved   bool

	lastErrors  int
	lastTotal   int
	lastSeconds float64
	hasLast     bool

	allSessions int
	allErrors   int
	allSeconds  float64
	allClean    int
}

// NewModel constructs a practice TUI model.
func NewModel(settings model.Settings, st *store.Store, gen *generator.Generator, th theme.Theme, cat locale.Catalog) *Model {
	m := &Model{
		settings: settings,
		store:    st,
		gen:      gen,
		theme:    th,
		cat:      cat,
		keys:     newKeyMap(cat),
		help:     help.New(),
		now:      time.Now,
		attempt:  practice.New(),
	}
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case tea.KeyMsg:
		switch m.attempt.State() {
		case practice.Ready:
			return m, m.handleReadyKey(msg)
		case practice.InProgress:
			return m, m.handlePracticeKey(msg)
		default:
			return m, m.handleResultKey(msg)
		}
	default:
		return m, nil
	}
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.page != m.page || m.attempt.State() != practice.InProgress {
		return nil
	}
	if m.attempt.Tick(msg.at) {
		return nil
	}
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	page := m.page
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{page: page, at: t}
	})
}

func (m *Model) handleReadyKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Start):
		return m.startPage()
	}
	return nil
}

func (m *Model) handlePracticeKey(msg tea.KeyMsg) tea.Cmd {
	now := m.now()
	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case key.Matches(msg, m.keys.Abort):
		m.attempt.Reset()
		return nil
	case key.Matches(msg, m.keys.Check):
		m.checkCurrent(now)
		return nil
	case key.Matches(msg, m.keys.CheckAll):
		m.attempt.Submit(now)
		return nil
	case key.Matches(msg, m.keys.Negative):
		m.attempt.ToggleNegative(m.cursor)
		return nil
	case key.Matches(msg, m.keys.Erase):
		text := m.attempt.AnswerText(m.cursor)
		if text != "" {
			m.attempt.SetAnswer(m.cursor, text[:len(text)-1])
		}
		return nil
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return nil
	case msg.Type == tea.KeyRunes:
		m.attempt.SetAnswer(m.cursor, m.attempt.AnswerText(m.cursor)+string(msg.Runes))
		return nil
	}
	return nil
}

// checkCurrent checks the focused answer and moves on. The page is
// submitted once every problem has an answer and the last row was checked.
func (m *Model) checkCurrent(now time.Time) {
	if m.attempt.Check(m.cursor) == practice.Unchecked {
		return
	}
	if next := m.nextUnchecked(); next >= 0 {
		m.cursor = next
		return
	}
	if m.attempt.AllAnswered() {
		m.attempt.Submit(now)
	}
}

func (m *Model) nextUnchecked() int {
	n := m.attempt.Len()
	for step := 1; step <= n; step++ {
		i := (m.cursor + step) % n
		if m.attempt.Result(i) == practice.Unchecked {
			return i
		}
	}
	return -1
}

func (m *Model) moveCursor(delta int) {
	n := m.attempt.Len()
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
}

func (m *Model) handleResultKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Restart):
		m.saveSession()
		return m.startPage()
	case key.Matches(msg, m.keys.SaveQuit):
		m.saveSession()
		return tea.Quit
	}
	return nil
}

func (m *Model) startPage() tea.Cmd {
	problems := m.gen.Generate(m.settings.ExamplesPerPage, m.settings.CountingRange, m.settings.Operations)
	m.page++
	m.cursor = 0
	m.saved = false
	m.attempt.Start(problems, m.settings.DeadlineSeconds, m.now())
	return m.tick()
}

func (m *Model) saveSession() {
	if m.saved || m.attempt.State() != practice.Finished {
		return
	}
	session, err := m.attempt.Session(m.settings, m.now())
	if err != nil {
		logErrf("failed to build session: %v\n", err)
		return
	}
	m.saved = true
	if m.store != nil {
		if _, err := m.store.InsertSession(context.Background(), session); err != nil {
			logErrf("failed to save session: %v\n", err)
		}
	}
	m.recordSession(session)
}

// SaveFinished stores a finished but unsaved page, for use after the program exits.
func (m *Model) SaveFinished() {
	m.saveSession()
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	sessions, err := m.store.ListSessions(context.Background(), store.SessionFilter{DifficultyKey: m.settings.DifficultyKey()})
	if err != nil {
		logErrf("failed to load session stats: %v\n", err)
		return
	}
	for _, s := range sessions {
		m.recordSession(s)
	}
}

func (m *Model) recordSession(s model.PracticeSession) {
	m.lastErrors = s.ErrorCount
	m.lastTotal = s.TotalProblems
	m.lastSeconds = s.DurationSeconds
	m.hasLast = true
	m.allSessions++
	m.allErrors += s.ErrorCount
	m.allSeconds += s.DurationSeconds
	if s.IsCleanSheet {
		m.allClean++
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	var bindings []key.Binding
	switch m.attempt.State() {
	case practice.Ready:
		content = m.renderReady()
		bindings = m.keys.readyHelp()
	case practice.InProgress:
		content = m.renderPractice()
		bindings = m.keys.practiceHelp()
	default:
		content = m.renderResult()
		bindings = m.keys.resultHelp()
	}
	hints := m.help.ShortHelpView(bindings)
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{content, hints, footer}, "\n")
	}
	if m.height < 4 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, content)
	hintLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, hints)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + hintLine + "\n" + footerLine
}

func (m *Model) renderReady() string {
	deadline := m.cat.T("Deadline: Off")
	if m.settings.DeadlineSeconds > 0 {
		deadline = fmt.Sprintf("%s %d s", m.cat.T("Time"), m.settings.DeadlineSeconds)
	}
	lines := []string{
		m.theme.Mascot,
		"",
		m.theme.Title().Render(m.cat.T("Ready to practice?")),
		m.cat.Difficulty(m.settings.DifficultyKey()),
		m.theme.Faint().Render(deadline),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderPractice() string {
	now := m.now()
	header := m.theme.Title().Render(m.attempt.Clock(now))
	if m.attempt.HasDeadline() {
		bar := deadlineBar(m.attempt.DeadlineProgress(now), deadlineBarWidth)
		left := fmt.Sprintf("%d %s", m.attempt.RemainingSeconds(now), m.cat.T("s left"))
		header += "  " + m.theme.Highlight().Render(bar) + "  " + m.theme.Faint().Render(left)
	}
	rows := m.renderRows(true)
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{header, ""}, rows...)...)
}

func (m *Model) renderResult() string {
	errors := m.attempt.ErrorCount()
	total := m.attempt.Len()
	lines := []string{}
	if errors == 0 {
		lines = append(lines, m.theme.Celebrate, m.theme.Good().Bold(true).Render(m.cat.T("Clean Sheet!")))
	} else {
		lines = append(lines, m.theme.Mascot)
	}
	if m.attempt.Expired() {
		lines = append(lines, m.theme.Bad().Bold(true).Render(m.cat.T("Time's up!")))
	}
	lines = append(lines,
		fmt.Sprintf("%s: %s", m.cat.T("Time"), m.attempt.Clock(m.now())),
		fmt.Sprintf("%s: %d / %d", m.cat.T("Errors"), errors, total),
	)
	if errors > 0 {
		lines = append(lines, fmt.Sprintf("%s: %d / %d", m.cat.T("Correct"), total-errors, total))
	}
	summary := lipgloss.JoinVertical(lipgloss.Center, lines...)
	rows := lipgloss.JoinVertical(lipgloss.Left, m.renderRows(false)...)
	return lipgloss.JoinVertical(lipgloss.Center, summary, "", rows)
}

func (m *Model) renderRows(showCursor bool) []string {
	problems := m.attempt.Problems()
	layout := newRowLayout(problems)
	out := make([]string, 0, len(problems))
	for i, p := range problems {
		marker := "  "
		if showCursor && i == m.cursor {
			marker = m.theme.Highlight().Render("› ")
		}
		answer := formatAnswer(m.attempt.AnswerText(i), m.attempt.Negative(i))
		field := padRight(answer, layout.answerWidth)
		mark := " "
		switch m.attempt.Result(i) {
		case practice.Correct:
			field = m.theme.Good().Render(field)
			mark = m.theme.Good().Render("✓")
		case practice.Wrong:
			field = m.theme.Bad().Render(field)
			mark = m.theme.Bad().Render("✗")
		default:
			if showCursor && i == m.cursor {
				field = m.theme.Highlight().Underline(true).Render(field)
			}
		}
		out = append(out, marker+layout.problem(p)+" "+field+" "+mark)
	}
	return out
}

func (m *Model) renderFooter() string {
	segments := []string{}
	if m.attempt.State() == practice.InProgress {
		segments = append(segments, fmt.Sprintf("%d/%d", m.answeredCount(), m.attempt.Len()))
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("%s %d/%d %s · %s", m.cat.T("Last"), m.lastErrors, m.lastTotal, m.cat.T("errors"), formatSeconds(m.lastSeconds)))
	}
	if m.allSessions > 0 {
		avgErrors := float64(m.allErrors) / float64(m.allSessions)
		avgSeconds := m.allSeconds / float64(m.allSessions)
		segments = append(segments, fmt.Sprintf("%s %d %s · %.1f %s · %s · %d %s",
			m.cat.T("All-time"), m.allSessions, m.cat.T("sessions"), avgErrors, m.cat.T("errors"),
			formatSeconds(avgSeconds), m.allClean, m.theme.Celebrate))
	}
	if len(segments) == 0 {
		return ""
	}
	return m.theme.Faint().Render(strings.Join(segments, "  "))
}

func (m *Model) answeredCount() int {
	count := 0
	for i := 0; i < m.attempt.Len(); i++ {
		if m.attempt.AnswerText(i) != "" {
			count++
		}
	}
	return count
}

func formatSeconds(seconds float64) string {
	return practice.FormatClock(time.Duration(seconds * float64(time.Second)))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
