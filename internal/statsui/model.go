// Package statsui provides the Bubble Tea dashboard.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuicount/internal/locale"
	"github.com/verte-zerg/tuicount/internal/model"
	"github.com/verte-zerg/tuicount/internal/stats"
	"github.com/verte-zerg/tuicount/internal/store"
	"github.com/verte-zerg/tuicount/internal/theme"
)

const fallbackWidth = 80

// Model implements the Bubble Tea dashboard.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig
	theme theme.Theme
	cat   locale.Catalog
	now   func() time.Time

	report stats.Report
	errMsg string

	frames    []model.TimeFrame
	activeTab int
	viewport  viewport.Model

	width  int
	height int

	activeNavStyle   lipgloss.Style
	inactiveNavStyle lipgloss.Style
	cardTitleStyle   lipgloss.Style
	cardValueStyle   lipgloss.Style
}

// NewModel constructs a dashboard model.
func NewModel(st *store.Store, cfg model.StatsConfig, th theme.Theme, cat locale.Catalog) *Model {
	m := &Model{
		store:    st,
		cfg:      cfg,
		theme:    th,
		cat:      cat,
		now:      time.Now,
		frames:   model.AllTimeFrames(),
		viewport: viewport.New(0, 0),
	}
	want := cfg.TimeFrame
	if want == "" {
		want = model.FrameWeek
	}
	for i, frame := range m.frames {
		if frame == want {
			m.activeTab = i
		}
	}
	m.cfg.TimeFrame = m.frames[m.activeTab]
	m.initStyles()
	m.loadReport()
	return m
}

func (m *Model) initStyles() {
	nav := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder(), true)
	m.activeNavStyle = nav.Bold(true).Foreground(m.theme.Accent).BorderForeground(m.theme.Primary)
	m.inactiveNavStyle = nav.Foreground(m.theme.Muted).BorderForeground(m.theme.Muted)
	m.cardTitleStyle = m.theme.Faint()
	m.cardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary)
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
		m.updateLayout()
		m.renderContent()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, nil
		case "right", "l":
			m.moveTab(1)
			return m, nil
		case "[":
			m.cycleKey(-1)
			return m, nil
		case "]":
			m.cycleKey(1)
			return m, nil
		case "r":
			m.loadReport()
			return m, nil
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.viewport.View(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Report returns the report currently displayed.
func (m *Model) Report() stats.Report {
	return m.report
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(m.activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.viewport.Width = m.width
	m.viewport.Height = bodyHeight
}

func (m *Model) moveTab(delta int) {
	count := len(m.frames)
	m.activeTab = ((m.activeTab+delta)%count + count) % count
	m.cfg.TimeFrame = m.frames[m.activeTab]
	m.reaggregate()
}

func (m *Model) cycleKey(delta int) {
	if len(m.report.Keys) < 2 {
		return
	}
	m.cfg.DifficultyKey = stats.NextKey(m.report.Keys, m.report.DifficultyKey, delta)
	m.reaggregate()
}

// loadReport reads the session history from the store.
func (m *Model) loadReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg, m.now())
	if err != nil {
		m.errMsg = err.Error()
		m.report = stats.Report{TimeFrame: m.cfg.TimeFrame}
		m.renderContent()
		return
	}
	m.errMsg = ""
	m.report = report
	m.renderContent()
}

// reaggregate recomputes metrics from the loaded sessions.
func (m *Model) reaggregate() {
	m.report = stats.NewReport(m.report.Sessions, m.cfg, m.now())
	m.renderContent()
	m.viewport.GotoTop()
}

func (m *Model) renderContent() {
	width := m.width
	if width <= 0 {
		width = fallbackWidth
	}
	if m.errMsg != "" {
		m.viewport.SetContent("Failed to load stats.")
		return
	}
	m.viewport.SetContent(m.renderOverview(width))
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.frames))
	for i, frame := range m.frames {
		if i == m.activeTab {
			parts = append(parts, m.activeNavStyle.Render(m.cat.Frame(frame)))
		} else {
			parts = append(parts, m.inactiveNavStyle.Render(m.cat.Frame(frame)))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	return tabs + "\n" + m.renderSelection()
}

func (m *Model) renderSelection() string {
	key := m.report.DifficultyKey
	if key == "" {
		return m.theme.Faint().Render(truncateLine(m.cat.T("No data yet"), m.width))
	}
	position := ""
	for i, k := range m.report.Keys {
		if k == key {
			position = fmt.Sprintf("  (%d/%d)", i+1, len(m.report.Keys))
		}
	}
	line := fmt.Sprintf("%s %s: %s%s", m.theme.Mascot, m.cat.T("Difficulty"), m.cat.Difficulty(key), position)
	return m.theme.Faint().Render(truncateLine(line, m.width))
}

func (m *Model) renderFooter() string {
	help := m.theme.Faint().Render("Frame: left/right  Difficulty: [/]  Scroll: up/down/pgup/pgdn  Reload: r  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + m.theme.Bad().Render(m.errMsg)
	}
	return help
}

func (m *Model) renderOverview(width int) string {
	metrics := m.report.Metrics
	if metrics.TotalSessions == 0 {
		lines := []string{
			m.theme.Title().Render(m.cat.T("No practice sessions yet")),
			m.cat.T("Complete a practice page to see your stats!"),
		}
		return strings.Join(lines, "\n")
	}
	cards := m.renderSummaryCards(metrics, width)
	charts := m.renderCharts(metrics, width)
	return strings.TrimRight(cards+"\n\n"+charts, "\n")
}

func (m *Model) renderSummaryCards(metrics model.AggregatedMetrics, width int) string {
	cards := []string{
		m.metricCard(m.cat.T("sessions"), fmt.Sprintf("%d", metrics.TotalSessions)),
		m.metricCard(m.cat.T("Average Errors"), fmt.Sprintf("%.1f", metrics.AverageErrors)),
		m.metricCard(m.cat.T("Average Time"), stats.FormatSeconds(metrics.AverageTime)),
		m.metricCard(m.cat.T("Clean Sheets"), fmt.Sprintf("%d %s", metrics.CleanSheetCount, m.theme.Celebrate)),
	}
	if width < fallbackWidth {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m *Model) metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", m.cardTitleStyle.Render(label), m.cardValueStyle.Render(value))
	return m.theme.Card().Render(content)
}

func (m *Model) renderCharts(metrics model.AggregatedMetrics, width int) string {
	charts := stats.Charts(metrics)
	titles := []string{m.cat.T("Average Errors"), m.cat.T("Average Time"), m.cat.T("Clean Sheets")}
	var buf bytes.Buffer
	for i, chart := range charts {
		chart.Title = m.theme.Title().Render(titles[i])
		chart.Buckets = m.localizeLabels(chart.Buckets)
		if err := stats.PlotBarsWithColor(&buf, chart, width, i, true); err != nil {
			return fmt.Sprintf("Failed to render charts: %v", err)
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) localizeLabels(buckets []model.ChartBucket) []model.ChartBucket {
	out := make([]model.ChartBucket, len(buckets))
	for i, b := range buckets {
		out[i] = model.ChartBucket{Label: m.cat.T(b.Label), Value: b.Value}
	}
	return out
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
