// Package theme defines the color palettes and mascots of the interface.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette with its mascot and celebration glyphs.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Correct   lipgloss.Color
	Wrong     lipgloss.Color
	Mascot    string
	Celebrate string
}

var themes = map[string]Theme{
	"dinosaur": {
		Name:      "dinosaur",
		Primary:   lipgloss.Color("#1ABC9C"),
		Secondary: lipgloss.Color("#FF6B6B"),
		Accent:    lipgloss.Color("#FFD93D"),
		Mascot:    "🦕",
		Celebrate: "🎉",
	},
	"unicorn": {
		Name:      "unicorn",
		Primary:   lipgloss.Color("#C770DB"),
		Secondary: lipgloss.Color("#87CEFA"),
		Accent:    lipgloss.Color("#FFD700"),
		Mascot:    "🦄",
		Celebrate: "✨",
	},
	"penguin": {
		Name:      "penguin",
		Primary:   lipgloss.Color("#59738C"),
		Secondary: lipgloss.Color("#F28C40"),
		Accent:    lipgloss.Color("#4DBFD9"),
		Mascot:    "🐧",
		Celebrate: "❄️",
	},
}

// Get returns the named theme, case-insensitively.
func Get(name string) (Theme, error) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	t.Muted = lipgloss.Color("#8C8C8C")
	t.Correct = lipgloss.Color("#2ECC71")
	t.Wrong = lipgloss.Color("#FF4D4F")
	return t, nil
}

// MustGet returns the named theme or the dinosaur theme.
func MustGet(name string) Theme {
	t, err := Get(name)
	if err != nil {
		t, _ = Get("dinosaur")
	}
	return t
}

// Title styles headings.
func (t Theme) Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
}

// Highlight styles the selected row or tab.
func (t Theme) Highlight() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}

// Faint styles secondary text.
func (t Theme) Faint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}

// Good styles correct answers and clean sheets.
func (t Theme) Good() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Correct)
}

// Bad styles wrong answers and expired deadlines.
func (t Theme) Bad() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Wrong)
}

// Card styles a bordered metric card.
func (t Theme) Card() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		Padding(0, 1)
}

// ChartColors returns the bar colors for the error, time and clean-sheet charts.
func (t Theme) ChartColors() []lipgloss.Color {
	return []lipgloss.Color{t.Secondary, t.Primary, t.Accent}
}
