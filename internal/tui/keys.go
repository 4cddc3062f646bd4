package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/verte-zerg/tuicount/internal/locale"
)

type keyMap struct {
	Start    key.Binding
	Up       key.Binding
	Down     key.Binding
	Check    key.Binding
	CheckAll key.Binding
	Negative key.Binding
	Erase    key.Binding
	Restart  key.Binding
	Quit     key.Binding
	Abort    key.Binding
	SaveQuit key.Binding
}

func newKeyMap(cat locale.Catalog) keyMap {
	return keyMap{
		Start:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", cat.T("Start!"))),
		Up:       key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑", "previous")),
		Down:     key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("↓", "next")),
		Check:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", cat.T("Check"))),
		CheckAll: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", cat.T("Check All"))),
		Negative: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "sign")),
		Erase:    key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "erase")),
		Restart:  key.NewBinding(key.WithKeys("enter", "r"), key.WithHelp("enter", cat.T("Save & restart"))),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Abort:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "abandon page")),
		SaveQuit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", cat.T("Save & quit"))),
	}
}

func (k keyMap) readyHelp() []key.Binding {
	return []key.Binding{k.Start, k.Quit}
}

func (k keyMap) practiceHelp() []key.Binding {
	return []key.Binding{k.Check, k.Negative, k.Up, k.Down, k.CheckAll, k.Abort}
}

func (k keyMap) resultHelp() []key.Binding {
	return []key.Binding{k.Restart, k.SaveQuit}
}
