package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Edit        key.Binding
	Cycle       key.Binding
	Unset       key.Binding
	Detect      key.Binding
	Backup      key.Binding
	Restore     key.Binding
	DeleteFile  key.Binding
	Search      key.Binding
	ClearFilter key.Binding
	ApplyAll    key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit value"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("space"),
			key.WithHelp("space", "cycle/toggle"),
		),
		Unset: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unset"),
		),
		Detect: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "detect tools"),
		),
		Backup: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "backup"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
		DeleteFile: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete file"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear search"),
		),
		ApplyAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "apply all"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
