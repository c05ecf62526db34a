package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Open       key.Binding
	Reload     key.Binding

	// Tab switching
	ViewVoting    key.Binding
	ViewBreeds    key.Binding
	ViewFavorites key.Binding
	ViewLog       key.Binding

	// Voting
	Like    key.Binding
	Dislike key.Binding
	Love    key.Binding

	// Breeds
	Filter    key.Binding
	Confirm   key.Binding
	Clear     key.Binding
	PrevImage key.Binding
	NextImage key.Binding
	Wiki      key.Binding

	// Favorites
	Remove key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Log
	ToggleFollow key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous tab"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open image in browser"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),

		ViewVoting: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Voting"),
		),
		ViewBreeds: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Breeds"),
		),
		ViewFavorites: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Favorites"),
		),
		ViewLog: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Log"),
		),

		Like: key.NewBinding(
			key.WithKeys("l", "+"),
			key.WithHelp("l", "Like"),
		),
		Dislike: key.NewBinding(
			key.WithKeys("d", "-"),
			key.WithHelp("d", "Dislike"),
		),
		Love: key.NewBinding(
			key.WithKeys("f", "*"),
			key.WithHelp("f", "♥ Favorite"),
		),

		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Filter breeds"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Select"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear selection"),
		),
		PrevImage: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("←/[", "Previous image"),
		),
		NextImage: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("→/]", "Next image"),
		),
		Wiki: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Open Wikipedia"),
		),

		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove favorite"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),

		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle follow mode"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewVoting, k.ViewBreeds, k.ViewFavorites, k.ViewLog, k.Tab, k.ShiftTab},
		{k.Like, k.Dislike, k.Love},
		{k.Up, k.Down, k.Filter, k.Confirm, k.Clear, k.PrevImage, k.NextImage, k.Wiki},
		{k.Remove, k.Reload, k.ToggleFollow},
		{k.Open, k.CycleTheme, k.Help, k.Quit},
	}
}
