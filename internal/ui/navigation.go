package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/catvote/internal/prefs"
)

// Tab identifies a top-level view.
type Tab int

const (
	TabVoting Tab = iota
	TabBreeds
	TabFavorites
	TabLog
)

var tabOrder = []Tab{TabVoting, TabBreeds, TabFavorites, TabLog}

func (t Tab) String() string {
	switch t {
	case TabVoting:
		return "Voting"
	case TabBreeds:
		return "Breeds"
	case TabFavorites:
		return "Favorites"
	case TabLog:
		return "Log"
	}
	return "Unknown"
}

func (t Tab) next() Tab { return tabOrder[(int(t)+1)%len(tabOrder)] }
func (t Tab) prev() Tab { return tabOrder[(int(t)-1+len(tabOrder))%len(tabOrder)] }

// parseTab maps a prefs start_tab value to a Tab, defaulting to voting.
func parseTab(name string) Tab {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range prefs.Tabs {
		if n == name {
			return Tab(i)
		}
	}
	return TabVoting
}

// switchTab activates t. Only one tab is visible at a time, and each tab
// kicks off its own load when it becomes visible:
//
//   - Voting fetches a batch only when the deck is empty.
//   - Breeds reloads the list every time and resumes a paused slideshow.
//   - Favorites reloads every time.
//   - Log re-reads the log file and starts following it.
//
// Leaving Breeds pauses the slideshow; leaving Log stops its refresh timer.
func (m *Model) switchTab(t Tab) tea.Cmd {
	prev := m.tab
	if prev == TabBreeds && t != TabBreeds {
		m.browser.Pause()
	}
	if prev == TabLog && t != TabLog {
		m.logGen++
	}
	m.tab = t
	m.showHelp = false

	switch t {
	case TabVoting:
		return m.fetchCatsIfNeeded()

	case TabBreeds:
		cmds := []tea.Cmd{m.reloadBreeds()}
		if prev != TabBreeds && m.browser.Resume() {
			cmds = append(cmds, m.scheduleSlides())
		}
		return tea.Batch(cmds...)

	case TabFavorites:
		return m.reloadFavorites()

	case TabLog:
		return m.reloadLog()
	}
	return nil
}
