package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the logo, the tab strip and the session tally.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("catvote", styles.Logo)}

	tabs := make([]string, 0, len(tabOrder))
	for i, t := range tabOrder {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == m.tab {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(label))
		}
	}
	parts = append(parts, strings.Join(tabs, bg.Space()))

	if t := m.deck.Tally(); t.Total() > 0 {
		parts = append(parts,
			bg.Render(fmt.Sprintf("👍 %d", t.Likes), styles.SuccessText)+bg.Space()+
				bg.Render(fmt.Sprintf("👎 %d", t.Dislikes), styles.DangerText)+bg.Space()+
				bg.Render(fmt.Sprintf("♥ %d", t.Loves), styles.AccentText))
	}

	if m.notice != "" {
		style := styles.WarningText
		if m.noticeOK {
			style = styles.SuccessText
		}
		parts = append(parts, bg.Render(truncate(m.notice, 60), style))
	}

	content := strings.Join(parts, bg.Spaces(2))
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(content)
}

// renderCommandBar renders the command hints for the active tab.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.tab {
	case TabBreeds:
		if m.picker.filtering {
			commands = []cmd{
				{"enter", "Select"},
				{"↑/↓", "Move"},
				{"esc", "Cancel"},
			}
			break
		}
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Select"},
			{"/", "Filter"},
			{"←/→", "Image"},
			{"w", "Wikipedia"},
			{"esc", "Clear"},
			{"?", "More"},
		}
	case TabFavorites:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"x", "Remove"},
			{"o", "Open"},
			{"r", "Reload"},
			{"?", "More"},
		}
	case TabLog:
		followLabel := "Pause"
		if !m.logFollow {
			followLabel = "Follow"
		}
		commands = []cmd{
			{"Space", followLabel},
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"r", "Reload"},
			{"?", "More"},
		}
	default: // TabVoting
		commands = []cmd{
			{"l", "Like"},
			{"d", "Dislike"},
			{"f", "Favorite"},
			{"o", "Open"},
			{"1-4", "Tabs"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
