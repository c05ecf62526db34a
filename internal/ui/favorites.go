package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/catvote/internal/favorites"
)

// reloadFavorites replaces the grid with a fresh load from the backend.
func (m *Model) reloadFavorites() tea.Cmd {
	seq := m.panel.BeginLoad()
	return fetchFavoritesCmd(m.ctx, m.api, seq)
}

func (m *Model) clampFavCursor() {
	n := len(m.panel.Items())
	if m.favCursor >= n {
		m.favCursor = n - 1
	}
	if m.favCursor < 0 {
		m.favCursor = 0
	}
}

func (m Model) handleFavorites(msg favoritesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.panel.LoadFailed(msg.seq)
		m.log.Warn().Err(msg.err).Msg("fetch favorites failed")
		m.setNotice("Could not load favorites.", false)
		return m, nil
	}
	if !m.panel.Set(msg.seq, msg.favs) {
		return m, nil
	}
	m.log.Info().Int("count", len(msg.favs)).Msg("favorites loaded")
	m.clampFavCursor()
	urls := m.panel.URLs()
	if len(urls) == 0 {
		return m, nil
	}
	return m, probeFavoritesCmd(m.ctx, m.api, msg.seq, urls)
}

func (m Model) handleFavoriteProbes(msg favoriteProbesMsg) (tea.Model, tea.Cmd) {
	for _, res := range msg.results {
		if res.Err != nil {
			m.log.Warn().Err(res.Err).Str("url", res.Info.URL).Msg("favorite image failed to load; hiding it")
		}
	}
	if removed := m.panel.ApplyProbes(msg.seq, msg.results); removed > 0 {
		m.log.Debug().Int("removed", removed).Msg("dropped broken favorites")
	}
	m.clampFavCursor()
	return m, nil
}

func (m Model) handleRemoveFavorite(msg removeFavoriteMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.panel.RemoveFailed(msg.id)
		m.log.Error().Err(msg.err).Str("favorite_id", msg.id).Msg("remove favorite failed")
		m.setNotice("Could not remove favorite.", false)
		return m, nil
	}
	if !m.panel.RemoveSucceeded(msg.id) {
		return m, nil
	}
	m.log.Info().Str("favorite_id", msg.id).Msg("favorite removed")
	return m, m.fadeCmd(msg.id)
}

func (m Model) handleFadeDone(msg fadeDoneMsg) (tea.Model, tea.Cmd) {
	emptied := m.panel.Drop(msg.id)
	m.clampFavCursor()
	if emptied {
		return m, m.reloadFavorites()
	}
	return m, nil
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.panel.Items()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.favCursor > 0 {
			m.favCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.favCursor < len(items)-1 {
			m.favCursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.favCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.favCursor = len(items) - 1
		m.clampFavCursor()
	case key.Matches(msg, m.keys.Remove):
		if m.favCursor < 0 || m.favCursor >= len(items) {
			return m, nil
		}
		id := items[m.favCursor].ID
		if !m.panel.BeginRemove(id) {
			return m, nil
		}
		m.log.Debug().Str("favorite_id", id).Msg("removing favorite")
		return m, deleteFavoriteCmd(m.ctx, m.api, id)
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadFavorites()
	}
	return m, nil
}

// renderFavorites renders one card per favorite.
func (m Model) renderFavorites() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	width := m.width - 4

	items := m.panel.Items()
	if len(items) == 0 {
		switch {
		case m.panel.Empty():
			return lipgloss.Place(width, m.height-6, lipgloss.Center, lipgloss.Center,
				bg.Render(favorites.EmptyMessage, styles.MutedText),
				lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.FocusBg)))
		case m.panel.Loading():
			return bg.Render(m.spinner.View()+" Loading favorites...", styles.MutedText)
		}
		return bg.Render("Favorites are unavailable. Press r to retry.", styles.MutedText)
	}

	var b strings.Builder
	b.WriteString(bg.Render(fmt.Sprintf("%d favorite", len(items))+plural(len(items)), styles.AccentText.Bold(true)))
	b.WriteString("\n\n")
	for i, it := range items {
		b.WriteString(m.renderFavoriteRow(it, i == m.favCursor, width, styles, bg))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderFavoriteRow(it favorites.Item, selected bool, width int, styles Styles, bg BgStyle) string {
	dims := "…"
	if it.Info != nil {
		dims = it.Info.Dimensions()
	}
	text := fmt.Sprintf("♥ %-12s %-9s %s", truncate(it.ID, 12), dims, truncateMiddle(it.URL, width-28))

	switch {
	case it.Fading:
		return bg.FillLine(bg.Render(text, styles.FaintText.Strikethrough(true)), width)
	case it.Removing:
		text += "  removing..."
	}
	if selected {
		return styles.Selected.Width(width).Render(text)
	}
	return bg.FillLine(bg.Render(text, styles.Text), width)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
