package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/catvote/internal/catapi"
	"github.com/five82/catvote/internal/voting"
)

// fetchCatsIfNeeded requests a new batch when the deck is empty.
func (m *Model) fetchCatsIfNeeded() tea.Cmd {
	if !m.deck.NeedsFetch() || !m.deck.BeginFetch() {
		return nil
	}
	m.log.Debug().Msg("fetching cats")
	return fetchCatsCmd(m.ctx, m.api)
}

func (m Model) handleCats(msg catsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.deck.FetchFailed()
		m.log.Warn().Err(msg.err).Msg("fetch cats failed")
		m.setNotice("Could not fetch cats. Press r to retry.", false)
		return m, nil
	}
	m.deck.Replace(msg.cats)
	m.log.Info().Int("count", len(msg.cats)).Msg("cats loaded")
	if len(msg.cats) == 0 {
		m.setNotice("The backend returned no cats.", false)
	}
	return m, m.probeCurrentCat()
}

// vote submits v for the displayed candidate.
func (m Model) vote(v catapi.Vote) (tea.Model, tea.Cmd) {
	req, err := m.deck.BeginVote(v)
	switch {
	case err == nil:
		m.log.Debug().Str("image_id", req.ImageID).Str("vote", string(req.Vote)).Msg("submitting vote")
		return m, submitVoteCmd(m.ctx, m.api, req)
	case errors.Is(err, catapi.ErrMissingID):
		m.log.Warn().Msg("candidate has no id; vote not sent")
		m.setNotice("This cat has no id and cannot be voted on.", false)
	case errors.Is(err, voting.ErrBusy), errors.Is(err, voting.ErrNoCandidate):
		// Ignored while a request is in flight or the deck is empty.
	default:
		m.log.Warn().Err(err).Msg("vote rejected")
	}
	return m, nil
}

func (m Model) handleVote(msg voteMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.deck.VoteFailed()
		m.log.Error().Err(msg.err).Str("image_id", msg.req.ImageID).Msg("vote failed")
		m.setNotice("Vote failed. Try again.", false)
		return m, nil
	}

	m.log.Info().Str("image_id", msg.req.ImageID).Str("vote", string(msg.req.Vote)).Msg("vote recorded")
	if msg.req.Vote == catapi.VoteLove {
		m.setNotice("Saved to favorites ♥", true)
	} else {
		m.setNotice("", true)
	}

	if m.deck.VoteSucceeded(msg.req) {
		m.log.Debug().Msg("batch exhausted; fetching more cats")
		return m, fetchCatsCmd(m.ctx, m.api)
	}
	return m, m.probeCurrentCat()
}

// probeCurrentCat fetches dimensions for the displayed candidate once.
func (m *Model) probeCurrentCat() tea.Cmd {
	cat, ok := m.deck.Current()
	if !ok {
		return nil
	}
	return m.probe(cat.URL)
}

func (m *Model) probe(url string) tea.Cmd {
	if url == "" {
		return nil
	}
	if _, seen := m.images[url]; seen {
		return nil
	}
	return probeImageCmd(m.ctx, m.api, url)
}

func (m Model) handleProbe(msg probeMsg) (tea.Model, tea.Cmd) {
	if msg.info.URL == "" {
		msg.info.URL = msg.url
	}
	m.images[msg.url] = imageState{info: msg.info, err: msg.err}
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Str("url", msg.url).Msg("image failed to load")
		m.browser.MarkBroken(msg.url)
	}
	return m, nil
}

func (m Model) handleVotingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Like):
		return m.vote(catapi.VoteLike)
	case key.Matches(msg, m.keys.Dislike):
		return m.vote(catapi.VoteDislike)
	case key.Matches(msg, m.keys.Love):
		return m.vote(catapi.VoteLove)
	case key.Matches(msg, m.keys.Reload):
		return m, m.fetchCatsIfNeeded()
	}
	return m, nil
}

// renderVoting renders the candidate card and the vote buttons.
func (m Model) renderVoting() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	width := m.width - 4

	cat, ok := m.deck.Current()
	if !ok {
		if m.deck.Fetching() {
			return bg.Render(m.spinner.View()+" Fetching cats...", styles.MutedText)
		}
		return bg.Render("No cats to vote on. Press r to fetch more.", styles.MutedText)
	}

	var b strings.Builder
	pos, total := m.deck.Position()
	b.WriteString(bg.Render(fmt.Sprintf("Cat %d of %d", pos, total), styles.AccentText.Bold(true)))
	b.WriteString("\n\n")

	b.WriteString(m.renderImageCard(cat.URL, "", width, styles, bg))
	b.WriteString("\n")
	b.WriteString(keyValue("ID", cat.ID, styles, bg))
	b.WriteString("\n\n")

	buttons := []string{
		m.voteButton("l", "👍 Like", catapi.VoteLike, styles),
		m.voteButton("d", "👎 Dislike", catapi.VoteDislike, styles),
		m.voteButton("f", "♥ Favorite", catapi.VoteLove, styles),
	}
	b.WriteString(strings.Join(buttons, bg.Spaces(2)))
	b.WriteString("\n\n")

	if m.deck.Voting() {
		b.WriteString(bg.Render(m.spinner.View()+" Submitting vote...", styles.MutedText))
		b.WriteString("\n")
	}

	t := m.deck.Tally()
	b.WriteString(bg.Render(fmt.Sprintf("Session: %d liked, %d disliked, %d favorited", t.Likes, t.Dislikes, t.Loves), styles.FaintText))
	return b.String()
}

func (m Model) voteButton(k, label string, v catapi.Vote, styles Styles) string {
	style := styles.VoteStyle(string(v))
	if m.deck.Voting() {
		style = style.Faint(true)
	}
	return style.Render("[" + k + "] " + label)
}

// renderImageCard describes an image the terminal cannot draw: its URL,
// dimensions and format once probed, or the placeholder on failure.
func (m Model) renderImageCard(url, placeholder string, width int, styles Styles, bg BgStyle) string {
	var b strings.Builder
	state, probed := m.images[url]
	switch {
	case !probed:
		b.WriteString(bg.Render(m.spinner.View()+" loading image", styles.MutedText))
	case state.err != nil:
		b.WriteString(bg.Render("image failed to load", styles.DangerText))
		if placeholder == "" {
			placeholder = m.cfg.PlaceholderImage
		}
		if placeholder != "" {
			b.WriteString("\n")
			b.WriteString(keyValue("Placeholder", truncateMiddle(placeholder, width-14), styles, bg))
		}
	default:
		b.WriteString(bg.Render("▣ "+state.info.Dimensions(), styles.SuccessText))
		if state.info.Format != "" {
			b.WriteString(bg.Space())
			b.WriteString(bg.Render(strings.ToUpper(state.info.Format), styles.FaintText))
		}
	}
	b.WriteString("\n")
	b.WriteString(keyValue("URL", truncateMiddle(url, width-6), styles, bg))
	return b.String()
}

func keyValue(k, v string, styles Styles, bg BgStyle) string {
	return bg.Render(k+":", styles.MutedText) + bg.Space() + bg.Render(v, styles.Text)
}
