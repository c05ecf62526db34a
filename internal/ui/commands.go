package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/catvote/internal/catapi"
	"github.com/five82/catvote/internal/logtail"
)

// Messages

type catsMsg struct {
	cats []catapi.Cat
	err  error
}

type voteMsg struct {
	req catapi.VoteRequest
	err error
}

type breedsMsg struct {
	breeds []catapi.BreedSummary
	err    error
}

type breedDetailMsg struct {
	seq   uint64
	breed catapi.Breed
	err   error
}

type favoritesMsg struct {
	seq  uint64
	favs []catapi.Favorite
	err  error
}

type favoriteProbesMsg struct {
	seq     uint64
	results []catapi.ProbeResult
}

type removeFavoriteMsg struct {
	id  string
	err error
}

type fadeDoneMsg struct {
	id string
}

// probeMsg reports a single image probe for the voting or breed view.
type probeMsg struct {
	url  string
	info catapi.ImageInfo
	err  error
}

type slideTickMsg struct {
	gen uint64
}

type logLinesMsg struct {
	gen     uint64
	entries []logtail.Entry
	err     error
}

type logTickMsg struct {
	gen uint64
}

type openedMsg struct {
	url string
	err error
}

// Commands

func fetchCatsCmd(ctx context.Context, api catapi.API) tea.Cmd {
	return func() tea.Msg {
		cats, err := api.FetchCats(ctx)
		return catsMsg{cats: cats, err: err}
	}
}

func submitVoteCmd(ctx context.Context, api catapi.API, req catapi.VoteRequest) tea.Cmd {
	return func() tea.Msg {
		return voteMsg{req: req, err: api.SubmitVote(ctx, req)}
	}
}

func fetchBreedsCmd(ctx context.Context, api catapi.API) tea.Cmd {
	return func() tea.Msg {
		breeds, err := api.FetchBreeds(ctx)
		return breedsMsg{breeds: breeds, err: err}
	}
}

func fetchBreedDetailCmd(ctx context.Context, api catapi.API, seq uint64, id string) tea.Cmd {
	return func() tea.Msg {
		breed, err := api.FetchBreedDetail(ctx, id)
		msg := breedDetailMsg{seq: seq, err: err}
		if breed != nil {
			msg.breed = *breed
		}
		return msg
	}
}

func fetchFavoritesCmd(ctx context.Context, api catapi.API, seq uint64) tea.Cmd {
	return func() tea.Msg {
		favs, err := api.FetchFavorites(ctx)
		return favoritesMsg{seq: seq, favs: favs, err: err}
	}
}

func probeFavoritesCmd(ctx context.Context, api catapi.API, seq uint64, urls []string) tea.Cmd {
	return func() tea.Msg {
		return favoriteProbesMsg{seq: seq, results: catapi.ProbeAll(ctx, api, urls, 0)}
	}
}

func deleteFavoriteCmd(ctx context.Context, api catapi.API, id string) tea.Cmd {
	return func() tea.Msg {
		return removeFavoriteMsg{id: id, err: api.DeleteFavorite(ctx, id)}
	}
}

func probeImageCmd(ctx context.Context, api catapi.API, url string) tea.Cmd {
	return func() tea.Msg {
		info, err := api.ProbeImage(ctx, url)
		return probeMsg{url: url, info: info, err: err}
	}
}

func readLogCmd(path string, gen uint64, limit int) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, limit)
		return logLinesMsg{gen: gen, entries: logtail.ParseAll(lines), err: err}
	}
}

func openCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{url: url, err: open(url)}
	}
}

// Timers go through Model.after so tests can fire them without waiting.

func (m Model) slideTickCmd(gen uint64, d time.Duration) tea.Cmd {
	return m.after(d, func(time.Time) tea.Msg { return slideTickMsg{gen: gen} })
}

func (m Model) fadeCmd(id string) tea.Cmd {
	return m.after(fadeDelay, func(time.Time) tea.Msg { return fadeDoneMsg{id: id} })
}

func (m Model) logTickCmd(gen uint64) tea.Cmd {
	return m.after(logRefreshInterval, func(time.Time) tea.Msg { return logTickMsg{gen: gen} })
}
