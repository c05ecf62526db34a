package ui

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/catvote/internal/breeds"
	"github.com/five82/catvote/internal/catapi"
	"github.com/five82/catvote/internal/config"
	"github.com/five82/catvote/internal/fakeapi"
	"github.com/five82/catvote/internal/favorites"
)

// harness runs commands synchronously and feeds their messages back into the
// model. Timer messages are parked until fire is called.
type harness struct {
	t      *testing.T
	m      Model
	timers []tea.Msg
}

func newHarness(t *testing.T, store *fakeapi.Store, mutate func(*Options)) *harness {
	t.Helper()
	srv := httptest.NewServer(fakeapi.NewServer("", store).Handler())
	t.Cleanup(srv.Close)

	client, err := catapi.NewClient(srv.URL)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "catvote.log")

	opts := Options{
		Context:   context.Background(),
		Client:    client,
		Logger:    zerolog.Nop(),
		Config:    cfg,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		After: func(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
			return func() tea.Msg { return fn(time.Now()) }
		},
	}
	if mutate != nil {
		mutate(&opts)
	}

	h := &harness{t: t, m: New(opts)}
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	h.run(h.m.Init())
	return h
}

func (h *harness) send(msg tea.Msg) {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	h.run(cmd)
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case slideTickMsg, fadeDoneMsg, logTickMsg:
		h.timers = append(h.timers, msg)
	case spinner.TickMsg, tea.QuitMsg:
	default:
		h.send(msg)
	}
}

// fire delivers the timers that are currently pending, once each.
func (h *harness) fire() {
	pending := h.timers
	h.timers = nil
	for _, msg := range pending {
		h.send(msg)
	}
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		switch k {
		case "esc":
			h.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "enter":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "down":
			h.send(tea.KeyMsg{Type: tea.KeyDown})
		case "up":
			h.send(tea.KeyMsg{Type: tea.KeyUp})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

// view renders the model without escape sequences.
func (h *harness) view() string {
	return ansi.Strip(h.m.View())
}

func pendingSlideTicks(h *harness) int {
	n := 0
	for _, msg := range h.timers {
		if _, ok := msg.(slideTickMsg); ok {
			n++
		}
	}
	return n
}

func TestInitLoadsFirstBatch(t *testing.T) {
	h := newHarness(t, fakeapi.DemoStore(), nil)

	assert.Equal(t, TabVoting, h.m.tab)
	cat, ok := h.m.deck.Current()
	require.True(t, ok)
	assert.Equal(t, "b7a", cat.ID)

	pos, total := h.m.deck.Position()
	assert.Equal(t, 1, pos)
	assert.Equal(t, 5, total)

	state, probed := h.m.images[cat.URL]
	require.True(t, probed)
	require.NoError(t, state.err)
	assert.Equal(t, "64×48", state.info.Dimensions())
}

func TestVoteAdvancesAndRefetchesWhenExhausted(t *testing.T) {
	store := fakeapi.NewStore([]catapi.Cat{
		{ID: "a", URL: "/img/a.png"},
		{ID: "b", URL: "/img/b.png"},
		{ID: "c", URL: "/img/c.png"},
	}, nil, 2)
	h := newHarness(t, store, nil)

	h.press("l")
	cat, _ := h.m.deck.Current()
	assert.Equal(t, "b", cat.ID)

	h.press("d")
	cat, ok := h.m.deck.Current()
	require.True(t, ok, "a new batch should be shown after the last vote")
	assert.Equal(t, "c", cat.ID)

	tally := store.Tally()
	assert.Equal(t, 1, tally[catapi.VoteLike])
	assert.Equal(t, 1, tally[catapi.VoteDislike])
	assert.Equal(t, 2, h.m.deck.Tally().Total())
}

func TestVoteWithoutIDIsNotSent(t *testing.T) {
	store := fakeapi.NewStore([]catapi.Cat{{ID: "", URL: "/img/anon.png"}}, nil, 1)
	h := newHarness(t, store, nil)

	h.press("f")

	assert.Empty(t, store.Tally())
	assert.Empty(t, store.Favorites())
	assert.Equal(t, 0, h.m.deck.Tally().Total())
	assert.NotEmpty(t, h.m.notice)
}

func TestLoveThenFavoritesTab(t *testing.T) {
	h := newHarness(t, fakeapi.DemoStore(), nil)

	h.press("f")
	h.press("3")

	assert.Equal(t, TabFavorites, h.m.tab)
	items := h.m.panel.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b7a", items[0].ID)
	require.NotNil(t, items[0].Info)
}

func TestFavoritesDropBrokenImages(t *testing.T) {
	store := fakeapi.DemoStore()
	require.NoError(t, store.Vote(catapi.VoteRequest{ImageID: "ok", ImageURL: "/img/ok.png", Vote: catapi.VoteLove}))
	require.NoError(t, store.Vote(catapi.VoteRequest{ImageID: "gone", ImageURL: "/img/missing-gone.png", Vote: catapi.VoteLove}))

	h := newHarness(t, store, func(o *Options) { o.StartTab = "favorites" })

	items := h.m.panel.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "ok", items[0].ID)
}

func TestRemovingLastFavoriteShowsEmptyState(t *testing.T) {
	store := fakeapi.DemoStore()
	require.NoError(t, store.Vote(catapi.VoteRequest{ImageID: "only", ImageURL: "/img/only.png", Vote: catapi.VoteLove}))

	h := newHarness(t, store, func(o *Options) { o.StartTab = "favorites" })
	require.Len(t, h.m.panel.Items(), 1)

	h.press("x")
	require.Len(t, h.m.panel.Items(), 1, "item stays while fading")
	assert.True(t, h.m.panel.Items()[0].Fading)
	assert.Empty(t, store.Favorites())

	h.fire()

	assert.True(t, h.m.panel.Empty())
	assert.Contains(t, h.view(), favorites.EmptyMessage)
}

func TestBreedsDefaultSelectionAppliesOnce(t *testing.T) {
	h := newHarness(t, fakeapi.DemoStore(), nil)

	h.press("2")
	assert.Equal(t, "abys", h.m.browser.Selected())
	d := h.m.browser.Detail()
	require.True(t, d.Visible)
	assert.Equal(t, "Abyssinian", d.Name)
	assert.Equal(t, "(Egypt)", d.Origin)
	assert.Len(t, d.Dots, 4)

	// Clear the selection, leave and come back: the list reloads but the
	// default is not applied again.
	h.press("esc")
	assert.Equal(t, "", h.m.browser.Selected())
	h.press("1", "2")
	assert.Equal(t, "", h.m.browser.Selected())
	assert.False(t, h.m.browser.Detail().Visible)
}

func TestSlideshowRunsOnlyOnBreedsTab(t *testing.T) {
	h := newHarness(t, fakeapi.DemoStore(), nil)
	h.press("2")

	slides := h.m.browser.Slideshow()
	require.True(t, slides.Running())
	require.Equal(t, 1, pendingSlideTicks(h))

	h.fire()
	assert.Equal(t, 1, slides.Index())
	require.Equal(t, 1, pendingSlideTicks(h), "exactly one timer stays armed")

	h.press("1")
	assert.False(t, slides.Running())
	h.fire()
	assert.Equal(t, 1, slides.Index(), "stale tick must not advance a paused slideshow")
	assert.Zero(t, pendingSlideTicks(h))

	h.press("2")
	assert.True(t, slides.Running())
	assert.Equal(t, 1, pendingSlideTicks(h))
}

func TestSlideshowManualStepRestartsTimer(t *testing.T) {
	h := newHarness(t, fakeapi.DemoStore(), nil)
	h.press("2")
	slides := h.m.browser.Slideshow()
	before := slides.Gen()

	h.press("]")
	assert.Equal(t, 1, slides.Index())
	assert.NotEqual(t, before, slides.Gen())

	h.press("[", "[")
	assert.Equal(t, 3, slides.Index())

	// Only the timer from the last step is live.
	h.fire()
	assert.Equal(t, 0, slides.Index())
}

func TestBrokenBreedImageUsesPlaceholder(t *testing.T) {
	h := newHarness(t, fakeapi.DemoStore(), nil)
	h.press("2")

	h.m.browser.Slideshow().Select(2)
	h.run(h.m.probeCurrentSlide())

	d := h.m.browser.Detail()
	assert.Equal(t, h.m.cfg.PlaceholderImage, d.Image)
}

func TestPickBreedWithoutImages(t *testing.T) {
	h := newHarness(t, fakeapi.DemoStore(), nil)
	h.press("2")

	// Sorted: Abyssinian, Australian Mist, bambino, Bengal, Siberian.
	require.Equal(t, 1, h.m.picker.cursor)
	h.press("down", "down", "enter")

	assert.Equal(t, "bamb", h.m.browser.Selected())
	d := h.m.browser.Detail()
	require.True(t, d.Visible)
	assert.Equal(t, []string{breeds.NoImageMessage}, d.Notices)
	assert.Empty(t, d.Image)
	assert.Empty(t, d.WikiURL)
	assert.False(t, h.m.browser.Slideshow().Running())
}

func TestSingleImageBreedShowsOneDot(t *testing.T) {
	h := newHarness(t, fakeapi.DemoStore(), nil)
	h.press("2", "down", "down", "down", "enter")

	require.Equal(t, "beng", h.m.browser.Selected())
	assert.Equal(t, []bool{true}, h.m.browser.Detail().Dots)
	assert.False(t, h.m.browser.Slideshow().Running())

	detail := ansi.Strip(h.m.renderBreedDetail(60))
	assert.Equal(t, 1, strings.Count(detail, "●"))
	assert.NotContains(t, detail, "○")
}

func TestBreedFilter(t *testing.T) {
	h := newHarness(t, fakeapi.DemoStore(), nil)
	h.press("2", "/", "s", "i", "b", "enter")

	assert.False(t, h.m.picker.filtering)
	assert.Equal(t, "sibe", h.m.browser.Selected())
	assert.Equal(t, "Siberian", h.m.browser.Detail().Name)
}

func TestStaleBreedDetailIsDropped(t *testing.T) {
	h := newHarness(t, fakeapi.DemoStore(), nil)
	h.press("2")

	stale, _ := h.m.browser.Select("beng")
	latest, _ := h.m.browser.Select("sibe")
	h.send(breedDetailMsg{seq: latest, breed: catapi.Breed{ID: "sibe", Name: "Siberian", Images: []string{"/x.png"}}})
	h.send(breedDetailMsg{seq: stale, breed: catapi.Breed{ID: "beng", Name: "Bengal"}})

	assert.Equal(t, "Siberian", h.m.browser.Detail().Name)
}

func TestLogTabShowsParsedEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catvote.log")
	line := `{"level":"warn","component":"ui","url":"http://x/1.png","time":"2026-10-14T09:00:00Z","message":"image failed to load"}`
	require.NoError(t, os.WriteFile(path, []byte(line+"\n"), 0o644))

	h := newHarness(t, fakeapi.DemoStore(), func(o *Options) { o.Config.LogFile = path })
	h.press("4")

	require.Len(t, h.m.logEntries, 1)
	assert.Equal(t, "image failed to load", h.m.logEntries[0].Message)
	assert.Contains(t, h.view(), "image failed to load")

	h.press(" ")
	assert.False(t, h.m.logFollow)
}

func TestTabCyclingAndHelp(t *testing.T) {
	h := newHarness(t, fakeapi.DemoStore(), nil)

	h.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabBreeds, h.m.tab)
	h.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabVoting, h.m.tab)
	h.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabLog, h.m.tab)

	h.press("?")
	assert.True(t, h.m.showHelp)
	assert.Contains(t, h.view(), "Keyboard Shortcuts")
	h.press("q")
	assert.False(t, h.m.showHelp)
}

func TestViewRendersEveryTab(t *testing.T) {
	h := newHarness(t, fakeapi.DemoStore(), nil)
	for _, k := range []string{"1", "2", "3", "4"} {
		h.press(k)
		view := h.view()
		assert.Contains(t, view, h.m.tab.String())
		assert.Contains(t, view, "catvote")
	}
}

func TestCycleThemeSavesPrefs(t *testing.T) {
	h := newHarness(t, fakeapi.DemoStore(), nil)
	h.press("T")

	assert.Equal(t, "Slate", h.m.theme.Name)
	data, err := os.ReadFile(h.m.prefsPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Slate"))
}

func TestOpenUsesCurrentImage(t *testing.T) {
	var opened string
	h := newHarness(t, fakeapi.DemoStore(), func(o *Options) {
		o.Open = func(url string) error { opened = url; return nil }
	})
	h.press("o")

	cat, _ := h.m.deck.Current()
	assert.Equal(t, cat.URL, opened)
}
