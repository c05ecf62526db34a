package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/catvote/internal/breeds"
	"github.com/five82/catvote/internal/catapi"
	"github.com/five82/catvote/internal/config"
	"github.com/five82/catvote/internal/favorites"
	"github.com/five82/catvote/internal/logtail"
	"github.com/five82/catvote/internal/prefs"
	"github.com/five82/catvote/internal/voting"
)

const (
	fadeDelay          = favorites.FadeDelay
	logRefreshInterval = 2 * time.Second
	logBufferLimit     = 500
)

// AfterFunc schedules fn to produce a message after d. tea.Tick is the default.
type AfterFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    catapi.API
	Logger    zerolog.Logger
	Config    config.Config
	ThemeName string
	StartTab  string
	PrefsPath string
	Open      func(url string) error
	After     AfterFunc
}

// imageState is the outcome of probing one image URL.
type imageState struct {
	info catapi.ImageInfo
	err  error
}

// pickerState is the breed selector: a cursor over the filtered list, where
// row 0 is the empty "Select a breed" choice.
type pickerState struct {
	cursor    int
	filtering bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	api       catapi.API
	log       zerolog.Logger
	cfg       config.Config
	prefsPath string
	startTab  string
	open      func(string) error
	after     AfterFunc

	// UI state
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	theme    Theme
	tab      Tab
	width    int
	height   int
	ready    bool
	showHelp bool
	notice   string
	noticeOK bool

	// Voting
	deck   *voting.Deck
	images map[string]imageState

	// Breeds
	browser       *breeds.Browser
	breedsLoading bool
	picker        pickerState
	filterInput   textinput.Model

	// Favorites
	panel     *favorites.Panel
	favCursor int

	// Log
	logViewport viewport.Model
	logEntries  []logtail.Entry
	logFollow   bool
	logGen      uint64
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	open := opts.Open
	if open == nil {
		open = func(string) error { return nil }
	}

	after := opts.After
	if after == nil {
		after = func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd { return tea.Tick(d, fn) }
	}

	cfg := opts.Config
	if cfg.SlideInterval <= 0 {
		cfg = config.Default()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		ctx:         ctx,
		api:         opts.Client,
		log:         opts.Logger.With().Str("component", "ui").Logger(),
		cfg:         cfg,
		prefsPath:   prefsPath,
		startTab:    opts.StartTab,
		open:        open,
		after:       after,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		spinner:     sp,
		theme:       GetTheme(themeName),
		tab:         parseTab(opts.StartTab),
		deck:        &voting.Deck{},
		images:      make(map[string]imageState),
		browser:     breeds.NewBrowser(cfg.PlaceholderImage, cfg.SlideInterval),
		filterInput: newTextInput("type to filter"),
		panel:       &favorites.Panel{},
		logFollow:   true,
	}
}

type activateMsg struct{ tab Tab }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	start := m.tab
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return activateMsg{tab: start} },
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initLogViewport()
		}
		m.ready = true
		m.help.Width = msg.Width
		m.updateLogViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case activateMsg:
		m.tab = -1
		return m, m.switchTab(msg.tab)

	case catsMsg:
		return m.handleCats(msg)
	case voteMsg:
		return m.handleVote(msg)
	case probeMsg:
		return m.handleProbe(msg)

	case breedsMsg:
		return m.handleBreeds(msg)
	case breedDetailMsg:
		return m.handleBreedDetail(msg)
	case slideTickMsg:
		return m.handleSlideTick(msg)

	case favoritesMsg:
		return m.handleFavorites(msg)
	case favoriteProbesMsg:
		return m.handleFavoriteProbes(msg)
	case removeFavoriteMsg:
		return m.handleRemoveFavorite(msg)
	case fadeDoneMsg:
		return m.handleFadeDone(msg)

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	case logTickMsg:
		return m.handleLogTick(msg)

	case openedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("url", msg.url).Msg("open in browser failed")
			m.setNotice("Could not open "+truncateMiddle(msg.url, 40), false)
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// The breed filter owns the keyboard while it is focused.
	if m.tab == TabBreeds && m.picker.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.updateLogViewport()
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, StartTab: m.startTab}); err != nil {
				m.log.Warn().Err(err).Msg("save prefs failed")
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m, m.switchTab(m.tab.next())
	case key.Matches(msg, m.keys.ShiftTab):
		return m, m.switchTab(m.tab.prev())
	case key.Matches(msg, m.keys.ViewVoting):
		return m, m.switchTab(TabVoting)
	case key.Matches(msg, m.keys.ViewBreeds):
		return m, m.switchTab(TabBreeds)
	case key.Matches(msg, m.keys.ViewFavorites):
		return m, m.switchTab(TabFavorites)
	case key.Matches(msg, m.keys.ViewLog):
		return m, m.switchTab(TabLog)

	case key.Matches(msg, m.keys.Open):
		if url := m.currentImageURL(); url != "" {
			return m, openCmd(m.open, url)
		}
		return m, nil
	}

	switch m.tab {
	case TabVoting:
		return m.handleVotingKey(msg)
	case TabBreeds:
		return m.handleBreedsKey(msg)
	case TabFavorites:
		return m.handleFavoritesKey(msg)
	case TabLog:
		return m.handleLogKey(msg)
	}
	return m, nil
}

// currentImageURL returns the image the user is looking at, for opening.
func (m Model) currentImageURL() string {
	switch m.tab {
	case TabVoting:
		if cat, ok := m.deck.Current(); ok {
			return cat.URL
		}
	case TabBreeds:
		if img, ok := m.browser.Slideshow().Current(); ok {
			return img
		}
	case TabFavorites:
		items := m.panel.Items()
		if m.favCursor >= 0 && m.favCursor < len(items) {
			return items[m.favCursor].URL
		}
	}
	return ""
}

func (m *Model) setNotice(text string, ok bool) {
	m.notice = strings.TrimSpace(text)
	m.noticeOK = ok
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// renderContent renders the active tab inside a titled frame.
func (m Model) renderContent() string {
	height := m.height - 2
	var body string
	switch m.tab {
	case TabVoting:
		body = m.renderVoting()
	case TabBreeds:
		body = m.renderBreeds()
	case TabFavorites:
		body = m.renderFavorites()
	case TabLog:
		body = m.logViewport.View()
	}
	return m.renderTitledBox(m.tab.String(), body, m.width, height, true)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
