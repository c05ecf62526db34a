package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/catvote/internal/logtail"
)

// reloadLog reads the log file now and, when following, keeps re-reading it.
func (m *Model) reloadLog() tea.Cmd {
	m.logGen++
	path := m.cfg.LogPath()
	if path == "" {
		return nil
	}
	cmds := []tea.Cmd{readLogCmd(path, m.logGen, logBufferLimit)}
	if m.logFollow {
		cmds = append(cmds, m.logTickCmd(m.logGen))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	if msg.gen != m.logGen {
		return
	}
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Msg("read log file failed")
		return
	}
	m.logEntries = msg.entries
	m.updateLogViewport()
}

func (m Model) handleLogTick(msg logTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.logGen || m.tab != TabLog || !m.logFollow {
		return m, nil
	}
	path := m.cfg.LogPath()
	return m, tea.Batch(readLogCmd(path, m.logGen, logBufferLimit), m.logTickCmd(m.logGen))
}

// initLogViewport initializes the log viewport.
func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(m.width-4, m.height-4)
	m.logViewport.Style = lipgloss.NewStyle()
}

// updateLogViewport updates the log viewport with current content.
func (m *Model) updateLogViewport() {
	if m.width == 0 {
		return
	}
	if m.logViewport.Width == 0 {
		m.initLogViewport()
	}
	// Box height = m.height - 2 (header, cmdbar); inner = box - 2 borders.
	m.logViewport.Width = m.width - 4
	m.logViewport.Height = m.height - 4
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.SetContent(m.renderLogContent())
	if m.logFollow {
		m.logViewport.GotoBottom()
	}
}

// renderLogContent renders the parsed log entries, one per line.
func (m *Model) renderLogContent() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles()
	if len(m.logEntries) == 0 {
		return bg.Render("No log entries yet.", styles.FaintText)
	}
	lines := make([]string, 0, len(m.logEntries))
	for _, e := range m.logEntries {
		lines = append(lines, m.formatLogEntry(e, styles, bg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) formatLogEntry(e logtail.Entry, styles Styles, bg BgStyle) string {
	if e.Level == "" && e.Time.IsZero() {
		return bg.Render(e.Raw, styles.Text)
	}

	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(bg.Render(e.Time.Format("15:04:05"), styles.FaintText))
		b.WriteString(bg.Space())
	}
	level := strings.ToUpper(e.Level)
	b.WriteString(bg.Render(padRight(level, 5), m.getLevelStyle(level, styles).Bold(true)))
	if e.Component != "" {
		b.WriteString(bg.Space())
		b.WriteString(bg.Render("["+e.Component+"]", styles.AccentText))
	}
	b.WriteString(bg.Space())
	b.WriteString(bg.Render(e.Message, styles.Text))
	for _, k := range e.FieldKeys() {
		b.WriteString(bg.Space())
		b.WriteString(bg.Render(k+"=", styles.MutedText))
		b.WriteString(bg.Render(e.Fields[k], styles.Text))
	}
	if e.Error != "" {
		b.WriteString(bg.Space())
		b.WriteString(bg.Render("error="+e.Error, styles.DangerText))
	}
	return b.String()
}

// getLevelStyle returns the style for a log level.
func (m *Model) getLevelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "INFO":
		return styles.SuccessText
	case "WARN":
		return styles.WarningText
	case "ERROR", "FATAL", "PANIC":
		return styles.DangerText
	case "DEBUG", "TRACE":
		return styles.InfoText
	default:
		return styles.Text
	}
}

// handleLogKey processes keyboard input for the log tab.
func (m Model) handleLogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logFollow = !m.logFollow
		if m.logFollow {
			return m, m.reloadLog()
		}
		m.logGen++
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadLog()

	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m.pauseLog()

	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		if !m.logFollow {
			m.logFollow = true
			return m, m.reloadLog()
		}

	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
		return m.pauseLog()

	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
		return m.pauseLog()

	case key.Matches(msg, m.keys.PageDown):
		m.logViewport.PageDown()
		return m.pauseLog()

	case key.Matches(msg, m.keys.PageUp):
		m.logViewport.PageUp()
		return m.pauseLog()
	}
	return m, nil
}

// pauseLog stops following so manual scrolling is not undone by a refresh.
func (m Model) pauseLog() (tea.Model, tea.Cmd) {
	if m.logFollow {
		m.logFollow = false
		m.logGen++
	}
	return m, nil
}
