package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/catvote/internal/breeds"
	"github.com/five82/catvote/internal/catapi"
)

const (
	pickerWidth     = 30
	noBreedSelected = "Select a breed"
)

func newTextInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 40
	ti.Prompt = "/"
	return ti
}

func (m *Model) reloadBreeds() tea.Cmd {
	m.breedsLoading = true
	return fetchBreedsCmd(m.ctx, m.api)
}

// pickerOptions returns the filtered list; picker row 0 is the empty choice
// and row i maps to options[i-1].
func (m Model) pickerOptions() []catapi.BreedSummary {
	return breeds.Filter(m.browser.List(), m.filterInput.Value())
}

func (m *Model) clampPicker() {
	maxRow := len(m.pickerOptions())
	if m.picker.cursor > maxRow {
		m.picker.cursor = maxRow
	}
	if m.picker.cursor < 0 {
		m.picker.cursor = 0
	}
}

// selectBreed changes the selection and asks for its detail when needed.
func (m *Model) selectBreed(id string) tea.Cmd {
	seq, fetch := m.browser.Select(id)
	if !fetch {
		return nil
	}
	m.log.Debug().Str("breed", id).Uint64("seq", seq).Msg("loading breed detail")
	return fetchBreedDetailCmd(m.ctx, m.api, seq, id)
}

// pointPickerAt moves the cursor to id in the unfiltered list.
func (m *Model) pointPickerAt(id string) {
	for i, b := range m.pickerOptions() {
		if b.ID == id {
			m.picker.cursor = i + 1
			return
		}
	}
}

func (m Model) handleBreeds(msg breedsMsg) (tea.Model, tea.Cmd) {
	m.breedsLoading = false
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Msg("fetch breeds failed")
		m.setNotice("Could not load breeds.", false)
		return m, nil
	}
	id, ok := m.browser.SetList(msg.breeds)
	m.log.Info().Int("count", len(msg.breeds)).Msg("breeds loaded")
	m.clampPicker()
	if !ok {
		return m, nil
	}
	m.pointPickerAt(id)
	return m, m.selectBreed(id)
}

func (m Model) handleBreedDetail(msg breedDetailMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.browser.Fail(msg.seq) {
			m.log.Error().Err(msg.err).Uint64("seq", msg.seq).Msg("load breed detail failed")
		}
		return m, nil
	}
	applied, start := m.browser.Apply(msg.seq, msg.breed)
	if !applied {
		m.log.Debug().Uint64("seq", msg.seq).Msg("dropping stale breed detail")
		return m, nil
	}
	// The slideshow only runs while its tab is visible.
	if m.tab != TabBreeds {
		m.browser.Pause()
		start = false
	}
	cmds := []tea.Cmd{m.probeCurrentSlide()}
	if start {
		cmds = append(cmds, m.scheduleSlides())
	}
	return m, tea.Batch(cmds...)
}

// scheduleSlides arms the next tick for the current slideshow generation.
func (m *Model) scheduleSlides() tea.Cmd {
	slides := m.browser.Slideshow()
	if !slides.Running() {
		return nil
	}
	return m.slideTickCmd(slides.Gen(), slides.Interval())
}

func (m *Model) probeCurrentSlide() tea.Cmd {
	img, ok := m.browser.Slideshow().Current()
	if !ok {
		return nil
	}
	return m.probe(img)
}

func (m Model) handleSlideTick(msg slideTickMsg) (tea.Model, tea.Cmd) {
	advanced, live := m.browser.Slideshow().Tick(msg.gen, m.tab == TabBreeds)
	if !live {
		return m, nil
	}
	var cmds []tea.Cmd
	if advanced {
		cmds = append(cmds, m.probeCurrentSlide())
	}
	cmds = append(cmds, m.slideTickCmd(msg.gen, m.browser.Slideshow().Interval()))
	return m, tea.Batch(cmds...)
}

// stepSlide moves the slideshow manually, which restarts its timer.
func (m Model) stepSlide(forward bool) (tea.Model, tea.Cmd) {
	slides := m.browser.Slideshow()
	var moved bool
	if forward {
		moved = slides.Next()
	} else {
		moved = slides.Prev()
	}
	if !moved {
		return m, nil
	}
	return m, tea.Batch(m.probeCurrentSlide(), m.scheduleSlides())
}

func (m Model) handleBreedsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.picker.cursor > 0 {
			m.picker.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.picker.cursor < len(m.pickerOptions()) {
			m.picker.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.picker.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.picker.cursor = len(m.pickerOptions())
	case key.Matches(msg, m.keys.Confirm):
		return m, m.confirmPicker()
	case key.Matches(msg, m.keys.Clear):
		m.picker.cursor = 0
		return m, m.selectBreed("")
	case key.Matches(msg, m.keys.Filter):
		m.picker.filtering = true
		return m, m.filterInput.Focus()
	case key.Matches(msg, m.keys.PrevImage):
		return m.stepSlide(false)
	case key.Matches(msg, m.keys.NextImage):
		return m.stepSlide(true)
	case key.Matches(msg, m.keys.Wiki):
		if url := m.browser.Detail().WikiURL; url != "" {
			return m, openCmd(m.open, url)
		}
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadBreeds()
	}
	return m, nil
}

// confirmPicker selects the row under the cursor.
func (m *Model) confirmPicker() tea.Cmd {
	opts := m.pickerOptions()
	if m.picker.cursor <= 0 || m.picker.cursor > len(opts) {
		return m.selectBreed("")
	}
	id := opts[m.picker.cursor-1].ID
	if id == m.browser.Selected() {
		return nil
	}
	return m.selectBreed(id)
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.picker.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.pointPickerAt(m.browser.Selected())
		m.clampPicker()
		return m, nil
	case tea.KeyEnter:
		m.picker.filtering = false
		m.filterInput.Blur()
		if m.picker.cursor == 0 && len(m.pickerOptions()) > 0 {
			m.picker.cursor = 1
		}
		return m, m.confirmPicker()
	case tea.KeyUp:
		if m.picker.cursor > 0 {
			m.picker.cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.picker.cursor < len(m.pickerOptions()) {
			m.picker.cursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.picker.cursor = 0
	if len(m.pickerOptions()) > 0 {
		m.picker.cursor = 1
	}
	return m, cmd
}

// renderBreeds renders the picker beside the detail panel.
func (m Model) renderBreeds() string {
	innerWidth := m.width - 2
	left := m.renderPicker(pickerWidth)
	detailWidth := innerWidth - pickerWidth - 2
	if detailWidth < 20 {
		return left
	}
	right := m.renderBreedDetail(detailWidth)
	gap := NewBgStyle(m.theme.FocusBg).Spaces(2)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
}

func (m Model) renderPicker(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	var lines []string
	if m.picker.filtering || m.filterInput.Value() != "" {
		lines = append(lines, m.filterInput.View())
	}
	if !m.browser.ListReady() {
		if m.breedsLoading {
			lines = append(lines, bg.Render(m.spinner.View()+" Loading breeds...", styles.MutedText))
		} else {
			lines = append(lines, bg.Render("No breeds loaded.", styles.MutedText))
		}
		return strings.Join(lines, "\n")
	}

	opts := m.pickerOptions()
	rows := make([]string, 0, len(opts)+1)
	rows = append(rows, noBreedSelected)
	for _, b := range opts {
		rows = append(rows, b.Name)
	}

	// Scroll so the cursor stays visible.
	visible := m.height - 6 - len(lines)
	if visible < 3 {
		visible = 3
	}
	start := 0
	if m.picker.cursor >= visible {
		start = m.picker.cursor - visible + 1
	}

	selected := m.browser.Selected()
	for i := start; i < len(rows) && i < start+visible; i++ {
		marker := "  "
		if i > 0 && opts[i-1].ID == selected {
			marker = "● "
		} else if i == 0 && selected == "" {
			marker = "● "
		}
		text := truncate(marker+rows[i], width)
		switch {
		case i == m.picker.cursor:
			lines = append(lines, styles.Selected.Width(width).Render(text))
		case i == 0:
			lines = append(lines, bg.FillLine(bg.Render(text, styles.FaintText), width))
		default:
			lines = append(lines, bg.FillLine(bg.Render(text, styles.Text), width))
		}
	}
	if len(opts) == 0 {
		lines = append(lines, bg.Render("no match", styles.FaintText))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderBreedDetail(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	d := m.browser.Detail()

	switch {
	case d.Loading:
		return bg.Render(m.spinner.View()+" Loading breed...", styles.MutedText)
	case d.Error != "":
		return bg.Render(d.Error, styles.DangerText)
	case !d.Visible:
		return bg.Render("Pick a breed to see its details.", styles.FaintText)
	}

	var b strings.Builder
	b.WriteString(bg.Render(d.Name, styles.AccentText.Bold(true)))
	if d.Origin != "" {
		b.WriteString(bg.Space())
		b.WriteString(bg.Render(d.Origin, styles.MutedText))
	}
	b.WriteString("\n\n")

	desc := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color(m.theme.Text)).
		Background(lipgloss.Color(m.theme.FocusBg)).
		Render(d.Description)
	b.WriteString(desc)
	b.WriteString("\n\n")

	if d.WikiURL != "" {
		b.WriteString(bg.Render("w", styles.AccentText))
		b.WriteString(bg.Sep(":"))
		b.WriteString(bg.Render("Wikipedia", styles.MutedText))
		b.WriteString(bg.Space())
		b.WriteString(bg.Render(truncateMiddle(d.WikiURL, width-12), styles.InfoText))
		b.WriteString("\n\n")
	}

	if d.Image != "" {
		current, _ := m.browser.Slideshow().Current()
		b.WriteString(m.renderImageCard(current, d.Image, width, styles, bg))
		b.WriteString("\n")
		if len(d.Dots) > 0 {
			b.WriteString(renderDots(d.Dots, styles, bg))
			b.WriteString("\n")
		}
	}
	for _, notice := range d.Notices {
		b.WriteString(bg.Render(notice, styles.MutedText))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderDots(dots []bool, styles Styles, bg BgStyle) string {
	parts := make([]string, len(dots))
	for i, on := range dots {
		if on {
			parts[i] = bg.Render("●", styles.AccentText)
		} else {
			parts[i] = bg.Render("○", styles.FaintText)
		}
	}
	return bg.Join(parts, " ")
}
