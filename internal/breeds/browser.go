// Package breeds models the breed browser: the sorted picker list, the
// one-time default selection and the detail panel with its slideshow.
package breeds

import (
	"strings"
	"time"

	"github.com/five82/catvote/internal/catapi"
	"github.com/five82/catvote/internal/slideshow"
)

// Texts rendered when the backend leaves a field empty or a load fails.
const (
	UnknownName       = "Unknown Breed"
	NoDescription     = "Description not available."
	NoImageMessage    = "There's no image for this breed."
	DetailLoadFailure = "Error loading breed details"
)

// Browser holds breed list and detail state. It does no I/O; callers issue
// the requests it asks for and feed results back with the sequence it handed out.
type Browser struct {
	list      []catapi.BreedSummary
	listReady bool
	defaulted bool

	selected string
	seq      uint64
	loading  bool
	failed   bool
	breed    *catapi.Breed

	noImage     bool
	placeholder string
	broken      map[string]bool

	slides *slideshow.Slideshow
}

// NewBrowser returns an empty browser. placeholder replaces images that fail
// to load; interval is the slideshow tick period.
func NewBrowser(placeholder string, interval time.Duration) *Browser {
	return &Browser{
		placeholder: placeholder,
		broken:      make(map[string]bool),
		slides:      slideshow.New(interval),
	}
}

// Slideshow exposes the slideshow owned by the detail panel.
func (b *Browser) Slideshow() *slideshow.Slideshow { return b.slides }

// List returns the sorted breed list.
func (b *Browser) List() []catapi.BreedSummary { return b.list }

// ListReady reports whether a breed list has been loaded.
func (b *Browser) ListReady() bool { return b.listReady }

// Selected returns the id of the selected breed, or "".
func (b *Browser) Selected() string { return b.selected }

// SetList sorts and stores list. On the first call only, it also looks for
// DefaultBreed and returns its id for the caller to select.
func (b *Browser) SetList(list []catapi.BreedSummary) (string, bool) {
	b.list = Sort(list)
	b.listReady = true
	if b.defaulted {
		return "", false
	}
	b.defaulted = true
	def, ok := Find(b.list, DefaultBreed)
	if !ok || def.ID == "" {
		return "", false
	}
	return def.ID, true
}

// Select picks a breed. An empty id hides the detail panel and returns
// fetch=false. Otherwise the panel enters the loading state, the slideshow
// is cleared, and seq identifies the detail request the caller must send.
func (b *Browser) Select(id string) (seq uint64, fetch bool) {
	id = strings.TrimSpace(id)
	b.slides.Clear()
	b.seq++
	b.selected = id
	b.failed = false
	if id == "" {
		b.loading = false
		b.breed = nil
		return b.seq, false
	}
	b.loading = true
	return b.seq, true
}

// Apply stores a detail response. Responses for anything but the latest
// request are dropped and Apply returns false. On success the slideshow is
// loaded; startTimer reports whether the caller should schedule ticks.
func (b *Browser) Apply(seq uint64, breed catapi.Breed) (applied, startTimer bool) {
	if seq != b.seq || !b.loading {
		return false, false
	}
	b.loading = false
	b.breed = &breed
	b.slides.Load(breed.Images)
	if len(breed.Images) == 0 {
		b.noImage = true
		return true, false
	}
	b.noImage = false
	return true, b.slides.Start()
}

// Fail records a failed detail request. Stale failures are ignored.
func (b *Browser) Fail(seq uint64) bool {
	if seq != b.seq || !b.loading {
		return false
	}
	b.loading = false
	b.failed = true
	return true
}

// MarkBroken records that url failed to load; it is shown as the placeholder.
func (b *Browser) MarkBroken(url string) {
	if url != "" {
		b.broken[url] = true
	}
}

// Resume restarts the slideshow after returning to the breed tab. It returns
// false when no image set is loaded.
func (b *Browser) Resume() bool {
	if b.loading || b.breed == nil || b.slides.Len() == 0 {
		return false
	}
	return b.slides.Start()
}

// Pause clears the slideshow timer when leaving the breed tab.
func (b *Browser) Pause() { b.slides.Stop() }

// Detail is the render model of the detail panel.
type Detail struct {
	Visible bool
	Loading bool
	Error   string

	Name        string
	Origin      string
	Description string
	WikiURL     string // empty hides the link

	Image   string // empty hides the image
	Notices []string
	Dots    []bool
}

// Detail builds the render model for the current state.
func (b *Browser) Detail() Detail {
	var d Detail
	switch {
	case b.selected == "":
		return d
	case b.loading:
		d.Loading = true
		return d
	case b.failed:
		d.Error = DetailLoadFailure
		return d
	case b.breed == nil:
		return d
	}

	br := b.breed
	d.Visible = true
	d.Name = strings.TrimSpace(br.Name)
	if d.Name == "" {
		d.Name = UnknownName
	}
	if origin := strings.TrimSpace(br.Origin); origin != "" {
		d.Origin = "(" + origin + ")"
	}
	d.Description = strings.TrimSpace(br.Description)
	if d.Description == "" {
		d.Description = NoDescription
	}
	d.WikiURL = strings.TrimSpace(br.WikipediaURL)

	if img, ok := b.slides.Current(); ok {
		d.Image = img
		if b.broken[img] && b.placeholder != "" {
			d.Image = b.placeholder
		}
		d.Dots = b.slides.Dots()
	}
	if b.noImage {
		d.Notices = []string{NoImageMessage}
	}
	return d
}
