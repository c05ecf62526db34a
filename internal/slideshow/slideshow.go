// Package slideshow drives the auto-advancing breed image set.
//
// The timer is modeled as a generation counter rather than a handle: every
// Start or Stop bumps the generation, and a tick only counts when it carries
// the current one. Whoever schedules ticks (the UI) tags each with Gen(), so
// at most one timer is ever live no matter how many ticks are still queued.
package slideshow

import "time"

// DefaultInterval is the tick period between automatic advances.
const DefaultInterval = 3 * time.Second

// Slideshow holds the images of the displayed breed and the current index.
type Slideshow struct {
	images   []string
	index    int
	gen      uint64
	running  bool
	interval time.Duration
}

// New returns an empty slideshow that ticks every interval.
// A non-positive interval falls back to DefaultInterval.
func New(interval time.Duration) *Slideshow {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Slideshow{interval: interval}
}

// Interval returns the tick period.
func (s *Slideshow) Interval() time.Duration { return s.interval }

// Load replaces the image set, resets the index and clears the timer.
func (s *Slideshow) Load(images []string) {
	s.Stop()
	s.images = append([]string(nil), images...)
	s.index = 0
}

// Clear drops the image set and the timer.
func (s *Slideshow) Clear() { s.Load(nil) }

// Images returns the loaded image set.
func (s *Slideshow) Images() []string { return s.images }

// Len returns the number of loaded images.
func (s *Slideshow) Len() int { return len(s.images) }

// Index returns the current index; it is always valid when Len() > 0.
func (s *Slideshow) Index() int { return s.index }

// Current returns the image on display.
func (s *Slideshow) Current() (string, bool) {
	if len(s.images) == 0 {
		return "", false
	}
	return s.images[s.index], true
}

// Running reports whether a timer is live.
func (s *Slideshow) Running() bool { return s.running }

// Gen returns the generation a scheduled tick must carry to be honored.
func (s *Slideshow) Gen() uint64 { return s.gen }

// Start clears any existing timer and arms a new one. It returns false when
// there is nothing to cycle through (fewer than two images); the caller then
// schedules nothing.
func (s *Slideshow) Start() bool {
	s.Stop()
	if len(s.images) < 2 {
		return false
	}
	s.running = true
	return true
}

// Stop clears the timer. Ticks already scheduled become stale.
func (s *Slideshow) Stop() {
	s.gen++
	s.running = false
}

// Tick handles a timer firing with generation gen. active reports whether the
// breed view is the visible tab. It returns whether the index advanced and
// whether the tick belongs to the live timer and should be rescheduled.
// An inactive tick never changes the index.
func (s *Slideshow) Tick(gen uint64, active bool) (advanced, live bool) {
	if !s.running || gen != s.gen {
		return false, false
	}
	if !active || len(s.images) == 0 {
		return false, true
	}
	s.show((s.index + 1) % len(s.images))
	return true, true
}

// Select jumps to image i and restarts the timer. It returns false and
// changes nothing when i is out of range.
func (s *Slideshow) Select(i int) bool {
	if i < 0 || i >= len(s.images) {
		return false
	}
	s.show(i)
	s.Start()
	return true
}

// Next and Prev step one image and restart the timer, wrapping at the ends.
func (s *Slideshow) Next() bool {
	if len(s.images) == 0 {
		return false
	}
	return s.Select((s.index + 1) % len(s.images))
}

func (s *Slideshow) Prev() bool {
	if len(s.images) == 0 {
		return false
	}
	return s.Select((s.index - 1 + len(s.images)) % len(s.images))
}

// Dots returns one flag per image with exactly the current one set.
func (s *Slideshow) Dots() []bool {
	dots := make([]bool, len(s.images))
	if len(dots) > 0 {
		dots[s.index] = true
	}
	return dots
}

func (s *Slideshow) show(i int) {
	s.index = i
}
