// Package favorites holds the state of the favorites grid.
package favorites

import (
	"time"

	"github.com/five82/catvote/internal/catapi"
)

// FadeDelay is how long a removed item stays on screen, faded, before it is dropped.
const FadeDelay = 300 * time.Millisecond

// EmptyMessage replaces the grid when there are no favorites.
const EmptyMessage = "No favorite cats yet! Press ♥ while voting to add some."

// Item is one grid cell.
type Item struct {
	catapi.Favorite
	Info     *catapi.ImageInfo // set once the image probe succeeds
	Removing bool              // delete request in flight
	Fading   bool              // deleted, waiting for FadeDelay
}

// Panel is a read-through view of the backend favorites list. It is rebuilt
// on every load and never cached beyond that.
type Panel struct {
	items   []Item
	loaded  bool
	loading bool
	seq     uint64
}

// BeginLoad starts a reload and returns the sequence the response must carry.
func (p *Panel) BeginLoad() uint64 {
	p.seq++
	p.loading = true
	return p.seq
}

// Set replaces the grid with favs when seq is the latest load.
func (p *Panel) Set(seq uint64, favs []catapi.Favorite) bool {
	if seq != p.seq {
		return false
	}
	p.loading = false
	p.loaded = true
	p.items = make([]Item, 0, len(favs))
	for _, f := range favs {
		p.items = append(p.items, Item{Favorite: f})
	}
	return true
}

// LoadFailed ends the load for seq and keeps whatever was shown before.
func (p *Panel) LoadFailed(seq uint64) {
	if seq == p.seq {
		p.loading = false
	}
}

// Seq returns the sequence of the latest load.
func (p *Panel) Seq() uint64 { return p.seq }

// Loading reports whether a load is in flight.
func (p *Panel) Loading() bool { return p.loading }

// Empty reports whether a load finished and left nothing to show.
func (p *Panel) Empty() bool { return p.loaded && len(p.items) == 0 }

// Items returns the grid cells in backend order.
func (p *Panel) Items() []Item { return p.items }

// URLs returns the image URLs of every cell, for probing.
func (p *Panel) URLs() []string {
	out := make([]string, len(p.items))
	for i, it := range p.items {
		out[i] = it.URL
	}
	return out
}

// ApplyProbes attaches probe results to the load identified by seq. Items
// whose image failed to load are removed outright and the number removed is
// returned.
func (p *Panel) ApplyProbes(seq uint64, results []catapi.ProbeResult) int {
	if seq != p.seq {
		return 0
	}
	byURL := make(map[string]catapi.ProbeResult, len(results))
	for _, res := range results {
		byURL[res.Info.URL] = res
	}
	kept := p.items[:0]
	removed := 0
	for _, it := range p.items {
		res, ok := byURL[it.URL]
		if ok && res.Err != nil {
			removed++
			continue
		}
		if ok {
			info := res.Info
			it.Info = &info
		}
		kept = append(kept, it)
	}
	p.items = kept
	return removed
}

// BeginRemove marks id as being deleted. It returns false when id is not in
// the grid or a delete for it is already in flight.
func (p *Panel) BeginRemove(id string) bool {
	i := p.find(id)
	if i < 0 || p.items[i].Removing || p.items[i].Fading {
		return false
	}
	p.items[i].Removing = true
	return true
}

// RemoveSucceeded starts the fade for id. The caller drops it after FadeDelay.
func (p *Panel) RemoveSucceeded(id string) bool {
	i := p.find(id)
	if i < 0 {
		return false
	}
	p.items[i].Removing = false
	p.items[i].Fading = true
	return true
}

// RemoveFailed leaves id in the grid.
func (p *Panel) RemoveFailed(id string) {
	if i := p.find(id); i >= 0 {
		p.items[i].Removing = false
	}
}

// Drop removes a faded item. It returns true when the grid is now empty and
// the panel should reload to show the empty state.
func (p *Panel) Drop(id string) bool {
	i := p.find(id)
	if i < 0 || !p.items[i].Fading {
		return false
	}
	p.items = append(p.items[:i], p.items[i+1:]...)
	return len(p.items) == 0
}

func (p *Panel) find(id string) int {
	for i, it := range p.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
