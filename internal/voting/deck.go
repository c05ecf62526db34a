// Package voting holds the candidate queue behind the voting view.
//
// A Deck is either Idle (no candidates, a fetch is due or in flight) or
// Presenting (one candidate shown). A successful vote advances by exactly one
// candidate; running off the end of the queue drops back to Idle and asks the
// caller to fetch a fresh batch. Deck does no I/O and is not safe for
// concurrent use; the UI update loop owns it.
package voting

import (
	"errors"

	"github.com/five82/catvote/internal/catapi"
)

// State is the deck's position in the voting state machine.
type State int

const (
	Idle State = iota
	Presenting
)

func (s State) String() string {
	if s == Presenting {
		return "presenting"
	}
	return "idle"
}

var (
	// ErrBusy is returned when a vote or fetch is already in flight.
	ErrBusy = errors.New("vote already in flight")
	// ErrNoCandidate is returned when there is nothing to vote on.
	ErrNoCandidate = errors.New("no candidate to vote on")
)

// Tally counts successful votes in the current session.
type Tally struct {
	Likes    int
	Dislikes int
	Loves    int
}

func (t *Tally) add(v catapi.Vote) {
	switch v {
	case catapi.VoteLike:
		t.Likes++
	case catapi.VoteDislike:
		t.Dislikes++
	case catapi.VoteLove:
		t.Loves++
	}
}

// Total returns the number of recorded votes.
func (t Tally) Total() int {
	return t.Likes + t.Dislikes + t.Loves
}

// Deck is the in-memory candidate queue.
type Deck struct {
	queue    []catapi.Cat
	index    int
	fetching bool
	voting   bool
	tally    Tally
}

// State reports Idle or Presenting.
func (d *Deck) State() State {
	if d.index < len(d.queue) {
		return Presenting
	}
	return Idle
}

// Current returns the candidate on display.
func (d *Deck) Current() (catapi.Cat, bool) {
	if d.State() != Presenting {
		return catapi.Cat{}, false
	}
	return d.queue[d.index], true
}

// Position returns the 1-based position of the current candidate and the queue length.
func (d *Deck) Position() (int, int) {
	if d.State() != Presenting {
		return 0, len(d.queue)
	}
	return d.index + 1, len(d.queue)
}

// Fetching reports whether a queue fetch is in flight.
func (d *Deck) Fetching() bool { return d.fetching }

// Voting reports whether a vote submission is in flight.
func (d *Deck) Voting() bool { return d.voting }

// Tally returns the session vote counts.
func (d *Deck) Tally() Tally { return d.tally }

// NeedsFetch reports whether the deck is Idle with no fetch in flight.
func (d *Deck) NeedsFetch() bool {
	return d.State() == Idle && !d.fetching
}

// BeginFetch marks a fetch as in flight. It returns false when one already is,
// so callers issue at most one request per exhaustion.
func (d *Deck) BeginFetch() bool {
	if d.fetching {
		return false
	}
	d.fetching = true
	return true
}

// Replace swaps in a new queue and resets the index to zero.
func (d *Deck) Replace(cats []catapi.Cat) {
	d.queue = append([]catapi.Cat(nil), cats...)
	d.index = 0
	d.fetching = false
}

// FetchFailed clears the in-flight flag and keeps the previous state.
func (d *Deck) FetchFailed() {
	d.fetching = false
}

// BeginVote validates a vote on the current candidate and returns the request
// to send. A candidate without an id is rejected with catapi.ErrMissingID and
// the deck is left unchanged.
func (d *Deck) BeginVote(v catapi.Vote) (catapi.VoteRequest, error) {
	if d.voting || d.fetching {
		return catapi.VoteRequest{}, ErrBusy
	}
	if !v.Valid() {
		return catapi.VoteRequest{}, catapi.ErrInvalidVote
	}
	cat, ok := d.Current()
	if !ok {
		return catapi.VoteRequest{}, ErrNoCandidate
	}
	if cat.ID == "" {
		return catapi.VoteRequest{}, catapi.ErrMissingID
	}
	d.voting = true
	return catapi.VoteRequest{ImageID: cat.ID, ImageURL: cat.URL, Vote: v}, nil
}

// VoteSucceeded advances past the voted candidate. It returns true when the
// queue is exhausted; the deck is then Idle with a fetch marked in flight.
func (d *Deck) VoteSucceeded(req catapi.VoteRequest) bool {
	d.voting = false
	cat, ok := d.Current()
	if !ok || cat.ID != req.ImageID {
		return false
	}
	d.tally.add(req.Vote)
	d.index++
	if d.index < len(d.queue) {
		return false
	}
	d.queue = nil
	d.index = 0
	return d.BeginFetch()
}

// VoteFailed clears the in-flight flag; the same candidate stays on display.
func (d *Deck) VoteFailed() {
	d.voting = false
}
