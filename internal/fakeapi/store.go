package fakeapi

import (
	"fmt"
	"sync"

	"github.com/five82/catvote/internal/catapi"
)

// Store is the in-memory state behind the demo backend.
type Store struct {
	mu        sync.Mutex
	cats      []catapi.Cat
	batchSize int
	cursor    int
	breeds    []catapi.Breed
	favorites []catapi.Favorite
	tally     map[catapi.Vote]int
}

// NewStore returns a store seeded with the given candidates and breeds.
// Image URLs may be relative; the server resolves them against the request host.
func NewStore(cats []catapi.Cat, breeds []catapi.Breed, batchSize int) *Store {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &Store{
		cats:      append([]catapi.Cat(nil), cats...),
		batchSize: batchSize,
		breeds:    append([]catapi.Breed(nil), breeds...),
		tally:     make(map[catapi.Vote]int),
	}
}

// NextCats returns the next batch of candidates, cycling through the pool.
func (s *Store) NextCats() []catapi.Cat {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cats) == 0 {
		return []catapi.Cat{}
	}
	n := min(s.batchSize, len(s.cats))
	out := make([]catapi.Cat, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s.cats[(s.cursor+i)%len(s.cats)])
	}
	s.cursor = (s.cursor + n) % len(s.cats)
	return out
}

// Breeds returns the breed summaries in storage order.
func (s *Store) Breeds() []catapi.BreedSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]catapi.BreedSummary, 0, len(s.breeds))
	for _, b := range s.breeds {
		out = append(out, catapi.BreedSummary{ID: b.ID, Name: b.Name})
	}
	return out
}

// Breed returns the breed with id.
func (s *Store) Breed(id string) (catapi.Breed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.breeds {
		if b.ID == id {
			b.Images = append([]string{}, b.Images...)
			return b, nil
		}
	}
	return catapi.Breed{}, fmt.Errorf("breed not found: %s", id)
}

// Vote records a decision; love also saves the image as a favorite.
func (s *Store) Vote(req catapi.VoteRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Vote == catapi.VoteLove {
		for _, fav := range s.favorites {
			if fav.ID == req.ImageID {
				return fmt.Errorf("already in favorites")
			}
		}
		s.favorites = append(s.favorites, catapi.Favorite{ID: req.ImageID, URL: req.ImageURL})
	}
	s.tally[req.Vote]++
	return nil
}

// Favorites returns a copy of the favorites list.
func (s *Store) Favorites() []catapi.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catapi.Favorite{}, s.favorites...)
}

// RemoveFavorite deletes the favorite with id.
func (s *Store) RemoveFavorite(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, fav := range s.favorites {
		if fav.ID == id {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("favorite not found with ID: %s", id)
}

// Tally returns how many votes of each kind were recorded.
func (s *Store) Tally() map[catapi.Vote]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[catapi.Vote]int, len(s.tally))
	for k, v := range s.tally {
		out[k] = v
	}
	return out
}
