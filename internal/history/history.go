// Package history keeps the recently played ring shown alongside the
// library listing.
package history

import (
	"sync"

	"github.com/handiism/jukebox/internal/model"
)

// Store is a bounded most-recent-first ring of played tracks.
//
// Playing a track that is already in the ring moves it to the front
// instead of adding a duplicate. The store is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	size   int
	tracks []model.Track
}

// NewStore creates a Store that retains at most size tracks.
func NewStore(size int) *Store {
	return &Store{size: size}
}

// Add records a played track and returns the resulting ring,
// most recent first.
func (s *Store) Add(track model.Track) []model.Track {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.tracks {
		if existing.Same(track) {
			s.tracks = append(s.tracks[:i], s.tracks[i+1:]...)
			break
		}
	}

	s.tracks = append([]model.Track{track}, s.tracks...)
	if len(s.tracks) > s.size {
		s.tracks = s.tracks[:s.size]
	}

	return s.snapshot()
}

// List returns the current ring, most recent first.
func (s *Store) List() []model.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() []model.Track {
	out := make([]model.Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}
