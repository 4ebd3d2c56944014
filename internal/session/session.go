// Package session persists the player's queue position between page
// loads.
package session

import (
	"sync"

	"github.com/handiism/jukebox/internal/model"
)

// Playlist is a snapshot of the player state: the queue, the index of
// the playing track and the position within it.
type Playlist struct {
	CurrentTime  float32       `json:"current_time"`
	CurrentIndex uint32        `json:"current_index"`
	Queue        []model.Track `json:"queue"`
}

// Store holds at most one saved playlist. It is safe for concurrent
// use.
type Store struct {
	mu       sync.Mutex
	saved    bool
	playlist Playlist
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Save replaces the stored playlist.
func (s *Store) Save(p Playlist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlist = p
	s.saved = true
}

// Load returns the stored playlist. ok is false when nothing has been
// saved since the store was created or last cleared.
func (s *Store) Load() (p Playlist, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return Playlist{}, false
	}
	return s.playlist, true
}

// Clear drops the stored playlist. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlist = Playlist{}
	s.saved = false
}
