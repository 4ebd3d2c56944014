package session

import (
	"testing"

	"github.com/handiism/jukebox/internal/model"
)

func TestLoadEmptyStore(t *testing.T) {
	store := NewStore()
	if _, ok := store.Load(); ok {
		t.Error("Load on an empty store reported ok")
	}
}

func TestSaveThenLoad(t *testing.T) {
	store := NewStore()
	saved := Playlist{
		CurrentTime:  12.5,
		CurrentIndex: 2,
		Queue: []model.Track{
			{Filename: "a.mp3", Title: "a", Artist: "Artist"},
			{Filename: "b.mp3", Title: "b", Artist: "Artist"},
		},
	}
	store.Save(saved)

	got, ok := store.Load()
	if !ok {
		t.Fatal("Load reported empty after Save")
	}
	if got.CurrentTime != 12.5 || got.CurrentIndex != 2 || len(got.Queue) != 2 {
		t.Errorf("loaded playlist = %+v", got)
	}
}

func TestSaveReplaces(t *testing.T) {
	store := NewStore()
	store.Save(Playlist{CurrentIndex: 1})
	store.Save(Playlist{CurrentIndex: 7})

	got, _ := store.Load()
	if got.CurrentIndex != 7 {
		t.Errorf("CurrentIndex = %d, want 7", got.CurrentIndex)
	}
}

func TestClear(t *testing.T) {
	store := NewStore()
	store.Save(Playlist{CurrentIndex: 1})
	store.Clear()

	if _, ok := store.Load(); ok {
		t.Error("Load reported ok after Clear")
	}

	// Clearing again is fine.
	store.Clear()
}
