package tags

import "sync"

// Locker serializes tag mutations per filename.
//
// Tag writes are read-modify-write over the whole container, so two
// concurrent mutations of the same file (say, a cache population racing an
// edit) would otherwise interleave with a last-writer-wins outcome. Every
// operation that mutates a tag takes the file's lock for its full
// read-modify-write-rename span. Plain reads during listing stay lock-free.
//
// Entries are never evicted; the map is bounded by the number of distinct
// filenames touched, which for a personal library is small.
type Locker struct {
	mu    sync.Mutex
	files map[string]*sync.Mutex
}

// NewLocker creates an empty Locker.
func NewLocker() *Locker {
	return &Locker{files: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for filename and returns the matching unlock.
//
//	unlock := locker.Lock(track.Filename)
//	defer unlock()
func (l *Locker) Lock(filename string) (unlock func()) {
	l.mu.Lock()
	m, ok := l.files[filename]
	if !ok {
		m = &sync.Mutex{}
		l.files[filename] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
