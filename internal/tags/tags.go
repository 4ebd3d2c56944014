package tags

import (
	"fmt"
	"strings"

	"github.com/handiism/jukebox/internal/model"
)

// Kind selects which tag container family an audio file uses.
//
// The set is closed and is decided once, at the filesystem boundary, from
// the file extension (see KindForExt). Handlers never re-dispatch on kind
// themselves; they open a File and work through the interface.
type Kind int

const (
	// KindMP3 is the ID3v2 tag family used by mp3 files.
	KindMP3 Kind = iota

	// KindMP4 is the iTunes-style metadata-atom family used by the
	// MP4 container (mp4, m4a).
	KindMP4
)

// KindForExt maps a file extension (without dot, any case) to its tag
// container kind. The second return value is false for extensions the
// library does not recognize; callers at the listing level log and skip
// those, they are never fatal.
func KindForExt(ext string) (Kind, bool) {
	switch strings.ToLower(ext) {
	case "mp3":
		return KindMP3, true
	case "mp4", "m4a":
		return KindMP4, true
	default:
		return 0, false
	}
}

// File is an open tag container with pending, in-memory mutations.
//
// Mutations become visible on disk only after Save. Save rewrites the
// container at the path it was opened from; renaming on a title change is
// the caller's responsibility and must happen strictly after Save.
type File interface {
	// Title returns the stored track title, empty when absent.
	Title() string

	// Artist returns the stored artist, empty when absent.
	Artist() string

	// Cover returns the embedded cover art and true, or a zero Cover and
	// false when no artwork is embedded.
	Cover() (model.Cover, bool)

	SetTitle(title string)
	SetArtist(artist string)
	SetCover(cover model.Cover)

	// Save persists all pending mutations back to the original path.
	Save() error

	// Close releases the underlying file handle. Close never discards a
	// successful Save.
	Close() error
}

// ReadError wraps any failure to open or parse a tag container: a missing
// file, a corrupted container, or a file opened with the wrong Kind.
//
// Listing operations log ReadErrors and skip the track; edit and delete
// operations surface them to the caller.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read tag container %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Open opens the tag container at path using the adapter for kind.
// Failures are returned as *ReadError.
func Open(path string, kind Kind) (File, error) {
	switch kind {
	case KindMP4:
		return openMP4(path)
	default:
		return openMP3(path)
	}
}
