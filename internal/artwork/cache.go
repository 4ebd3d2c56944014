package artwork

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/handiism/jukebox/internal/model"
	"github.com/handiism/jukebox/internal/tags"
)

// Cache maps track titles to normalized cover-art files on disk.
//
// An entry is <image-dir>/<title>.jpeg, and its existence is the entire
// validity test: there is no timestamp or hash invalidation. Entries are
// populated lazily the first time a track is observed by a listing
// operation and live until the track is deleted through the library's
// delete operation. Replacing a track's artwork out of band therefore
// leaves a stale entry; that is the cache's documented policy, not a bug.
type Cache struct {
	musicDir string
	imageDir string
	locker   *tags.Locker
	log      *slog.Logger
}

// NewCache creates a Cache over the given store directories. The Locker
// must be the same instance used by every other tag-mutating component.
func NewCache(musicDir, imageDir string, locker *tags.Locker, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{musicDir: musicDir, imageDir: imageDir, locker: locker, log: log}
}

// Path returns the on-disk cache location for a track title.
func (c *Cache) Path(title string) string {
	return filepath.Join(c.imageDir, model.SanitizeFileName(title)+".jpeg")
}

// WebPath returns the server-relative URL for a track title's artwork.
func (c *Cache) WebPath(title string) string {
	return "/img/" + model.SanitizeFileName(title) + ".jpeg"
}

// Populate ensures the cache entry for a stored track exists.
//
// If the entry already exists nothing happens (the second call on an
// untouched track does no decode or encode work at all). Otherwise the
// track's embedded cover is read; an absent cover is a no-op. A JPEG cover
// is copied to the cache byte-identical, leaving the embedded tag
// untouched. A non-JPEG cover is normalized, and BOTH the embedded tag and
// the cache entry are rewritten with the normalized JPEG, so the two stay
// byte-identical from then on.
//
// Tag read failures and codec failures are returned for the caller to log;
// listing operations swallow them per track and keep enumerating.
func (c *Cache) Populate(filename string, kind tags.Kind) error {
	title, _ := model.SplitFilename(filename)
	cachePath := c.Path(title)

	if _, err := os.Stat(cachePath); err == nil {
		return nil
	}

	unlock := c.locker.Lock(filename)
	defer unlock()

	// Re-check: another request may have populated the entry while we
	// waited on the lock.
	if _, err := os.Stat(cachePath); err == nil {
		return nil
	}

	f, err := tags.Open(filepath.Join(c.musicDir, filename), kind)
	if err != nil {
		return err
	}
	defer f.Close()

	cover, ok := f.Cover()
	if !ok {
		return nil
	}

	if cover.Format == model.FormatJPEG {
		return os.WriteFile(cachePath, cover.Data, 0644)
	}

	c.log.Info("converting cover art", "file", filename)

	data, _, err := Normalize(cover)
	if err != nil {
		return err
	}

	f.SetCover(model.Cover{Data: data, Format: model.FormatJPEG})
	if err := f.Save(); err != nil {
		return err
	}
	return os.WriteFile(cachePath, data, 0644)
}
