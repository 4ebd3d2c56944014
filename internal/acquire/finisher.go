package acquire

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/jukebox/internal/artwork"
	"github.com/handiism/jukebox/internal/model"
	"github.com/handiism/jukebox/internal/tags"
)

// topicMarker opens the description of machine-generated "topic" channel
// uploads. Their thumbnails are wide video stills rather than square
// cover portraits, so they get re-cropped after download.
const topicMarker = "Provided to YouTube by"

// Finisher post-processes freshly acquired tracks.
type Finisher struct {
	musicDir string
	cache    *artwork.Cache
	locker   *tags.Locker
	log      *slog.Logger
}

// NewFinisher constructs a Finisher over the track store.
func NewFinisher(musicDir string, cache *artwork.Cache, locker *tags.Locker, log *slog.Logger) *Finisher {
	if log == nil {
		log = slog.Default()
	}
	return &Finisher{musicDir: musicDir, cache: cache, locker: locker, log: log}
}

// Finish re-crops the embedded artwork of topic uploads and returns the
// thumbnail location the client should use.
//
// Tracks whose description does not carry the topic marker pass through
// untouched, keeping the remote thumbnail URL. For topic uploads the
// just-written file is reopened, its embedded cover decoded, and when the
// cover is not square it is center-cropped; both the artwork cache entry
// and the embedded tag are rewritten with the crop. A square cover is a
// no-op. Either way the thumbnail flips to the local cache path.
//
// Any failure here is a server error for the enclosing download operation;
// the downloaded audio file is retained regardless, finishing is never
// rolled back.
func (f *Finisher) Finish(res *RawResult) (string, error) {
	if !strings.HasPrefix(res.Description, topicMarker) {
		return res.Thumbnail, nil
	}

	f.log.Info("cropping cover art", "title", res.Title)

	filename := model.SanitizeFileName(res.Title) + ".mp3"
	path := filepath.Join(f.musicDir, filename)
	thumbnail := f.cache.WebPath(res.Title)

	unlock := f.locker.Lock(filename)
	defer unlock()

	tag, err := tags.Open(path, tags.KindMP3)
	if err != nil {
		return "", fmt.Errorf("finish %s: %w", res.Title, err)
	}
	defer tag.Close()

	cover, ok := tag.Cover()
	if !ok {
		return "", fmt.Errorf("finish %s: no cover embedded", res.Title)
	}

	img, err := artwork.DecodeAny(cover.Data)
	if err != nil {
		return "", fmt.Errorf("finish %s: decode cover: %w", res.Title, err)
	}

	cropped, err := artwork.CropSquare(img)
	if errors.Is(err, artwork.ErrAlreadySquare) {
		return thumbnail, nil
	}
	if err != nil {
		return "", fmt.Errorf("finish %s: crop cover: %w", res.Title, err)
	}

	if err := os.WriteFile(f.cache.Path(res.Title), cropped, 0644); err != nil {
		f.log.Error("write artwork cache entry", "title", res.Title, "err", err)
	}

	tag.SetCover(model.Cover{Data: cropped, Format: model.FormatJPEG})
	if err := tag.Save(); err != nil {
		return "", fmt.Errorf("finish %s: save tag: %w", res.Title, err)
	}
	return thumbnail, nil
}
