package library

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/jukebox/internal/artwork"
	"github.com/handiism/jukebox/internal/model"
	"github.com/handiism/jukebox/internal/tags"
)

// ErrUnsupportedFormat reports a file whose extension maps to no known
// tag format.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Service exposes the local track collection: listing, grouping by
// artist and the mutating operations on individual tracks.
type Service struct {
	musicDir string
	imageDir string
	cache    *artwork.Cache
	locker   *tags.Locker
	log      *slog.Logger
}

// NewService creates a library service over the given music directory.
func NewService(musicDir, imageDir string, cache *artwork.Cache, locker *tags.Locker, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		musicDir: musicDir,
		imageDir: imageDir,
		cache:    cache,
		locker:   locker,
		log:      log,
	}
}

// List returns every track in the music directory.
//
// Files whose extension maps to no known tag format are skipped with a
// log line. A track whose tag cannot be read is still listed, with the
// artist falling back to the unknown placeholder. Artwork cache
// failures are logged and never exclude a track.
func (s *Service) List() ([]model.Track, error) {
	entries, err := os.ReadDir(s.musicDir)
	if err != nil {
		return nil, err
	}

	tracks := make([]model.Track, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filename := entry.Name()
		title, ext := model.SplitFilename(filename)

		kind, ok := tags.KindForExt(ext)
		if !ok {
			s.log.Warn("skipping file with unrecognized extension", "file", filename)
			continue
		}

		if err := s.cache.Populate(filename, kind); err != nil {
			s.log.Warn("artwork cache population failed", "file", filename, "error", err)
		}

		artist := model.UnknownArtist
		if f, err := tags.Open(filepath.Join(s.musicDir, filename), kind); err != nil {
			s.log.Warn("unreadable tag", "file", filename, "error", err)
		} else {
			if a := f.Artist(); a != "" {
				artist = a
			}
			f.Close()
		}

		tracks = append(tracks, model.Track{
			Filename:  filename,
			Title:     title,
			Artist:    artist,
			Thumbnail: s.cache.WebPath(title),
		})
	}

	return tracks, nil
}

// WarmScan populates the artwork cache for every track. Failures are
// logged per file and never abort the scan.
func (s *Service) WarmScan(ctx context.Context) error {
	entries, err := os.ReadDir(s.musicDir)
	if err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filename := entry.Name()
		_, ext := model.SplitFilename(filename)
		kind, ok := tags.KindForExt(ext)
		if !ok {
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.cache.Populate(filename, kind); err != nil {
				s.log.Warn("artwork cache population failed", "file", filename, "error", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// GroupByArtist buckets tracks by their first credited artist and keeps
// only the artists credited on more than one track.
//
// A combined credit such as "A, B" counts the track towards A alone;
// the track keeps the full credit string. Tracks whose tag cannot be
// read are skipped.
func (s *Service) GroupByArtist() (map[string][]model.Track, error) {
	entries, err := os.ReadDir(s.musicDir)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]model.Track)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filename := entry.Name()
		title, ext := model.SplitFilename(filename)

		kind, ok := tags.KindForExt(ext)
		if !ok {
			continue
		}

		if err := s.cache.Populate(filename, kind); err != nil {
			s.log.Warn("artwork cache population failed", "file", filename, "error", err)
		}

		f, err := tags.Open(filepath.Join(s.musicDir, filename), kind)
		if err != nil {
			s.log.Warn("unreadable tag", "file", filename, "error", err)
			continue
		}
		artist := f.Artist()
		f.Close()
		if artist == "" {
			artist = model.UnknownArtist
		}

		track := model.Track{
			Filename:  filename,
			Title:     title,
			Artist:    artist,
			Thumbnail: s.cache.WebPath(title),
		}
		lead := strings.Split(artist, ", ")[0]
		groups[lead] = append(groups[lead], track)
	}

	for name, tracks := range groups {
		if len(tracks) < 2 {
			delete(groups, name)
		}
	}

	return groups, nil
}
