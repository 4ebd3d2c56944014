package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/jukebox/internal/artwork"
	"github.com/handiism/jukebox/internal/model"
	"github.com/handiism/jukebox/internal/tags"
)

// EditRequest describes a metadata edit. Nil fields are left untouched.
type EditRequest struct {
	Filename string

	Title  *string
	Artist *string

	// CoverData and CoverMIME carry an uploaded replacement cover.
	// Both are set together or not at all.
	CoverData []byte
	CoverMIME string
}

// Edit applies the requested tag changes to a track.
//
// A changed title renames the audio file to match once the tag has been
// written. The uploaded cover, when present, is embedded and also
// written to the image directory under the track's new title.
func (s *Service) Edit(req EditRequest) error {
	title, ext := model.SplitFilename(req.Filename)
	kind, ok := tags.KindForExt(ext)
	if !ok {
		return ErrUnsupportedFormat
	}

	unlock := s.locker.Lock(req.Filename)
	defer unlock()

	f, err := tags.Open(filepath.Join(s.musicDir, req.Filename), kind)
	if err != nil {
		return err
	}
	closed := false
	defer func() {
		if !closed {
			f.Close()
		}
	}()

	newTitle := title
	if req.Title != nil && *req.Title != "" {
		newTitle = *req.Title
		f.SetTitle(newTitle)
	}
	if req.Artist != nil {
		f.SetArtist(*req.Artist)
	}
	if len(req.CoverData) > 0 {
		f.SetCover(model.Cover{
			Data:   req.CoverData,
			Format: model.FormatFromMIME(req.CoverMIME),
		})

		subtype := strings.TrimPrefix(req.CoverMIME, "image/")
		imgPath := filepath.Join(s.imageDir, model.SanitizeFileName(newTitle)+"."+subtype)
		if err := os.WriteFile(imgPath, req.CoverData, 0o644); err != nil {
			return err
		}
	}

	if err := f.Save(); err != nil {
		return err
	}
	closed = true
	if err := f.Close(); err != nil {
		return err
	}

	// The file follows its title. Renaming after the tag write keeps a
	// failed save from leaving a renamed file with stale tags.
	if newTitle != title {
		newName := model.SanitizeFileName(newTitle) + "." + ext
		if err := os.Rename(
			filepath.Join(s.musicDir, req.Filename),
			filepath.Join(s.musicDir, newName),
		); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a track and, when the track carries an embedded cover,
// its cached artwork.
func (s *Service) Delete(filename string) error {
	title, ext := model.SplitFilename(filename)
	kind, ok := tags.KindForExt(ext)
	if !ok {
		return ErrUnsupportedFormat
	}

	unlock := s.locker.Lock(filename)
	defer unlock()

	f, err := tags.Open(filepath.Join(s.musicDir, filename), kind)
	if err != nil {
		return err
	}
	_, hasCover := f.Cover()
	f.Close()

	if hasCover {
		if err := os.Remove(s.cache.Path(title)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return os.Remove(filepath.Join(s.musicDir, filename))
}

// CropCover center-crops a track's cached cover to a square and embeds
// the result.
//
// imageName is the cover's file name inside the image directory. The
// cropped cover is written back as a JPEG and replaces the embedded
// artwork. Covers that are already square come back as
// artwork.ErrAlreadySquare.
func (s *Service) CropCover(filename, imageName string) error {
	data, err := os.ReadFile(filepath.Join(s.imageDir, imageName))
	if err != nil {
		return err
	}
	img, err := artwork.DecodeAny(data)
	if err != nil {
		return err
	}
	cropped, err := artwork.CropSquare(img)
	if err != nil {
		return err
	}

	imgPath := filepath.Join(s.imageDir, model.WithoutExtension(imageName)+".jpeg")
	if err := os.WriteFile(imgPath, cropped, 0o644); err != nil {
		return err
	}

	_, ext := model.SplitFilename(filename)
	kind, ok := tags.KindForExt(ext)
	if !ok {
		return ErrUnsupportedFormat
	}

	unlock := s.locker.Lock(filename)
	defer unlock()

	f, err := tags.Open(filepath.Join(s.musicDir, filename), kind)
	if err != nil {
		return err
	}
	defer f.Close()

	f.SetCover(model.Cover{Data: cropped, Format: model.FormatJPEG})
	return f.Save()
}
