package tags

import (
	"net/http"

	"github.com/handiism/jukebox/internal/model"
	mp4tag "github.com/zhaarey/go-mp4tag"
)

// mp4File adapts the MP4 metadata atoms to the File interface.
//
// Reads snapshot the existing atoms at Open; setters stage mutations that
// Save writes back in one pass. Only title, artist and cover are staged,
// leaving every other atom untouched.
type mp4File struct {
	path    string
	mp4     *mp4tag.MP4
	current *mp4tag.MP4Tags

	title  string
	artist string
	cover  *model.Cover
}

func openMP4(path string) (File, error) {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	current, err := mp4.Read()
	if err != nil {
		mp4.Close()
		return nil, &ReadError{Path: path, Err: err}
	}
	return &mp4File{
		path:    path,
		mp4:     mp4,
		current: current,
		title:   current.Title,
		artist:  current.Artist,
	}, nil
}

func (f *mp4File) Title() string  { return f.title }
func (f *mp4File) Artist() string { return f.artist }

func (f *mp4File) Cover() (model.Cover, bool) {
	if f.cover != nil {
		return *f.cover, true
	}
	if len(f.current.Pictures) == 0 {
		return model.Cover{}, false
	}
	pic := f.current.Pictures[0]
	return model.Cover{Data: pic.Data, Format: mp4PictureFormat(pic)}, true
}

func (f *mp4File) SetTitle(title string)   { f.title = title }
func (f *mp4File) SetArtist(artist string) { f.artist = artist }

func (f *mp4File) SetCover(cover model.Cover) {
	c := cover
	f.cover = &c
}

func (f *mp4File) Save() error {
	pending := &mp4tag.MP4Tags{
		Title:  f.title,
		Artist: f.artist,
	}
	if f.cover != nil {
		pending.Pictures = []*mp4tag.MP4Picture{{
			Format: mp4ImageType(f.cover.Format),
			Data:   f.cover.Data,
		}}
	}
	return f.mp4.Write(pending, nil)
}

func (f *mp4File) Close() error {
	f.mp4.Close()
	return nil
}

// mp4PictureFormat resolves the declared format of a covr atom. The
// container only flags JPEG and PNG; anything else is sniffed from the
// image bytes.
func mp4PictureFormat(pic *mp4tag.MP4Picture) model.ImageFormat {
	switch pic.Format {
	case mp4tag.ImageTypeJPEG:
		return model.FormatJPEG
	case mp4tag.ImageTypePNG:
		return model.FormatPNG
	default:
		return model.FormatFromMIME(http.DetectContentType(pic.Data))
	}
}

func mp4ImageType(f model.ImageFormat) mp4tag.ImageType {
	switch f {
	case model.FormatJPEG:
		return mp4tag.ImageTypeJPEG
	case model.FormatPNG:
		return mp4tag.ImageTypePNG
	default:
		return mp4tag.ImageTypeAuto
	}
}
