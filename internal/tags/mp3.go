package tags

import (
	"github.com/bogem/id3v2"
	"github.com/handiism/jukebox/internal/model"
)

// mp3File adapts an ID3v2 tag to the File interface.
type mp3File struct {
	path string
	tag  *id3v2.Tag
}

func openMP3(path string) (File, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return &mp3File{path: path, tag: tag}, nil
}

func (f *mp3File) Title() string  { return f.tag.Title() }
func (f *mp3File) Artist() string { return f.tag.Artist() }

func (f *mp3File) Cover() (model.Cover, bool) {
	frames := f.tag.GetFrames(f.tag.CommonID("Attached picture"))
	for _, frame := range frames {
		pic, ok := frame.(id3v2.PictureFrame)
		if !ok {
			continue
		}
		return model.Cover{
			Data:   pic.Picture,
			Format: model.FormatFromMIME(pic.MimeType),
		}, true
	}
	return model.Cover{}, false
}

func (f *mp3File) SetTitle(title string)   { f.tag.SetTitle(title) }
func (f *mp3File) SetArtist(artist string) { f.tag.SetArtist(artist) }

func (f *mp3File) SetCover(cover model.Cover) {
	f.tag.DeleteFrames(f.tag.CommonID("Attached picture"))
	f.tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    cover.Format.MIME(),
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     cover.Data,
	})
}

func (f *mp3File) Save() error  { return f.tag.Save() }
func (f *mp3File) Close() error { return f.tag.Close() }
