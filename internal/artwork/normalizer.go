package artwork

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/handiism/jukebox/internal/model"
)

// jpegQuality is used for every JPEG the normalizer produces.
const jpegQuality = 90

var (
	// ErrAlreadySquare reports a crop request for an image whose width and
	// height are equal. Callers decide whether that is a no-op or an input
	// error.
	ErrAlreadySquare = errors.New("image is already square")

	// ErrUnsupportedGeometry reports a crop request for a portrait image
	// (height > width). The centered-square offset is only defined for
	// landscape input; portrait covers are rejected rather than cropped
	// with an underflowed offset.
	ErrUnsupportedGeometry = errors.New("portrait images are not supported for cropping")
)

// Normalize converts cover art to the canonical storage encoding, JPEG.
//
// Art that is already JPEG is passed through byte-identical with converted
// false: no decode, no re-encode, the cheapest possible path. Anything else
// is decoded according to its declared format, flattened to opaque RGB, and
// re-encoded as JPEG with converted true.
//
// Decode and encode failures are fatal for the calling operation; they are
// never retried, since re-running them on the same bytes cannot succeed.
func Normalize(cover model.Cover) (data []byte, converted bool, err error) {
	if cover.Format == model.FormatJPEG {
		return cover.Data, false, nil
	}

	img, err := Decode(cover.Data, cover.Format)
	if err != nil {
		return nil, false, err
	}

	out, err := EncodeJPEG(img)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// Decode decodes raw image bytes according to their declared format.
func Decode(data []byte, format model.ImageFormat) (image.Image, error) {
	r := bytes.NewReader(data)
	switch format {
	case model.FormatJPEG:
		return jpeg.Decode(r)
	case model.FormatPNG:
		return png.Decode(r)
	case model.FormatBMP:
		return bmp.Decode(r)
	case model.FormatGIF:
		return gif.Decode(r)
	case model.FormatTIFF:
		return tiff.Decode(r)
	default:
		return nil, fmt.Errorf("decode image: unsupported format %q", format.MIME())
	}
}

// DecodeAny decodes raw image bytes by sniffing the encoding, for callers
// that have no declared format to go on.
func DecodeAny(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// EncodeJPEG flattens an image to opaque RGB and encodes it as JPEG.
// Any alpha channel is dropped.
func EncodeJPEG(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	rgb := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgb, rgb.Bounds(), img, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CropSquare crops an image to a centered height-by-height square and
// returns it JPEG-encoded.
//
// The crop region starts at horizontal offset w/2 - h/2 (integer division)
// and spans the full height. Square input returns ErrAlreadySquare;
// portrait input returns ErrUnsupportedGeometry.
func CropSquare(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w == h {
		return nil, ErrAlreadySquare
	}
	if h > w {
		return nil, ErrUnsupportedGeometry
	}

	offset := w/2 - h/2
	square := image.NewRGBA(image.Rect(0, 0, h, h))
	draw.Draw(square, square.Bounds(), img, image.Pt(bounds.Min.X+offset, bounds.Min.Y), draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, square, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
