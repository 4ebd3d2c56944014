package model

import "strings"

// ImageFormat identifies the declared encoding of a piece of cover art.
//
// The set is closed: these are the formats the tag containers can declare
// and the artwork normalizer can decode. Everything the server stores or
// embeds is eventually FormatJPEG.
type ImageFormat int

const (
	FormatUnknown ImageFormat = iota
	FormatJPEG
	FormatPNG
	FormatBMP
	FormatGIF
	FormatTIFF
)

// FormatFromMIME maps a MIME type like "image/png" to an ImageFormat.
// Unrecognized types map to FormatUnknown.
func FormatFromMIME(mime string) ImageFormat {
	switch strings.ToLower(mime) {
	case "image/jpeg", "image/jpg":
		return FormatJPEG
	case "image/png":
		return FormatPNG
	case "image/bmp", "image/x-bmp", "image/x-ms-bmp":
		return FormatBMP
	case "image/gif":
		return FormatGIF
	case "image/tiff":
		return FormatTIFF
	default:
		return FormatUnknown
	}
}

// MIME returns the canonical MIME type for the format, or an empty string
// for FormatUnknown.
func (f ImageFormat) MIME() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	case FormatGIF:
		return "image/gif"
	case FormatTIFF:
		return "image/tiff"
	default:
		return ""
	}
}

// Ext returns the conventional file extension (without dot) for the format.
func (f ImageFormat) Ext() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatGIF:
		return "gif"
	case FormatTIFF:
		return "tiff"
	default:
		return ""
	}
}

// Cover is a piece of embedded cover art read from a tag container:
// the raw image bytes together with the format the container declared
// for them.
//
// A Cover belongs to the tag read that produced it until it is written
// out again; callers must not retain it across a Save.
type Cover struct {
	Data   []byte
	Format ImageFormat
}
