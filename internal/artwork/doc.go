// Package artwork normalizes cover art and maintains the on-disk artwork
// cache.
//
// # Normalizer
//
// Everything the server stores or embeds is JPEG. Normalize is the single
// entry point:
//
//	data, converted, err := artwork.Normalize(cover)
//
// JPEG input is passed through byte-identical; PNG, BMP, GIF and TIFF are
// decoded (BMP and TIFF via golang.org/x/image), flattened to opaque RGB
// and re-encoded.
//
// CropSquare produces the centered height-by-height square used for
// machine-generated "topic" thumbnails. It refuses portrait input; see
// ErrUnsupportedGeometry.
//
// # Cache
//
// Cache lazily materializes <image-dir>/<title>.jpeg the first time a
// track is observed. Existence of that file is the whole validity test; a
// stale entry after out-of-band artwork replacement is accepted policy.
package artwork
