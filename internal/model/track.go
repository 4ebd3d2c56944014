package model

// Track represents one entry of the media library as served to clients.
//
// A track stored on disk lives at <music-dir>/<Filename>, where Filename is
// always Title plus an extension. Tracks coming back from the remote search
// endpoints reuse the same shape with Filename carrying the remote video id
// instead.
//
// Two tracks are the same library entry if and only if their filenames are
// equal; use Same for that comparison (the history ring relies on it for
// dedup).
type Track struct {
	// Filename is the on-disk file name, or the remote id for search results.
	Filename string `json:"filename"`

	// Title is the track title. For stored tracks it is derived from
	// Filename by stripping the extension.
	Title string `json:"title"`

	// Artist is the display artist. "Unknown" when nothing better is known.
	Artist string `json:"artist"`

	// Artists is the ordered list of individual artist names, when the
	// source provides a joined artist string that can be split.
	Artists []string `json:"artists,omitempty"`

	// Thumbnail is the artwork location: a server-relative path such as
	// /img/<title>.jpeg for stored tracks, or a remote URL for search
	// results.
	Thumbnail string `json:"thumbnail,omitempty"`

	// Duration is the track length in whole seconds. Nil when unknown.
	Duration *uint64 `json:"duration,omitempty"`

	// ArtistThumbnail is a remote URL for the artist's avatar, when the
	// search source provides one.
	ArtistThumbnail string `json:"artist_thumbnail,omitempty"`
}

// Same reports whether t and other identify the same library entry.
// Identity is defined solely by filename.
func (t Track) Same(other Track) bool {
	return t.Filename == other.Filename
}

// UnknownArtist is the sentinel used wherever no artist can be resolved.
const UnknownArtist = "Unknown"
