package model

import (
	"regexp"
	"strings"
)

// SplitFilename splits a stored track filename into its title and
// extension. The split happens at the last dot; a filename without a dot
// is treated as an mp3, matching what the acquisition tool produces.
//
// Example:
//
//	SplitFilename("Song Name.m4a") // ("Song Name", "m4a")
//	SplitFilename("No Extension")  // ("No Extension", "mp3")
func SplitFilename(filename string) (title, ext string) {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[:i], filename[i+1:]
	}
	return filename, "mp3"
}

// WithoutExtension strips the extension (including the dot) from a
// filename. Filenames without a dot are returned unchanged.
func WithoutExtension(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[:i]
	}
	return filename
}

var (
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	multiSpace       = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes or replaces characters that are invalid in
// file names, so a track title can be used as an on-disk name.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func SanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = multiSpace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
