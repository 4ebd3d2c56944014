// Package model defines the core data structures shared across the
// jukebox server.
//
// # Track
//
// Track is the unit of the library: one audio file on disk, or one remote
// search result. Stored tracks keep the invariant
//
//	Filename = Title + "." + ext
//
// which SplitFilename and WithoutExtension implement. The extension decides
// which tag container adapter applies (see the tags package).
//
// # Cover art
//
// Cover carries raw embedded artwork bytes together with the ImageFormat
// the container declared. The artwork package consumes Covers and always
// produces FormatJPEG output.
//
// # Filenames
//
// SanitizeFileName makes arbitrary titles safe to use as file names:
//
//	safe := model.SanitizeFileName("Song: Part 1/2") // "Song_ Part 1_2"
package model
