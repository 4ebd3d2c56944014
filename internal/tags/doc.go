// Package tags reads and writes audio-file metadata for the two container
// families the library stores: ID3v2 (mp3) and MP4 metadata atoms
// (mp4, m4a).
//
// # Dispatch
//
// The container kind is decided once per file, from its extension:
//
//	kind, ok := tags.KindForExt(ext)
//	if !ok {
//	    // unrecognized format: log and skip, never fatal at listing level
//	}
//	f, err := tags.Open(path, kind)
//
// # Mutation
//
// A File buffers mutations in memory until Save. Callers that change the
// title must rename the underlying file afterwards, in that fixed order:
//
//	f.SetTitle(newTitle)
//	if err := f.Save(); err != nil { ... }
//	os.Rename(path, newPath)
//
// # Concurrency
//
// The package performs no locking of its own; operations that mutate tags
// hold the per-filename mutex from a shared Locker around the whole
// read-modify-write.
package tags
