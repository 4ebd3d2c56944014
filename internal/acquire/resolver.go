package acquire

import (
	"encoding/json"

	"github.com/handiism/jukebox/internal/model"
)

// RawResult is the acquisition tool's structured output: one JSON document
// describing the track it just wrote into the store. It is transient;
// callers consume it immediately and discard it.
//
// Absent fields (JSON null or missing) decode to their zero values.
type RawResult struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Thumbnail   string  `json:"thumbnail"`
	Duration    float64 `json:"duration"`
	Artist      string  `json:"artist"`
	Uploader    string  `json:"uploader"`
	Channel     string  `json:"channel"`
}

// ParseResult decodes the tool's stdout into a RawResult. A malformed
// document is a terminal *ParseError, distinct from the transient upstream
// failures the orchestrator retries.
func ParseResult(stdout []byte) (*RawResult, error) {
	var res RawResult
	if err := json.Unmarshal(stdout, &res); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &res, nil
}

// ResolvedArtist resolves the artist from the fixed priority list:
// artist, then uploader, then channel; "Unknown" when all are absent.
func (r *RawResult) ResolvedArtist() string {
	switch {
	case r.Artist != "":
		return r.Artist
	case r.Uploader != "":
		return r.Uploader
	case r.Channel != "":
		return r.Channel
	default:
		return model.UnknownArtist
	}
}

// Summary shapes the result into the track record returned to the client,
// with thumbnail pointing at either the remote art or the re-cropped
// local cache entry (the finisher decides which).
func (r *RawResult) Summary(thumbnail string) model.Track {
	duration := uint64(r.Duration)
	return model.Track{
		Filename:  model.SanitizeFileName(r.Title) + ".mp3",
		Title:     r.Title,
		Artist:    r.ResolvedArtist(),
		Thumbnail: thumbnail,
		Duration:  &duration,
	}
}
