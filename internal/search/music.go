package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jhttp "github.com/handiism/jukebox/internal/http"
	"github.com/handiism/jukebox/internal/model"
)

const (
	musicEndpoint = "https://music.youtube.com/youtubei/v1/search?prettyPrint=false"

	// Restricts results to songs.
	musicFilterParams = "EgWKAQIIAWoKEAkQBRAKEAMQBA%3D%3D"
)

// MusicClient searches the music catalogue, which carries richer
// metadata than the video catalogue: per-song artist credits and
// square cover art.
type MusicClient struct {
	http  *jhttp.Client
	limit int
}

// NewMusicClient creates a music search client that returns at most
// limit results per query.
func NewMusicClient(client *jhttp.Client, limit int) *MusicClient {
	return &MusicClient{http: client, limit: limit}
}

// Search runs a song search and maps the results.
func (c *MusicClient) Search(ctx context.Context, query string) ([]model.Track, error) {
	body := innertubeRequest{
		Context: innertubeContext{
			Client: innertubeClient{
				ClientName:    "WEB_REMIX",
				ClientVersion: "1.20240619.01.00",
				HL:            "en",
			},
		},
		Query:  query,
		Params: musicFilterParams,
	}

	var raw json.RawMessage
	if err := c.http.PostJSON(ctx, musicEndpoint, body, &raw); err != nil {
		return nil, fmt.Errorf("music search request: %w", err)
	}

	return c.mapResults(raw)
}

func (c *MusicClient) mapResults(raw json.RawMessage) ([]model.Track, error) {
	renderers, err := decodeRenderers(raw, "musicResponsiveListItemRenderer")
	if err != nil {
		return nil, fmt.Errorf("music search response: %w", err)
	}

	tracks := make([]model.Track, 0, len(renderers))
	for _, r := range renderers {
		if len(tracks) >= c.limit {
			break
		}

		id, _ := lookup(r, "playlistItemData", "videoId").(string)
		columns, _ := r["flexColumns"].([]any)
		if id == "" || len(columns) < 2 {
			continue
		}

		title := rendererText(lookup(columns[0],
			"musicResponsiveListItemFlexColumnRenderer", "text"))
		if title == "" {
			continue
		}

		artist, duration := splitByline(rendererRuns(lookup(columns[1],
			"musicResponsiveListItemFlexColumnRenderer", "text")))

		track := model.Track{
			Filename: id,
			Title:    title,
			Artist:   artist,
			Artists:  SplitArtists(artist),
			Thumbnail: UpscaleThumbnail(rendererThumbnail(lookup(r,
				"thumbnail", "musicThumbnailRenderer", "thumbnail"))),
			Duration: duration,
		}

		tracks = append(tracks, track)
	}

	return tracks, nil
}

// splitByline takes the runs of a song's byline column, which lists the
// artist credit followed by dot-separated segments such as album and
// play length, and returns the artist credit plus the clock duration
// when one of the trailing segments carries it.
func splitByline(runs []string) (artist string, duration *uint64) {
	var credit strings.Builder
	for i, run := range runs {
		if strings.TrimSpace(run) == "•" {
			runs = runs[i:]
			break
		}
		credit.WriteString(run)
	}

	for _, run := range runs {
		if secs, ok := ParseClockDuration(run); ok {
			duration = &secs
		}
	}

	artist = credit.String()
	if artist == "" {
		artist = model.UnknownArtist
	}
	return artist, duration
}

// SplitArtists breaks a combined artist credit such as
// "A & B, C" into the individual artist names.
func SplitArtists(credit string) []string {
	parts := strings.FieldsFunc(credit, func(r rune) bool {
		return r == '&' || r == ','
	})
	var out []string
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// UpscaleThumbnail rewrites the default small cover variant into the
// larger one the player UI renders.
func UpscaleThumbnail(url string) string {
	return strings.Replace(url, "w120-h120", "w300-h300", 1)
}
