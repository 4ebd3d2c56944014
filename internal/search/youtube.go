package search

import (
	"context"
	"encoding/json"
	"fmt"

	jhttp "github.com/handiism/jukebox/internal/http"
	"github.com/handiism/jukebox/internal/model"
)

const (
	videoEndpoint = "https://www.youtube.com/youtubei/v1/search?prettyPrint=false"

	// Restricts results to plain videos.
	videoFilterParams = "EgIQAQ%3D%3D"
)

// VideoClient searches the public video catalogue.
//
// Results map onto Track with the video identifier in the Filename
// field, so a caller can hand it straight to the acquisition pipeline.
type VideoClient struct {
	http  *jhttp.Client
	limit int
}

// NewVideoClient creates a video search client that returns at most
// limit results per query.
func NewVideoClient(client *jhttp.Client, limit int) *VideoClient {
	return &VideoClient{http: client, limit: limit}
}

// Search runs a video search and maps the results.
func (c *VideoClient) Search(ctx context.Context, query string) ([]model.Track, error) {
	body := innertubeRequest{
		Context: innertubeContext{
			Client: innertubeClient{
				ClientName:    "WEB",
				ClientVersion: "2.20240620.05.00",
				HL:            "en",
			},
		},
		Query:  query,
		Params: videoFilterParams,
	}

	var raw json.RawMessage
	if err := c.http.PostJSON(ctx, videoEndpoint, body, &raw); err != nil {
		return nil, fmt.Errorf("video search request: %w", err)
	}

	return c.mapResults(raw)
}

func (c *VideoClient) mapResults(raw json.RawMessage) ([]model.Track, error) {
	renderers, err := decodeRenderers(raw, "videoRenderer")
	if err != nil {
		return nil, fmt.Errorf("video search response: %w", err)
	}

	tracks := make([]model.Track, 0, len(renderers))
	for _, r := range renderers {
		if len(tracks) >= c.limit {
			break
		}

		id, _ := r["videoId"].(string)
		title := rendererText(r["title"])
		if id == "" || title == "" {
			continue
		}

		channel := rendererText(r["ownerText"])
		if channel == "" {
			channel = model.UnknownArtist
		}

		track := model.Track{
			Filename:  id,
			Title:     title,
			Artist:    channel,
			Thumbnail: rendererThumbnail(r["thumbnail"]),
			ArtistThumbnail: rendererThumbnail(lookup(r,
				"channelThumbnailSupportedRenderers",
				"channelThumbnailWithLinkRenderer",
			)),
		}
		if secs, ok := ParseClockDuration(rendererText(r["lengthText"])); ok {
			track.Duration = &secs
		}

		tracks = append(tracks, track)
	}

	return tracks, nil
}
