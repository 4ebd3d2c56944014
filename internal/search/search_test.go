package search

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseClockDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		seconds uint64
		ok      bool
	}{
		{"minutes and seconds", "3:45", 225, true},
		{"zero minutes", "0:07", 7, true},
		{"long track", "59:59", 3599, true},
		{"hours are not understood", "1:02:30", 0, false},
		{"bare seconds", "45", 0, false},
		{"non numeric", "a:b", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seconds, ok := ParseClockDuration(tt.input)
			if ok != tt.ok || seconds != tt.seconds {
				t.Errorf("ParseClockDuration(%q) = (%d, %v), want (%d, %v)",
					tt.input, seconds, ok, tt.seconds, tt.ok)
			}
		})
	}
}

func TestSplitArtists(t *testing.T) {
	tests := []struct {
		name   string
		credit string
		want   []string
	}{
		{"single artist", "Artist", []string{"Artist"}},
		{"ampersand", "A & B", []string{"A", "B"}},
		{"comma", "A, B", []string{"A", "B"}},
		{"mixed", "A & B, C", []string{"A", "B", "C"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitArtists(tt.credit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitArtists(%q) = %v, want %v", tt.credit, got, tt.want)
			}
		})
	}
}

func TestUpscaleThumbnail(t *testing.T) {
	got := UpscaleThumbnail("https://example.com/cover=w120-h120-l90-rj")
	want := "https://example.com/cover=w300-h300-l90-rj"
	if got != want {
		t.Errorf("UpscaleThumbnail = %q, want %q", got, want)
	}

	// URLs without the small variant marker pass through untouched.
	if got := UpscaleThumbnail("https://example.com/plain.jpg"); got != "https://example.com/plain.jpg" {
		t.Errorf("UpscaleThumbnail passthrough = %q", got)
	}
}

// videoFixture is a trimmed renderer tree in the shape the video search
// endpoint answers with.
const videoFixture = `{
	"contents": {
		"sectionListRenderer": {
			"contents": [
				{"itemSectionRenderer": {"contents": [
					{"videoRenderer": {
						"videoId": "abc123",
						"title": {"runs": [{"text": "First Song"}]},
						"ownerText": {"runs": [{"text": "First Channel"}]},
						"lengthText": {"simpleText": "3:45"},
						"thumbnail": {"thumbnails": [
							{"url": "https://i.example/small.jpg"},
							{"url": "https://i.example/large.jpg"}
						]},
						"channelThumbnailSupportedRenderers": {
							"channelThumbnailWithLinkRenderer": {
								"thumbnail": {"thumbnails": [
									{"url": "https://i.example/channel.jpg"}
								]}
							}
						}
					}},
					{"videoRenderer": {
						"videoId": "def456",
						"title": {"runs": [{"text": "Second Song"}]},
						"lengthText": {"simpleText": "1:02:30"}
					}},
					{"videoRenderer": {
						"title": {"runs": [{"text": "No Identifier"}]}
					}}
				]}}
			]
		}
	}
}`

func TestVideoClientMapResults(t *testing.T) {
	client := NewVideoClient(nil, 20)
	tracks, err := client.mapResults(json.RawMessage(videoFixture))
	if err != nil {
		t.Fatalf("mapResults: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}

	first := tracks[0]
	if first.Filename != "abc123" || first.Title != "First Song" {
		t.Errorf("first track = %+v", first)
	}
	if first.Artist != "First Channel" {
		t.Errorf("artist = %q, want %q", first.Artist, "First Channel")
	}
	if first.Thumbnail != "https://i.example/large.jpg" {
		t.Errorf("thumbnail = %q, want the largest variant", first.Thumbnail)
	}
	if first.ArtistThumbnail != "https://i.example/channel.jpg" {
		t.Errorf("artist thumbnail = %q", first.ArtistThumbnail)
	}
	if first.Duration == nil || *first.Duration != 225 {
		t.Errorf("duration = %v, want 225", first.Duration)
	}

	// Missing channel falls back to the unknown artist, and an
	// hour-long clock string leaves the duration absent.
	second := tracks[1]
	if second.Artist != "Unknown" {
		t.Errorf("fallback artist = %q, want Unknown", second.Artist)
	}
	if second.Duration != nil {
		t.Errorf("duration = %v, want absent", *second.Duration)
	}
}

func TestVideoClientLimit(t *testing.T) {
	client := NewVideoClient(nil, 1)
	tracks, err := client.mapResults(json.RawMessage(videoFixture))
	if err != nil {
		t.Fatalf("mapResults: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}
}

// musicFixture is a trimmed renderer tree in the shape the music search
// endpoint answers with.
const musicFixture = `{
	"contents": {
		"tabbedSearchResultsRenderer": {
			"contents": [
				{"musicShelfRenderer": {"contents": [
					{"musicResponsiveListItemRenderer": {
						"playlistItemData": {"videoId": "song01"},
						"thumbnail": {"musicThumbnailRenderer": {"thumbnail": {"thumbnails": [
							{"url": "https://i.example/cover=w120-h120-l90-rj"}
						]}}},
						"flexColumns": [
							{"musicResponsiveListItemFlexColumnRenderer": {
								"text": {"runs": [{"text": "Duet"}]}
							}},
							{"musicResponsiveListItemFlexColumnRenderer": {
								"text": {"runs": [
									{"text": "A"}, {"text": " & "}, {"text": "B"},
									{"text": " • "}, {"text": "Album"},
									{"text": " • "}, {"text": "4:05"}
								]}
							}}
						]
					}}
				]}}
			]
		}
	}
}`

func TestMusicClientMapResults(t *testing.T) {
	client := NewMusicClient(nil, 20)
	tracks, err := client.mapResults(json.RawMessage(musicFixture))
	if err != nil {
		t.Fatalf("mapResults: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}

	track := tracks[0]
	if track.Filename != "song01" || track.Title != "Duet" {
		t.Errorf("track = %+v", track)
	}
	if track.Artist != "A & B" {
		t.Errorf("artist credit = %q, want %q", track.Artist, "A & B")
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(track.Artists, want) {
		t.Errorf("artists = %v, want %v", track.Artists, want)
	}
	if track.Thumbnail != "https://i.example/cover=w300-h300-l90-rj" {
		t.Errorf("thumbnail = %q, want the upscaled variant", track.Thumbnail)
	}
	if track.Duration == nil || *track.Duration != 245 {
		t.Errorf("duration = %v, want 245", track.Duration)
	}
}

func TestSplitByline(t *testing.T) {
	artist, duration := splitByline([]string{"Solo", " • ", "Album", " • ", "2:10"})
	if artist != "Solo" {
		t.Errorf("artist = %q, want Solo", artist)
	}
	if duration == nil || *duration != 130 {
		t.Errorf("duration = %v, want 130", duration)
	}

	artist, duration = splitByline(nil)
	if artist != "Unknown" || duration != nil {
		t.Errorf("empty byline = (%q, %v), want (Unknown, nil)", artist, duration)
	}
}

func TestCollectRenderersOrder(t *testing.T) {
	raw := json.RawMessage(`{"a": [{"x": {"id": 1}}, {"y": {"x": {"id": 2}}}]}`)
	got, err := decodeRenderers(raw, "x")
	if err != nil {
		t.Fatalf("decodeRenderers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d renderers, want 2", len(got))
	}
	if got[0]["id"].(float64) != 1 || got[1]["id"].(float64) != 2 {
		t.Errorf("renderers out of order: %v", got)
	}
}
