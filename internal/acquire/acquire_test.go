package acquire

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/jukebox/internal/artwork"
	"github.com/handiism/jukebox/internal/model"
	"github.com/handiism/jukebox/internal/tags"
)

type attempt struct {
	stdout []byte
	stderr []byte
	err    error
}

type scriptedExecutor struct {
	attempts []attempt
	calls    int
	lastArgs []string
}

func (e *scriptedExecutor) Run(_ context.Context, _ string, args []string) ([]byte, []byte, error) {
	e.lastArgs = args
	if e.calls >= len(e.attempts) {
		panic("scripted executor ran out of attempts")
	}
	a := e.attempts[e.calls]
	e.calls++
	return a.stdout, a.stderr, a.err
}

func newTestFetcher(t *testing.T, exec Executor) (*Fetcher, string) {
	t.Helper()
	tempDir := t.TempDir()
	return NewFetcher("yt-dlp", t.TempDir(), tempDir, nil, WithExecutor(exec)), tempDir
}

func TestFetchFailsTwiceThenSucceeds(t *testing.T) {
	want := []byte(`{"title":"ok"}`)
	exec := &scriptedExecutor{attempts: []attempt{
		{stderr: []byte("network hiccup")},
		{err: errors.New("fork failed")},
		{stdout: want},
	}}
	f, _ := newTestFetcher(t, exec)

	got, err := f.Fetch(context.Background(), "some-ref")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if exec.calls != 3 {
		t.Errorf("attempts = %d, want 3", exec.calls)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestFetchExhaustsRetriesOnDiagnostics(t *testing.T) {
	exec := &scriptedExecutor{attempts: []attempt{
		{stderr: []byte("bad url")},
		{stderr: []byte("bad url")},
		{stderr: []byte("still a bad url")},
	}}
	f, _ := newTestFetcher(t, exec)

	_, err := f.Fetch(context.Background(), "nope")
	if exec.calls != 3 {
		t.Errorf("attempts = %d, want 3", exec.calls)
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("err = %v (%T), want *ToolError", err, err)
	}
	if toolErr.Diagnostic != "still a bad url" {
		t.Errorf("diagnostic = %q, want the last attempt's stderr", toolErr.Diagnostic)
	}
}

func TestFetchExhaustsRetriesOnSpawnFailure(t *testing.T) {
	boom := errors.New("exec: not found")
	exec := &scriptedExecutor{attempts: []attempt{
		{err: boom}, {err: boom}, {err: boom},
	}}
	f, _ := newTestFetcher(t, exec)

	_, err := f.Fetch(context.Background(), "ref")
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("err = %v (%T), want *SpawnError", err, err)
	}
	if !errors.Is(err, boom) {
		t.Error("SpawnError should wrap the launch failure")
	}
}

func TestFetchPassesRefAfterTerminator(t *testing.T) {
	exec := &scriptedExecutor{attempts: []attempt{{stdout: []byte("{}")}}}
	f, _ := newTestFetcher(t, exec)

	if _, err := f.Fetch(context.Background(), "--evil-flag"); err != nil {
		t.Fatal(err)
	}

	args := exec.lastArgs
	if len(args) < 2 || args[len(args)-2] != "--" || args[len(args)-1] != "--evil-flag" {
		t.Errorf("source ref must follow the -- terminator, got %v", args)
	}
}

func TestFetchTempExistingIsNoop(t *testing.T) {
	exec := &scriptedExecutor{}
	f, tempDir := newTestFetcher(t, exec)
	if err := os.WriteFile(filepath.Join(tempDir, "abc.mp3"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := f.FetchTemp(context.Background(), "abc")
	if err != nil {
		t.Fatalf("FetchTemp: %v", err)
	}
	if got != "/td/abc.mp3" {
		t.Errorf("path = %q, want /td/abc.mp3", got)
	}
	if exec.calls != 0 {
		t.Errorf("existing temp entry must not invoke the tool, got %d calls", exec.calls)
	}
}

func TestFetchTempRetries(t *testing.T) {
	exec := &scriptedExecutor{attempts: []attempt{
		{stderr: []byte("throttled")},
		{},
	}}
	f, _ := newTestFetcher(t, exec)

	got, err := f.FetchTemp(context.Background(), "xyz")
	if err != nil {
		t.Fatalf("FetchTemp: %v", err)
	}
	if got != "/td/xyz.mp3" {
		t.Errorf("path = %q, want /td/xyz.mp3", got)
	}
	if exec.calls != 2 {
		t.Errorf("attempts = %d, want 2", exec.calls)
	}
}

func TestParseResult(t *testing.T) {
	stdout := []byte(`{"title":"Song","description":null,"thumbnail":"https://x/y.jpg","duration":215.7,"uploader":"U"}`)

	res, err := ParseResult(stdout)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	if res.Title != "Song" || res.Thumbnail != "https://x/y.jpg" {
		t.Errorf("unexpected fields: %+v", res)
	}
	if res.Duration != 215.7 {
		t.Errorf("duration = %v, want 215.7", res.Duration)
	}
}

func TestParseResultMalformed(t *testing.T) {
	_, err := ParseResult([]byte("WARNING: not json"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v (%T), want *ParseError", err, err)
	}
}

func TestResolvedArtist(t *testing.T) {
	tests := []struct {
		name string
		res  RawResult
		want string
	}{
		{"artist wins", RawResult{Artist: "A", Uploader: "U", Channel: "C"}, "A"},
		{"uploader before channel", RawResult{Uploader: "U", Channel: "C"}, "U"},
		{"channel last", RawResult{Channel: "C"}, "C"},
		{"all absent", RawResult{}, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.ResolvedArtist(); got != tt.want {
				t.Errorf("ResolvedArtist() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	res := RawResult{Title: "Song", Uploader: "U", Duration: 215.7}
	track := res.Summary("/img/Song.jpeg")

	if track.Filename != "Song.mp3" {
		t.Errorf("filename = %q, want Song.mp3", track.Filename)
	}
	if track.Artist != "U" {
		t.Errorf("artist = %q, want U", track.Artist)
	}
	if track.Duration == nil || *track.Duration != 215 {
		t.Errorf("duration = %v, want 215", track.Duration)
	}
}

func coverJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeTopicTrack(t *testing.T, musicDir, title string, cover []byte) {
	t.Helper()
	path := filepath.Join(musicDir, title+".mp3")
	if err := os.WriteFile(path, []byte("not really audio"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := tags.Open(path, tags.KindMP3)
	if err != nil {
		t.Fatal(err)
	}
	f.SetTitle(title)
	f.SetCover(model.Cover{Data: cover, Format: model.FormatJPEG})
	if err := f.Save(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func newTestFinisher(t *testing.T) (*Finisher, string, *artwork.Cache) {
	t.Helper()
	musicDir := t.TempDir()
	locker := tags.NewLocker()
	cache := artwork.NewCache(musicDir, t.TempDir(), locker, nil)
	return NewFinisher(musicDir, cache, locker, nil), musicDir, cache
}

func TestFinishNonTopicPassthrough(t *testing.T) {
	fin, _, _ := newTestFinisher(t)
	res := &RawResult{Title: "Song", Description: "a live set", Thumbnail: "https://x/y.jpg"}

	thumb, err := fin.Finish(res)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if thumb != "https://x/y.jpg" {
		t.Errorf("thumbnail = %q, want the remote URL untouched", thumb)
	}
}

func TestFinishCropsWideTopicCover(t *testing.T) {
	fin, musicDir, cache := newTestFinisher(t)
	writeTopicTrack(t, musicDir, "Wide", coverJPEG(t, 16, 6))
	res := &RawResult{Title: "Wide", Description: topicMarker + " SomeLabel", Thumbnail: "https://x/y.jpg"}

	thumb, err := fin.Finish(res)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if thumb != cache.WebPath("Wide") {
		t.Errorf("thumbnail = %q, want the local cache path", thumb)
	}

	cached, err := os.ReadFile(cache.Path("Wide"))
	if err != nil {
		t.Fatalf("cache entry missing: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(cached))
	if err != nil {
		t.Fatalf("cache entry is not valid JPEG: %v", err)
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 6 {
		t.Errorf("cropped bounds = %v, want 6x6", img.Bounds())
	}

	f, err := tags.Open(filepath.Join(musicDir, "Wide.mp3"), tags.KindMP3)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	embedded, ok := f.Cover()
	if !ok {
		t.Fatal("embedded cover missing after finish")
	}
	if !bytes.Equal(embedded.Data, cached) {
		t.Error("embedded cover and cache entry must match after re-crop")
	}
}

func TestFinishSquareTopicCoverIsNoop(t *testing.T) {
	fin, musicDir, cache := newTestFinisher(t)
	original := coverJPEG(t, 8, 8)
	writeTopicTrack(t, musicDir, "Square", original)
	res := &RawResult{Title: "Square", Description: topicMarker + " SomeLabel"}

	if _, err := fin.Finish(res); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	f, err := tags.Open(filepath.Join(musicDir, "Square.mp3"), tags.KindMP3)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	embedded, _ := f.Cover()
	if !bytes.Equal(embedded.Data, original) {
		t.Error("square cover must be left untouched")
	}
	if _, err := os.Stat(cache.Path("Square")); !os.IsNotExist(err) {
		t.Error("square cover must not produce a cache entry")
	}
}

func TestFinishMissingFileIsError(t *testing.T) {
	fin, _, _ := newTestFinisher(t)
	res := &RawResult{Title: "Ghost", Description: topicMarker + " X"}

	if _, err := fin.Finish(res); err == nil {
		t.Fatal("expected an error when the downloaded file cannot be opened")
	}
}
