package acquire

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// maxAttempts bounds the retry loop for one acquisition request.
const maxAttempts = 3

// Executor abstracts running the acquisition tool, primarily so tests can
// script attempt outcomes.
type Executor interface {
	// Run executes the binary and returns captured stdout and stderr.
	// err is non-nil only when the process could not be launched; a
	// launched process that exits non-zero reports itself through stderr.
	Run(ctx context.Context, binary string, args []string) (stdout, stderr []byte, err error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, nil, err
	}
	return stdout.Bytes(), stderr.Bytes(), nil
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithExecutor injects a custom executor (for tests).
func WithExecutor(exec Executor) Option {
	return func(f *Fetcher) {
		if exec != nil {
			f.exec = exec
		}
	}
}

// Fetcher spawns the external acquisition tool and enforces the bounded
// retry policy.
//
// One Fetch call is one request-scoped unit of work: attempts run
// sequentially, concurrent Fetch calls for the same source reference run
// fully independent tool invocations, and a spawned tool always runs to
// completion (no cancellation mid-attempt beyond the context passed to the
// process itself).
type Fetcher struct {
	binary   string
	musicDir string
	tempDir  string
	exec     Executor
	log      *slog.Logger
}

// NewFetcher constructs a Fetcher around the given tool binary.
func NewFetcher(binary, musicDir, tempDir string, log *slog.Logger, opts ...Option) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	f := &Fetcher{
		binary:   binary,
		musicDir: musicDir,
		tempDir:  tempDir,
		exec:     commandExecutor{},
		log:      log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch acquires the track identified by ref into the track store and
// returns the tool's structured stdout.
//
// The tool is configured to select best audio, skip playlist expansion,
// embed thumbnail and metadata, transcode to mp3, print one JSON document
// on stdout, and write the file as <music-dir>/<title>.<ext>.
//
// An attempt fails when the process cannot be launched or when it writes
// any diagnostic output; up to three attempts are made. After the final
// attempt the last failure is returned as *SpawnError or *ToolError
// respectively. Callers must not inspect the track store before the
// returned stdout has been parsed: failed attempts may leave partial
// files behind.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	args := []string{
		"-f", "bestaudio/best",
		"--no-playlist",
		"--no-warning",
		"--embed-thumbnail",
		"--embed-metadata",
		"--print-json",
		"-x",
		"--audio-format", "mp3",
		"-o", filepath.Join(f.musicDir, "%(title)s.%(ext)s"),
		"--", ref,
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		stdout, stderr, err := f.exec.Run(ctx, f.binary, args)
		if err != nil {
			f.log.Error("acquisition tool failed to launch", "ref", ref, "attempt", attempt, "err", err)
			lastErr = &SpawnError{Err: err}
			continue
		}
		if len(stderr) > 0 {
			f.log.Error("acquisition tool diagnostics", "ref", ref, "attempt", attempt, "stderr", string(stderr))
			lastErr = &ToolError{Diagnostic: string(stderr)}
			continue
		}
		return stdout, nil
	}
	return nil, lastErr
}

// FetchTemp acquires an ephemeral preview of the track identified by id
// into the temp store and returns its serving path (/td/<id>.mp3).
//
// The temp store is keyed by id: when <temp-dir>/<id>.mp3 already exists
// the call is an immediate no-op success. Otherwise the tool runs with the
// embedding and structured-output flags omitted, under the same retry
// policy as Fetch.
func (f *Fetcher) FetchTemp(ctx context.Context, id string) (string, error) {
	target := filepath.Join(f.tempDir, id+".mp3")
	servePath := "/td/" + id + ".mp3"

	if _, err := os.Stat(target); err == nil {
		return servePath, nil
	}

	args := []string{
		"-f", "bestaudio/best",
		"--no-playlist",
		"--no-warning",
		"-x",
		"--audio-format", "mp3",
		"-o", target,
		"--", id,
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		_, stderr, err := f.exec.Run(ctx, f.binary, args)
		if err != nil {
			f.log.Error("temp acquisition failed to launch", "id", id, "attempt", attempt, "err", err)
			lastErr = &SpawnError{Err: err}
			continue
		}
		if len(stderr) > 0 {
			f.log.Error("temp acquisition diagnostics", "id", id, "attempt", attempt, "stderr", string(stderr))
			lastErr = &ToolError{Diagnostic: string(stderr)}
			continue
		}
		return servePath, nil
	}
	return "", lastErr
}
