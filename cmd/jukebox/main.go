package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/handiism/jukebox/internal/acquire"
	"github.com/handiism/jukebox/internal/artwork"
	"github.com/handiism/jukebox/internal/config"
	"github.com/handiism/jukebox/internal/history"
	jhttp "github.com/handiism/jukebox/internal/http"
	"github.com/handiism/jukebox/internal/library"
	"github.com/handiism/jukebox/internal/search"
	"github.com/handiism/jukebox/internal/server"
	"github.com/handiism/jukebox/internal/session"
	"github.com/handiism/jukebox/internal/tags"
)

func main() {
	var (
		configFlag  = flag.String("config", "", "Path to config file")
		addrFlag    = flag.String("addr", "", "Listen address (overrides config)")
		verboseFlag = flag.Bool("verbose", false, "Show debug output")
	)
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addrFlag != "" {
		settings.ListenAddr = *addrFlag
	}

	level := parseLevel(settings.LogLevel)
	if *verboseFlag {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	for _, dir := range []string{settings.MusicDir, settings.ImageDir, settings.TempDir, settings.PublicDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("creating directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}
	if index := filepath.Join(settings.PublicDir, "index.html"); !exists(index) {
		log.Warn("no web UI found", "path", index)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		cancel()
	}()

	checkTool(ctx, settings.ToolBinary, log)

	locker := tags.NewLocker()
	cache := artwork.NewCache(settings.MusicDir, settings.ImageDir, locker, log)
	lib := library.NewService(settings.MusicDir, settings.ImageDir, cache, locker, log)
	fetcher := acquire.NewFetcher(settings.ToolBinary, settings.MusicDir, settings.TempDir, log)
	finisher := acquire.NewFinisher(settings.MusicDir, cache, locker, log)

	client := jhttp.NewClient()

	go func() {
		if err := lib.WarmScan(ctx); err != nil && ctx.Err() == nil {
			log.Warn("artwork warm scan", "error", err)
		}
	}()
	go sweepTempDir(ctx, settings.TempDir, settings.TempSweepInterval, log)

	srv := server.New(server.Deps{
		Settings: settings,
		Library:  lib,
		Fetcher:  fetcher,
		Finisher: finisher,
		Videos:   search.NewVideoClient(client, settings.SearchLimit),
		Music:    search.NewMusicClient(client, settings.SearchLimit),
		History:  history.NewStore(settings.HistorySize),
		Session:  session.NewStore(),
		Log:      log,
	})

	if err := srv.Start(ctx); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// checkTool asks the downloader to self-update. Failure is only worth a
// warning: the server can still serve the existing library.
func checkTool(ctx context.Context, binary string, log *slog.Logger) {
	cmd := exec.CommandContext(ctx, binary, "-U")
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		log.Warn("downloader self-update failed", "binary", binary, "error", err)
	}
}

// sweepTempDir periodically empties the temporary preview directory.
func sweepTempDir(ctx context.Context, dir string, interval time.Duration, log *slog.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			entries, err := os.ReadDir(dir)
			if err != nil {
				log.Warn("sweeping temp dir", "error", err)
				continue
			}
			for _, entry := range entries {
				if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
					log.Warn("removing temp file", "file", entry.Name(), "error", err)
				}
			}
			log.Debug("temp dir swept", "removed", len(entries))
		}
	}
}
