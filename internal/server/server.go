package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/handiism/jukebox/internal/acquire"
	"github.com/handiism/jukebox/internal/config"
	"github.com/handiism/jukebox/internal/history"
	"github.com/handiism/jukebox/internal/library"
	"github.com/handiism/jukebox/internal/search"
	"github.com/handiism/jukebox/internal/session"
)

// Deps bundles everything the HTTP gateway delegates to.
type Deps struct {
	Settings *config.Settings
	Library  *library.Service
	Fetcher  *acquire.Fetcher
	Finisher *acquire.Finisher
	Videos   *search.VideoClient
	Music    *search.MusicClient
	History  *history.Store
	Session  *session.Store
	Log      *slog.Logger
}

// Server is the HTTP gateway: the JSON API plus the static web player.
type Server struct {
	deps Deps
	log  *slog.Logger
	ec   *echo.Echo
}

// New builds the gateway and registers all routes.
func New(deps Deps) *Server {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	s := &Server{deps: deps, log: deps.Log}

	ec := echo.New()
	ec.HideBanner = true
	ec.HidePort = true
	ec.Use(middleware.Recover())
	ec.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogMethod: true,
		LogURI:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	ec.POST("/download", s.handleDownload)
	ec.GET("/temp-download/:id", s.handleTempDownload)
	ec.POST("/history", s.handleHistory)
	ec.POST("/save-playlist", s.handleSavePlaylist)
	ec.GET("/load-playlist", s.handleLoadPlaylist)
	ec.POST("/clear-playlist", s.handleClearPlaylist)

	ec.GET("/api/files", s.handleFiles)
	ec.GET("/api/artist-playlist", s.handleArtistPlaylist)
	ec.POST("/api/search", s.handleSearch)
	ec.POST("/api/msearch", s.handleMusicSearch)
	ec.POST("/api/crop", s.handleCrop)
	ec.POST("/api/edit", s.handleEdit)
	ec.POST("/api/delete", s.handleDelete)

	settings := deps.Settings
	ec.Static("/m", settings.MusicDir)
	ec.Static("/td", settings.TempDir)
	ec.Static("/img", settings.ImageDir)
	ec.File("/", filepath.Join(settings.PublicDir, "index.html"))
	ec.Static("/", settings.PublicDir)

	s.ec = ec
	return s
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.ec.Shutdown(shutdownCtx); err != nil {
			s.log.Error("shutdown", "error", err)
		}
	}()

	s.log.Info("listening", "addr", s.deps.Settings.ListenAddr)
	if err := s.ec.Start(s.deps.Settings.ListenAddr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
