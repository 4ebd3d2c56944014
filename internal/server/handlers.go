package server

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/handiism/jukebox/internal/acquire"
	"github.com/handiism/jukebox/internal/artwork"
	"github.com/handiism/jukebox/internal/library"
	"github.com/handiism/jukebox/internal/model"
	"github.com/handiism/jukebox/internal/session"
	"github.com/handiism/jukebox/internal/tags"
)

func readBody(c echo.Context) (string, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

func (s *Server) handleDownload(c echo.Context) error {
	ref, err := readBody(c)
	if err != nil || ref == "" {
		return c.String(http.StatusBadRequest, "missing source ref")
	}

	stdout, err := s.deps.Fetcher.Fetch(c.Request().Context(), ref)
	if err != nil {
		var toolErr *acquire.ToolError
		if errors.As(err, &toolErr) {
			return c.String(http.StatusBadRequest, toolErr.Diagnostic)
		}
		s.log.Error("download failed", "ref", ref, "error", err)
		return c.String(http.StatusInternalServerError, "download failed")
	}

	result, err := acquire.ParseResult(stdout)
	if err != nil {
		s.log.Error("unparseable download result", "ref", ref, "error", err)
		return c.String(http.StatusInternalServerError, "failed to parse download result")
	}

	thumbnail, err := s.deps.Finisher.Finish(result)
	if err != nil {
		s.log.Error("post-download finishing failed", "ref", ref, "error", err)
		return c.String(http.StatusInternalServerError, "failed to finish download")
	}

	return c.JSON(http.StatusOK, result.Summary(thumbnail))
}

func (s *Server) handleTempDownload(c echo.Context) error {
	id := c.Param("id")
	if id == "" || strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return c.String(http.StatusBadRequest, "invalid id")
	}

	path, err := s.deps.Fetcher.FetchTemp(c.Request().Context(), id)
	if err != nil {
		var toolErr *acquire.ToolError
		if errors.As(err, &toolErr) {
			return c.String(http.StatusBadRequest, toolErr.Diagnostic)
		}
		s.log.Error("temp download failed", "id", id, "error", err)
		return c.String(http.StatusInternalServerError, "download failed")
	}

	return c.String(http.StatusOK, path)
}

func (s *Server) handleHistory(c echo.Context) error {
	var track model.Track
	if err := c.Bind(&track); err != nil {
		return c.String(http.StatusBadRequest, "invalid track")
	}
	return c.JSON(http.StatusOK, s.deps.History.Add(track))
}

func (s *Server) handleSavePlaylist(c echo.Context) error {
	var playlist session.Playlist
	if err := c.Bind(&playlist); err != nil {
		return c.String(http.StatusBadRequest, "invalid playlist")
	}
	s.deps.Session.Save(playlist)
	return c.NoContent(http.StatusOK)
}

func (s *Server) handleLoadPlaylist(c echo.Context) error {
	playlist, ok := s.deps.Session.Load()
	if !ok {
		return c.String(http.StatusNotFound, "no saved playlist")
	}
	return c.JSON(http.StatusOK, playlist)
}

func (s *Server) handleClearPlaylist(c echo.Context) error {
	s.deps.Session.Clear()
	return c.NoContent(http.StatusOK)
}

type filesResponse struct {
	RecentlyPlayed []model.Track `json:"recently_played"`
	Files          []model.Track `json:"files"`
}

func (s *Server) handleFiles(c echo.Context) error {
	files, err := s.deps.Library.List()
	if err != nil {
		s.log.Error("listing library", "error", err)
		return c.String(http.StatusInternalServerError, "failed to list files")
	}
	return c.JSON(http.StatusOK, filesResponse{
		RecentlyPlayed: s.deps.History.List(),
		Files:          files,
	})
}

func (s *Server) handleArtistPlaylist(c echo.Context) error {
	groups, err := s.deps.Library.GroupByArtist()
	if err != nil {
		s.log.Error("grouping by artist", "error", err)
		return c.String(http.StatusInternalServerError, "failed to group by artist")
	}
	return c.JSON(http.StatusOK, groups)
}

func (s *Server) handleSearch(c echo.Context) error {
	query, err := readBody(c)
	if err != nil || query == "" {
		return c.String(http.StatusBadRequest, "missing query")
	}
	tracks, err := s.deps.Videos.Search(c.Request().Context(), query)
	if err != nil {
		s.log.Error("video search failed", "query", query, "error", err)
		return c.String(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, tracks)
}

func (s *Server) handleMusicSearch(c echo.Context) error {
	query, err := readBody(c)
	if err != nil || query == "" {
		return c.String(http.StatusBadRequest, "missing query")
	}
	tracks, err := s.deps.Music.Search(c.Request().Context(), query)
	if err != nil {
		s.log.Error("music search failed", "query", query, "error", err)
		return c.String(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, tracks)
}

type cropRequest struct {
	Filename string `json:"filename"`
	Image    string `json:"image"`
}

// cropImageName reduces a web image path such as "/img/T.jpeg?t=5" to
// the cover's file name inside the image directory.
func cropImageName(imagePath string) string {
	if i := strings.IndexByte(imagePath, '?'); i >= 0 {
		imagePath = imagePath[:i]
	}
	imagePath = strings.TrimPrefix(imagePath, "/")
	imagePath = strings.TrimPrefix(imagePath, "img/")
	return filepath.Base(imagePath)
}

func (s *Server) handleCrop(c echo.Context) error {
	var req cropRequest
	if err := c.Bind(&req); err != nil || req.Filename == "" || req.Image == "" {
		return c.String(http.StatusBadRequest, "invalid crop request")
	}

	err := s.deps.Library.CropCover(req.Filename, cropImageName(req.Image))
	switch {
	case err == nil:
		return c.NoContent(http.StatusOK)
	case errors.Is(err, artwork.ErrAlreadySquare):
		return c.String(http.StatusBadRequest, "already square")
	case errors.Is(err, artwork.ErrUnsupportedGeometry):
		return c.String(http.StatusBadRequest, "unsupported geometry")
	case errors.Is(err, library.ErrUnsupportedFormat):
		return c.String(http.StatusBadRequest, "unsupported audio format")
	default:
		s.log.Error("crop failed", "file", req.Filename, "error", err)
		return c.String(http.StatusInternalServerError, "crop failed")
	}
}

func (s *Server) handleEdit(c echo.Context) error {
	reader, err := c.Request().MultipartReader()
	if err != nil {
		return c.String(http.StatusBadRequest, "expected multipart form")
	}

	var req library.EditRequest
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return c.String(http.StatusBadRequest, "malformed multipart form")
		}

		// The filename selects the track every later field applies to,
		// so it has to lead the form.
		if req.Filename == "" && part.FormName() != "filename" {
			return c.String(http.StatusBadRequest, "filename must be the first field")
		}

		switch part.FormName() {
		case "filename":
			value, err := io.ReadAll(part)
			if err != nil {
				return c.String(http.StatusBadRequest, "malformed multipart form")
			}
			req.Filename = string(value)
		case "title":
			value, err := io.ReadAll(part)
			if err != nil {
				return c.String(http.StatusBadRequest, "malformed multipart form")
			}
			title := string(value)
			req.Title = &title
		case "artist":
			value, err := io.ReadAll(part)
			if err != nil {
				return c.String(http.StatusBadRequest, "malformed multipart form")
			}
			artist := string(value)
			req.Artist = &artist
		case "thumbnail":
			contentType := part.Header.Get("Content-Type")
			if !strings.HasPrefix(contentType, "image/") {
				return c.String(http.StatusBadRequest, "invalid thumbnail content type")
			}
			data, err := io.ReadAll(part)
			if err != nil {
				return c.String(http.StatusBadRequest, "malformed multipart form")
			}
			req.CoverData = data
			req.CoverMIME = contentType
		}
	}

	if req.Filename == "" {
		return c.String(http.StatusBadRequest, "missing filename")
	}

	err = s.deps.Library.Edit(req)
	switch {
	case err == nil:
		return c.NoContent(http.StatusOK)
	case errors.Is(err, library.ErrUnsupportedFormat):
		return c.String(http.StatusBadRequest, "unsupported audio format")
	default:
		var readErr *tags.ReadError
		if errors.As(err, &readErr) {
			return c.String(http.StatusBadRequest, "failed to read tag")
		}
		s.log.Error("edit failed", "file", req.Filename, "error", err)
		return c.String(http.StatusInternalServerError, "edit failed")
	}
}

func (s *Server) handleDelete(c echo.Context) error {
	filename, err := readBody(c)
	if err != nil || filename == "" {
		return c.String(http.StatusBadRequest, "missing filename")
	}

	err = s.deps.Library.Delete(filename)
	switch {
	case err == nil:
		return c.NoContent(http.StatusOK)
	case errors.Is(err, library.ErrUnsupportedFormat):
		return c.String(http.StatusBadRequest, "unsupported audio format")
	default:
		s.log.Error("delete failed", "file", filename, "error", err)
		return c.String(http.StatusInternalServerError, "delete failed")
	}
}
