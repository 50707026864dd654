package httpapi

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"reelrank/internal/history"
	payloadschema "reelrank/schema"
)

const maxImportBodyBytes = 1 << 20

type recordWatchRequest struct {
	MovieID int64    `json:"movie_id"`
	Title   string   `json:"title,omitempty"`
	Rating  *float64 `json:"rating,omitempty"`
}

func (s *Server) handleHistoryList(c echo.Context) error {
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		return failValidation(c, map[string]string{"user_id": "is required"})
	}

	entries, err := s.history.List(c.Request().Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("list watch history failed")
		return internalError(c, "Failed to load watch history")
	}

	return success(c, map[string]any{
		"items":   entries,
		"user_id": userID,
	})
}

func (s *Server) handleHistoryRecord(c echo.Context) error {
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		return failValidation(c, map[string]string{"user_id": "is required"})
	}

	var req recordWatchRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if req.MovieID <= 0 {
		return failValidation(c, map[string]string{"movie_id": "must be a positive integer"})
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 10) {
		return failValidation(c, map[string]string{"rating": "must be between 0 and 10"})
	}

	created, err := s.history.RecordWatch(c.Request().Context(), userID, req.MovieID, strings.TrimSpace(req.Title), req.Rating)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Int64("movie_id", req.MovieID).Msg("record watch failed")
		return internalError(c, "Failed to record watch")
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return successWithStatus(c, status, map[string]any{
		"user_id":  userID,
		"movie_id": req.MovieID,
		"created":  created,
	})
}

func (s *Server) handleHistoryImport(c echo.Context) error {
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		return failValidation(c, map[string]string{"user_id": "is required"})
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportBodyBytes))
	if err != nil {
		return failValidation(c, map[string]string{"body": "could not be read"})
	}

	imported, err := payloadschema.ValidateHistoryImportPayload(body)
	if err != nil {
		return failValidation(c, map[string]string{"payload": err.Error()})
	}

	entries := make([]history.Entry, 0, len(imported.Entries))
	for _, item := range imported.Entries {
		entry := history.Entry{MovieID: item.MovieID, Rating: item.Rating}
		if item.Title != nil {
			entry.Title = strings.TrimSpace(*item.Title)
		}
		if item.WatchedAt != nil {
			// Validated as RFC3339 by the payload schema.
			watchedAt, parseErr := time.Parse(time.RFC3339, strings.TrimSpace(*item.WatchedAt))
			if parseErr == nil {
				entry.WatchedAt = watchedAt.UTC()
			}
		}
		entries = append(entries, entry)
	}

	importedCount, err := s.history.Import(c.Request().Context(), userID, entries)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("import watch history failed")
		return internalError(c, "Failed to import watch history")
	}

	return success(c, map[string]any{
		"user_id":  userID,
		"imported": importedCount,
	})
}

func (s *Server) handleHistoryRemove(c echo.Context) error {
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		return failValidation(c, map[string]string{"user_id": "is required"})
	}
	movieID, err := parseMovieID(c.Param("movie_id"))
	if err != nil {
		return failValidation(c, map[string]string{"movie_id": err.Error()})
	}

	removed, err := s.history.Remove(c.Request().Context(), userID, movieID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Int64("movie_id", movieID).Msg("remove watch failed")
		return internalError(c, "Failed to remove watch entry")
	}
	if !removed {
		return failNotFound(c, "Watch entry not found")
	}

	return success(c, map[string]any{
		"user_id":  userID,
		"movie_id": movieID,
		"removed":  true,
	})
}
