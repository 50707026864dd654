package httpapi

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"reelrank/internal/recommend"
)

var (
	errRequired       = errors.New("is required")
	errInvalidMovieID = errors.New("must be a positive integer")
)

type hybridRequest struct {
	MovieIDs []int64 `json:"movie_ids"`
}

func (s *Server) handleSearch(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return failValidation(c, map[string]string{"q": "is required"})
	}

	movies, err := s.search.SearchMovies(c.Request().Context(), query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("movie search failed")
		return internalError(c, "Failed to search movies")
	}

	return success(c, map[string]any{
		"items": movies,
		"query": query,
	})
}

func (s *Server) handleSimilar(c echo.Context) error {
	movieID, err := parseMovieID(c.Param("movie_id"))
	if err != nil {
		return failValidation(c, map[string]string{"movie_id": err.Error()})
	}

	limit, err := parsePositiveInt(c.QueryParam("limit"), defaultResultLimit, 1, maxResultLimit)
	if err != nil {
		return failValidation(c, map[string]string{"limit": err.Error()})
	}

	prefs, fieldErrors := parsePreferences(c)
	if len(fieldErrors) > 0 {
		return failValidation(c, fieldErrors)
	}

	candidates, err := s.engine.SimilarMovies(c.Request().Context(), movieID, prefs)
	if err != nil {
		s.logger.Error().Err(err).Int64("movie_id", movieID).Msg("similar recommendations failed")
		return internalError(c, "Failed to build recommendations")
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	s.history.RecordRequest(c.Request().Context(), "similar", strconv.FormatInt(movieID, 10), len(candidates))

	return success(c, map[string]any{
		"items":    candidates,
		"movie_id": movieID,
		"limit":    limit,
	})
}

func (s *Server) handleHybrid(c echo.Context) error {
	var req hybridRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if len(req.MovieIDs) < 2 || len(req.MovieIDs) > 5 {
		return failValidation(c, map[string]string{"movie_ids": "must contain between 2 and 5 ids"})
	}
	for _, id := range req.MovieIDs {
		if id <= 0 {
			return failValidation(c, map[string]string{"movie_ids": "must contain positive ids"})
		}
	}

	candidates, err := s.engine.HybridRecommendations(c.Request().Context(), req.MovieIDs)
	if err != nil {
		s.logger.Error().Err(err).Ints64("movie_ids", req.MovieIDs).Msg("hybrid recommendations failed")
		return internalError(c, "Failed to build recommendations")
	}

	s.history.RecordRequest(c.Request().Context(), "hybrid", joinInt64s(req.MovieIDs), len(candidates))

	return success(c, map[string]any{
		"items":     candidates,
		"movie_ids": req.MovieIDs,
	})
}

func (s *Server) handlePersonalized(c echo.Context) error {
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		return failValidation(c, map[string]string{"user_id": "is required"})
	}

	limit, err := parsePositiveInt(c.QueryParam("limit"), maxResultLimit, 1, maxResultLimit)
	if err != nil {
		return failValidation(c, map[string]string{"limit": err.Error()})
	}

	watched, ratings, err := s.history.SeedInput(c.Request().Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("load watch history failed")
		return internalError(c, "Failed to load watch history")
	}

	candidates, err := s.engine.PersonalizedRecommendations(c.Request().Context(), watched, ratings)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("personalized recommendations failed")
		return internalError(c, "Failed to build recommendations")
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	s.history.RecordRequest(c.Request().Context(), "personalized", userID, len(candidates))

	return success(c, map[string]any{
		"items":   candidates,
		"user_id": userID,
		"limit":   limit,
	})
}

func parsePreferences(c echo.Context) (recommend.Preferences, map[string]string) {
	fieldErrors := map[string]string{}
	var prefs recommend.Preferences

	if raw := strings.TrimSpace(c.QueryParam("mood")); raw != "" {
		mood := recommend.ParseMood(raw)
		if mood == "" {
			fieldErrors["mood"] = "is not a known mood"
		} else {
			prefs.Mood = mood
		}
	}

	newReleases, err := parseBoolParam(c.QueryParam("prefer_new_releases"))
	if err != nil {
		fieldErrors["prefer_new_releases"] = err.Error()
	}
	prefs.PreferNewReleases = newReleases

	sameLanguage, err := parseBoolParam(c.QueryParam("prefer_same_language"))
	if err != nil {
		fieldErrors["prefer_same_language"] = err.Error()
	}
	prefs.PreferSameLanguage = sameLanguage

	if weight, err := parseWeightParam(c.QueryParam("weight_director")); err != nil {
		fieldErrors["weight_director"] = err.Error()
	} else {
		prefs.WeightDirector = weight
	}
	if weight, err := parseWeightParam(c.QueryParam("weight_genre")); err != nil {
		fieldErrors["weight_genre"] = err.Error()
	} else {
		prefs.WeightGenre = weight
	}
	if weight, err := parseWeightParam(c.QueryParam("weight_cast")); err != nil {
		fieldErrors["weight_cast"] = err.Error()
	} else {
		prefs.WeightCast = weight
	}

	if len(fieldErrors) == 0 {
		return prefs, nil
	}
	return prefs, fieldErrors
}

func parseMovieID(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, errRequired
	}
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidMovieID
	}
	return id, nil
}

func joinInt64s(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
