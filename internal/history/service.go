package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"reelrank/internal/db"
	"reelrank/internal/globaltime"
)

// Service owns the watch-history and ratings store. The recommendation
// engine itself is stateless; this is the caller-side persistence feeding
// the personalized pipeline.
type Service struct {
	pool   *db.Pool
	logger zerolog.Logger
}

func NewService(pool *db.Pool, logger zerolog.Logger) *Service {
	return &Service{
		pool:   pool,
		logger: logger,
	}
}

// Entry is one watch-history row.
type Entry struct {
	MovieID   int64     `json:"movie_id"`
	Title     string    `json:"title,omitempty"`
	Rating    *float64  `json:"rating,omitempty"`
	WatchedAt time.Time `json:"watched_at"`
}

// RecordWatch upserts a watch event. A re-watch refreshes watched_at and,
// when a rating is supplied, replaces the stored rating.
func (s *Service) RecordWatch(ctx context.Context, userID string, movieID int64, title string, rating *float64) (bool, error) {
	if s == nil || s.pool == nil {
		return false, fmt.Errorf("history service is not initialized")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, fmt.Errorf("user id is required")
	}
	if movieID <= 0 {
		return false, fmt.Errorf("movie id must be positive")
	}
	if rating != nil && (*rating < 0 || *rating > 10) {
		return false, fmt.Errorf("rating must be between 0 and 10")
	}

	return s.upsert(ctx, userID, movieID, strings.TrimSpace(title), rating, globaltime.UTC())
}

func (s *Service) upsert(ctx context.Context, userID string, movieID int64, title string, rating *float64, watchedAt time.Time) (bool, error) {
	const q = `
INSERT INTO reel.watch_history (
	user_id,
	movie_id,
	title,
	rating,
	watched_at,
	created_at,
	updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (user_id, movie_id) DO UPDATE
SET
	title = CASE WHEN EXCLUDED.title <> '' THEN EXCLUDED.title ELSE reel.watch_history.title END,
	rating = COALESCE(EXCLUDED.rating, reel.watch_history.rating),
	watched_at = EXCLUDED.watched_at,
	deleted_at = NULL,
	updated_at = EXCLUDED.updated_at
RETURNING (xmax = 0)
`

	var inserted bool
	if err := s.pool.QueryRow(ctx, q, userID, movieID, title, rating, watchedAt, globaltime.UTC()).Scan(&inserted); err != nil {
		return false, fmt.Errorf("upsert watch history: %w", err)
	}
	return inserted, nil
}

// Remove soft-deletes one history entry. It reports whether a live entry was
// removed.
func (s *Service) Remove(ctx context.Context, userID string, movieID int64) (bool, error) {
	if s == nil || s.pool == nil {
		return false, fmt.Errorf("history service is not initialized")
	}

	const q = `
UPDATE reel.watch_history
SET deleted_at = $3, updated_at = $3
WHERE user_id = $1
  AND movie_id = $2
  AND deleted_at IS NULL
`

	tag, err := s.pool.Exec(ctx, q, strings.TrimSpace(userID), movieID, globaltime.UTC())
	if err != nil {
		return false, fmt.Errorf("delete watch history entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List returns the user's live history, most recent watch first.
func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	if s == nil || s.pool == nil {
		return nil, fmt.Errorf("history service is not initialized")
	}

	const q = `
SELECT movie_id, title, rating, watched_at
FROM reel.watch_history
WHERE user_id = $1
  AND deleted_at IS NULL
ORDER BY watched_at DESC, movie_id DESC
`

	rows, err := s.pool.Query(ctx, q, strings.TrimSpace(userID))
	if err != nil {
		return nil, fmt.Errorf("query watch history: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, 16)
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.MovieID, &entry.Title, &entry.Rating, &entry.WatchedAt); err != nil {
			return nil, fmt.Errorf("scan watch history row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watch history rows: %w", err)
	}
	return entries, nil
}

// SeedInput returns the history in the shape the personalized pipeline
// consumes: ordered movie ids plus the sparse rating map.
func (s *Service) SeedInput(ctx context.Context, userID string) ([]int64, map[int64]float64, error) {
	entries, err := s.List(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]int64, 0, len(entries))
	ratings := make(map[int64]float64, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.MovieID)
		if entry.Rating != nil {
			ratings[entry.MovieID] = *entry.Rating
		}
	}
	return ids, ratings, nil
}

// Import bulk-inserts validated history entries for a user. It returns how
// many rows were written.
func (s *Service) Import(ctx context.Context, userID string, entries []Entry) (int, error) {
	if s == nil || s.pool == nil {
		return 0, fmt.Errorf("history service is not initialized")
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, fmt.Errorf("user id is required")
	}

	imported := 0
	for _, entry := range entries {
		if entry.MovieID <= 0 {
			return imported, fmt.Errorf("import movie %d: movie id must be positive", entry.MovieID)
		}
		if entry.Rating != nil && (*entry.Rating < 0 || *entry.Rating > 10) {
			return imported, fmt.Errorf("import movie %d: rating must be between 0 and 10", entry.MovieID)
		}

		watchedAt := entry.WatchedAt
		if watchedAt.IsZero() {
			watchedAt = globaltime.UTC()
		}
		inserted, err := s.upsert(ctx, userID, entry.MovieID, strings.TrimSpace(entry.Title), entry.Rating, watchedAt.UTC())
		if err != nil {
			return imported, fmt.Errorf("import movie %d: %w", entry.MovieID, err)
		}
		if inserted {
			imported++
		}
	}
	return imported, nil
}

// RecordRequest appends one row to the recommendation-request ledger. A
// ledger failure is logged, never surfaced.
func (s *Service) RecordRequest(ctx context.Context, kind, subject string, resultCount int) {
	if s == nil || s.pool == nil {
		return
	}

	const q = `
INSERT INTO reel.recommendation_requests (kind, subject, result_count, requested_at)
VALUES ($1, $2, $3, $4)
`

	if _, err := s.pool.Exec(ctx, q, kind, subject, resultCount, globaltime.UTC()); err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Msg("failed to record recommendation request")
	}
}
