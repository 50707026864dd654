package history

import (
	"context"
	"fmt"
	"time"
)

// Stats summarizes the store for the stats endpoint.
type Stats struct {
	HistoryEntries  int64            `json:"history_entries"`
	Users           int64            `json:"users"`
	RatedEntries    int64            `json:"rated_entries"`
	Requests        int64            `json:"requests"`
	LastWatchedAt   *time.Time       `json:"last_watched_at,omitempty"`
	LastRequestedAt *time.Time       `json:"last_requested_at,omitempty"`
	RequestsByKind  map[string]int64 `json:"requests_by_kind"`
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if s == nil || s.pool == nil {
		return nil, fmt.Errorf("history service is not initialized")
	}

	const q = `
SELECT
	(SELECT COUNT(*) FROM reel.watch_history WHERE deleted_at IS NULL) AS history_entries,
	(SELECT COUNT(DISTINCT user_id) FROM reel.watch_history WHERE deleted_at IS NULL) AS users,
	(SELECT COUNT(*) FROM reel.watch_history WHERE deleted_at IS NULL AND rating IS NOT NULL) AS rated_entries,
	(SELECT COUNT(*) FROM reel.recommendation_requests) AS requests,
	(SELECT MAX(watched_at) FROM reel.watch_history WHERE deleted_at IS NULL) AS last_watched_at,
	(SELECT MAX(requested_at) FROM reel.recommendation_requests) AS last_requested_at
`

	var stats Stats
	if err := s.pool.QueryRow(ctx, q).Scan(
		&stats.HistoryEntries,
		&stats.Users,
		&stats.RatedEntries,
		&stats.Requests,
		&stats.LastWatchedAt,
		&stats.LastRequestedAt,
	); err != nil {
		return nil, fmt.Errorf("query history stats: %w", err)
	}

	const kindQuery = `
SELECT kind, COUNT(*)::BIGINT
FROM reel.recommendation_requests
GROUP BY kind
ORDER BY kind
`
	rows, err := s.pool.Query(ctx, kindQuery)
	if err != nil {
		return nil, fmt.Errorf("query request kinds: %w", err)
	}
	defer rows.Close()

	stats.RequestsByKind = map[string]int64{}
	for rows.Next() {
		var kind string
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan request kind: %w", err)
		}
		stats.RequestsByKind[kind] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate request kinds: %w", err)
	}

	return &stats, nil
}
