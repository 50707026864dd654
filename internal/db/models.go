package db

import (
	"time"
)

// WatchHistoryEntry maps reel.watch_history. One row per (user, movie); a
// re-watch updates watched_at and, when supplied, the rating.
type WatchHistoryEntry struct {
	WatchHistoryID int64      `gorm:"column:watch_history_id;primaryKey;autoIncrement"`
	UserID         string     `gorm:"column:user_id;type:text;not null;uniqueIndex:idx_watch_history_user_movie"`
	MovieID        int64      `gorm:"column:movie_id;type:bigint;not null;uniqueIndex:idx_watch_history_user_movie"`
	Title          string     `gorm:"column:title;type:text;not null;default:''"`
	Rating         *float64   `gorm:"column:rating;type:double precision"`
	WatchedAt      time.Time  `gorm:"column:watched_at;type:timestamptz;not null;default:now()"`
	DeletedAt      *time.Time `gorm:"column:deleted_at;type:timestamptz"`
	CreatedAt      time.Time  `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
}

func (WatchHistoryEntry) TableName() string { return "reel.watch_history" }

// RecommendationRequest maps reel.recommendation_requests, a ledger of served
// recommendation runs feeding the stats endpoint.
type RecommendationRequest struct {
	RequestID   int64     `gorm:"column:request_id;primaryKey;autoIncrement"`
	Kind        string    `gorm:"column:kind;type:text;not null"`
	Subject     string    `gorm:"column:subject;type:text;not null"`
	ResultCount int       `gorm:"column:result_count;type:integer;not null;default:0"`
	RequestedAt time.Time `gorm:"column:requested_at;type:timestamptz;not null;default:now()"`
}

func (RecommendationRequest) TableName() string { return "reel.recommendation_requests" }

func autoMigrateModels() []any {
	return []any{
		&WatchHistoryEntry{},
		&RecommendationRequest{},
	}
}
