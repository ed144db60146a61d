package models

import "time"

// AnalyticsEvent is one tracked player/listener event. ShowID and EpisodeID
// are optional because page-level events are not tied to an episode.
type AnalyticsEvent struct {
	ID         int64     `db:"id" json:"id"`
	ShowID     *int64    `db:"show_id" json:"show_id,omitempty"`
	EpisodeID  *int64    `db:"episode_id" json:"episode_id,omitempty"`
	EventType  string    `db:"event_type" json:"event_type"`
	SessionID  string    `db:"session_id" json:"session_id"`
	OccurredAt time.Time `db:"occurred_at" json:"occurred_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// DailyStat is one row of the analytics_daily rollup table.
type DailyStat struct {
	Day       time.Time `db:"day" json:"day"`
	ShowID    *int64    `db:"show_id" json:"show_id,omitempty"`
	EventType string    `db:"event_type" json:"event_type"`
	Count     int64     `db:"count" json:"count"`
}
