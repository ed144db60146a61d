package models

import "time"

// Show is a podcast show as stored in the database. The feed subsystem
// treats it as read-only except for RSSURL, which RegenerateFeedURL updates.
type Show struct {
	ID          int64     `db:"id" json:"id"`
	Slug        string    `db:"slug" json:"slug"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	ImageURL    *string   `db:"image_url" json:"image_url,omitempty"`
	RSSURL      *string   `db:"rss_url" json:"rss_url,omitempty"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ShowFeedInfo is a row of the admin feed directory: a show joined with its
// episode count.
type ShowFeedInfo struct {
	ID           int64     `db:"id"`
	Slug         string    `db:"slug"`
	Name         string    `db:"name"`
	EpisodeCount int       `db:"episode_count"`
	UpdatedAt    time.Time `db:"updated_at"`
}
