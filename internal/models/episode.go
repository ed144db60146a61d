package models

import "time"

// Episode is a single show episode. Duration is stored as text because the
// admin accepts either raw seconds ("125") or a colon-delimited string
// ("5:30", "01:02:03"); the feed formatter normalizes it on output.
type Episode struct {
	ID             int64      `db:"id" json:"id"`
	ShowID         int64      `db:"show_id" json:"show_id"`
	Slug           string     `db:"slug" json:"slug"`
	Title          string     `db:"title" json:"title"`
	Description    *string    `db:"description" json:"description,omitempty"`
	AudioURL       string     `db:"audio_url" json:"audio_url"`
	AudioSizeBytes *int64     `db:"audio_size_bytes" json:"audio_size_bytes,omitempty"`
	ImageURL       *string    `db:"image_url" json:"image_url,omitempty"`
	Duration       *string    `db:"duration" json:"duration,omitempty"`
	SeasonNumber   *int       `db:"season_number" json:"season_number,omitempty"`
	EpisodeNumber  *int       `db:"episode_number" json:"episode_number,omitempty"`
	PublishDate    *time.Time `db:"publish_date" json:"publish_date,omitempty"`
	Published      bool       `db:"published" json:"published"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}
