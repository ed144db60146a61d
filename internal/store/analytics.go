package store

import (
	"time"

	"castbuzz/internal/models"

	"github.com/pkg/errors"
)

// InsertAnalyticsEvents writes a batch of events in one transaction.
func (s *Store) InsertAnalyticsEvents(events []models.AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning analytics insert")
	}

	query := `
		INSERT INTO analytics_events (show_id, episode_id, event_type, session_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, e := range events {
		if _, err := tx.Exec(query, e.ShowID, e.EpisodeID, e.EventType, e.SessionID, e.OccurredAt); err != nil {
			tx.Rollback()
			return errors.Wrap(err, "inserting analytics event")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing analytics insert")
	}
	return nil
}

// RollupAnalyticsDay re-derives the analytics_daily rows for one day from
// the raw events. Running it again for the same day overwrites the counts,
// so rollups can be replayed safely.
func (s *Store) RollupAnalyticsDay(day time.Time) error {
	query := `
		INSERT INTO analytics_daily (day, show_id, event_type, count)
		SELECT occurred_at::date, COALESCE(show_id, 0), event_type, COUNT(*)
		FROM analytics_events
		WHERE occurred_at >= $1 AND occurred_at < $2
		GROUP BY occurred_at::date, COALESCE(show_id, 0), event_type
		ON CONFLICT (day, show_id, event_type)
		DO UPDATE SET count = EXCLUDED.count
	`
	start := day.UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)
	if _, err := s.db.Exec(query, start, end); err != nil {
		return errors.Wrapf(err, "rolling up analytics for %s", start.Format("2006-01-02"))
	}
	return nil
}

// GetDailyStats returns rollup rows for a show since the given day,
// oldest first.
func (s *Store) GetDailyStats(showID int64, since time.Time) ([]models.DailyStat, error) {
	query := `
		SELECT day, show_id, event_type, count
		FROM analytics_daily
		WHERE show_id = $1 AND day >= $2
		ORDER BY day, event_type
	`
	var stats []models.DailyStat
	if err := s.db.Select(&stats, query, showID, since); err != nil {
		return nil, errors.Wrapf(err, "getting daily stats for show %d", showID)
	}
	return stats, nil
}
