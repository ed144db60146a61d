package store

import (
	"castbuzz/internal/models"

	"github.com/pkg/errors"
)

// FindShowBySlug returns the show with the given slug, active or not.
// Callers decide whether an inactive show is servable.
func (s *Store) FindShowBySlug(slug string) (*models.Show, error) {
	show := &models.Show{}
	err := s.db.Get(show, "SELECT * FROM shows WHERE slug = $1", slug)
	if err != nil {
		return nil, errors.Wrapf(err, "finding show %q", slug)
	}
	return show, nil
}

// UpdateShowFeedURL stores the canonical feed URL on the show row. Writing
// the same URL twice is a no-op overwrite.
func (s *Store) UpdateShowFeedURL(showID int64, feedURL string) error {
	_, err := s.db.Exec(
		"UPDATE shows SET rss_url = $1, updated_at = NOW() WHERE id = $2",
		feedURL, showID)
	if err != nil {
		return errors.Wrapf(err, "updating feed url for show %d", showID)
	}
	return nil
}

// ListShowsWithEpisodes returns every show that has at least one episode,
// with its total episode count, ordered by name for a stable directory.
func (s *Store) ListShowsWithEpisodes() ([]models.ShowFeedInfo, error) {
	query := `
		SELECT s.id, s.slug, s.name, s.updated_at, COUNT(e.id) AS episode_count
		FROM shows s
		JOIN episodes e ON e.show_id = s.id
		GROUP BY s.id, s.slug, s.name, s.updated_at
		ORDER BY s.name
	`
	var rows []models.ShowFeedInfo
	if err := s.db.Select(&rows, query); err != nil {
		return nil, errors.Wrap(err, "listing shows with episodes")
	}
	return rows, nil
}
