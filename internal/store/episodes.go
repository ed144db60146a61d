package store

import (
	"fmt"

	"castbuzz/internal/models"

	"github.com/pkg/errors"
)

// MaxFeedEpisodes caps how many episodes a single feed fetch returns. The
// cap is enforced here so every feed path sees the same limit.
const MaxFeedEpisodes = 50

// GetPublishedEpisodes returns the show's published episodes, newest first,
// capped at MaxFeedEpisodes.
func (s *Store) GetPublishedEpisodes(showID int64) ([]models.Episode, error) {
	query := fmt.Sprintf(`
		SELECT * FROM episodes
		WHERE show_id = $1 AND published = TRUE
		ORDER BY publish_date DESC
		LIMIT %d
	`, MaxFeedEpisodes)
	var episodes []models.Episode
	if err := s.db.Select(&episodes, query, showID); err != nil {
		return nil, errors.Wrapf(err, "getting published episodes for show %d", showID)
	}
	return episodes, nil
}
