package feed

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"castbuzz/internal/models"

	"github.com/pkg/errors"
)

// ErrNotFound covers both an unknown slug and an inactive show. Callers get
// one condition on purpose, so the existence of an inactive show's slug
// never leaks.
var ErrNotFound = errors.New("show not found")

// ErrInvalidSlug rejects malformed slugs before any lookup happens.
var ErrInvalidSlug = errors.New("invalid show slug")

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Store is the data collaborator the service depends on. *store.Store
// implements it; tests use an in-memory fake.
type Store interface {
	FindShowBySlug(slug string) (*models.Show, error)
	GetPublishedEpisodes(showID int64) ([]models.Episode, error)
	UpdateShowFeedURL(showID int64, feedURL string) error
	ListShowsWithEpisodes() ([]models.ShowFeedInfo, error)
}

// RenderedFeed is a formatted feed plus the header material the HTTP layer
// needs.
type RenderedFeed struct {
	XML          string
	LastModified time.Time
}

// FeedInfo is one entry of the admin feed directory.
type FeedInfo struct {
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	EpisodeCount int       `json:"episode_count"`
	FeedURL      string    `json:"feed_url"`
	LastUpdated  time.Time `json:"last_updated"`
}

// Service orchestrates feed generation: slug resolution, episode fetching,
// formatting, validation and feed-URL regeneration.
type Service struct {
	store     Store
	baseURL   string
	formatter *Formatter
}

func NewService(store Store, baseURL string, opts Options) *Service {
	return &Service{
		store:     store,
		baseURL:   strings.TrimRight(baseURL, "/"),
		formatter: NewFormatter(baseURL, opts),
	}
}

// GetFeed builds the RSS document for an active show.
func (s *Service) GetFeed(slug string) (*RenderedFeed, error) {
	show, err := s.resolveShow(slug, true)
	if err != nil {
		return nil, err
	}

	episodes, err := s.store.GetPublishedEpisodes(show.ID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching episodes")
	}

	xmlDoc, err := s.formatter.BuildFeed(show, episodes)
	if err != nil {
		return nil, err
	}

	return &RenderedFeed{XML: xmlDoc, LastModified: show.UpdatedAt}, nil
}

// ValidateFeed runs the validator against an active show's current state.
func (s *Service) ValidateFeed(slug string) (*ValidationReport, error) {
	show, err := s.resolveShow(slug, true)
	if err != nil {
		return nil, err
	}

	episodes, err := s.store.GetPublishedEpisodes(show.ID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching episodes")
	}

	return Validate(show, episodes, s.feedURL(slug)), nil
}

// RegenerateFeedURL recomputes the canonical feed URL and stores it on the
// show row. The show does not have to be active; regeneration is an admin
// operation, not a serving one. Calling it twice with unchanged inputs
// stores the same value.
func (s *Service) RegenerateFeedURL(slug string) (string, error) {
	show, err := s.resolveShow(slug, false)
	if err != nil {
		return "", err
	}

	feedURL := s.feedURL(slug)
	if err := s.store.UpdateShowFeedURL(show.ID, feedURL); err != nil {
		return "", errors.Wrap(err, "storing feed url")
	}
	return feedURL, nil
}

// ListFeeds enumerates every show with at least one episode for the admin
// feed directory.
func (s *Service) ListFeeds() ([]FeedInfo, error) {
	rows, err := s.store.ListShowsWithEpisodes()
	if err != nil {
		return nil, errors.Wrap(err, "listing feeds")
	}

	feeds := make([]FeedInfo, 0, len(rows))
	for _, row := range rows {
		feeds = append(feeds, FeedInfo{
			Slug:         row.Slug,
			Name:         row.Name,
			EpisodeCount: row.EpisodeCount,
			FeedURL:      s.feedURL(row.Slug),
			LastUpdated:  row.UpdatedAt,
		})
	}
	return feeds, nil
}

func (s *Service) resolveShow(slug string, requireActive bool) (*models.Show, error) {
	if !slugPattern.MatchString(slug) {
		return nil, ErrInvalidSlug
	}

	show, err := s.store.FindShowBySlug(slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "resolving show")
	}
	if requireActive && !show.Active {
		return nil, ErrNotFound
	}
	return show, nil
}

func (s *Service) feedURL(slug string) string {
	return fmt.Sprintf("%s/api/rss/%s", s.baseURL, slug)
}
