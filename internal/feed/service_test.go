package feed

import (
	"database/sql"
	"testing"
	"time"

	"castbuzz/internal/models"

	"github.com/stretchr/testify/assert"
)

// fakeStore is an in-memory Store implementation for service tests.
type fakeStore struct {
	shows       map[string]*models.Show
	episodes    map[int64][]models.Episode
	feedURLs    map[int64]string
	updateCalls int
	directory   []models.ShowFeedInfo
	failWith    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		shows:    make(map[string]*models.Show),
		episodes: make(map[int64][]models.Episode),
		feedURLs: make(map[int64]string),
	}
}

func (f *fakeStore) FindShowBySlug(slug string) (*models.Show, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	show, ok := f.shows[slug]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return show, nil
}

func (f *fakeStore) GetPublishedEpisodes(showID int64) ([]models.Episode, error) {
	return f.episodes[showID], nil
}

func (f *fakeStore) UpdateShowFeedURL(showID int64, feedURL string) error {
	f.updateCalls++
	f.feedURLs[showID] = feedURL
	return nil
}

func (f *fakeStore) ListShowsWithEpisodes() ([]models.ShowFeedInfo, error) {
	return f.directory, nil
}

func newTestService(store *fakeStore) *Service {
	return NewService(store, "https://castbuzz.example", Options{})
}

func TestGetFeed(t *testing.T) {
	store := newFakeStore()
	show := techShow()
	store.shows["tech"] = show
	store.episodes[show.ID] = []models.Episode{techEpisode()}
	svc := newTestService(store)

	rendered, err := svc.GetFeed("tech")
	assert.NoError(t, err)
	assert.Contains(t, rendered.XML, "<item>")
	assert.Contains(t, rendered.XML, "Tech Talk")
	assert.Equal(t, show.UpdatedAt, rendered.LastModified)
}

func TestGetFeedNotFound(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.GetFeed("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetFeedInactiveShowIsNotFound(t *testing.T) {
	store := newFakeStore()
	show := techShow()
	show.Active = false
	store.shows["tech"] = show
	svc := newTestService(store)

	_, err := svc.GetFeed("tech")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidSlugRejectedBeforeLookup(t *testing.T) {
	store := newFakeStore()
	store.failWith = assert.AnError // any lookup would blow up
	svc := newTestService(store)

	for _, slug := range []string{"", "UPPER", "has space", "semi;colon", "-leading"} {
		_, err := svc.GetFeed(slug)
		assert.ErrorIs(t, err, ErrInvalidSlug, slug)
	}
}

func TestValidateFeed(t *testing.T) {
	store := newFakeStore()
	show := techShow()
	show.ImageURL = nil
	store.shows["tech"] = show
	store.episodes[show.ID] = []models.Episode{techEpisode()}
	svc := newTestService(store)

	report, err := svc.ValidateFeed("tech")
	assert.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors, "show has no cover artwork; podcast directories require one")
	assert.Equal(t, "https://castbuzz.example/api/rss/tech", report.FeedURL)
}

func TestRegenerateFeedURLIsIdempotent(t *testing.T) {
	store := newFakeStore()
	show := techShow()
	store.shows["tech"] = show
	svc := newTestService(store)

	first, err := svc.RegenerateFeedURL("tech")
	assert.NoError(t, err)
	second, err := svc.RegenerateFeedURL("tech")
	assert.NoError(t, err)

	assert.Equal(t, "https://castbuzz.example/api/rss/tech", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, store.updateCalls)
	// One logical stored value: the second call overwrote with the same URL.
	assert.Equal(t, first, store.feedURLs[show.ID])
	assert.Len(t, store.feedURLs, 1)
}

func TestRegenerateFeedURLAllowsInactiveShow(t *testing.T) {
	store := newFakeStore()
	show := techShow()
	show.Active = false
	store.shows["tech"] = show
	svc := newTestService(store)

	url, err := svc.RegenerateFeedURL("tech")
	assert.NoError(t, err)
	assert.Equal(t, "https://castbuzz.example/api/rss/tech", url)
}

func TestListFeeds(t *testing.T) {
	store := newFakeStore()
	updated := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store.directory = []models.ShowFeedInfo{
		{ID: 1, Slug: "tech", Name: "Tech Talk", EpisodeCount: 12, UpdatedAt: updated},
		{ID: 2, Slug: "true-crime", Name: "True Crime Hour", EpisodeCount: 3, UpdatedAt: updated},
	}
	svc := newTestService(store)

	feeds, err := svc.ListFeeds()
	assert.NoError(t, err)
	assert.Len(t, feeds, 2)
	assert.Equal(t, "tech", feeds[0].Slug)
	assert.Equal(t, 12, feeds[0].EpisodeCount)
	assert.Equal(t, "https://castbuzz.example/api/rss/tech", feeds[0].FeedURL)
	assert.Equal(t, updated, feeds[0].LastUpdated)
}
