package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"castbuzz/internal/models"
	"castbuzz/pkg/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
)

// mockTaskEnqueuer is a mock implementation of tasks.TaskEnqueuer for testing.
type mockTaskEnqueuer struct {
	enqueuedTasks []*asynq.Task
}

func (m *mockTaskEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	m.enqueuedTasks = append(m.enqueuedTasks, task)
	return &asynq.TaskInfo{ID: "test-task-id", Queue: "default"}, nil
}

type fakeAnalyticsStore struct {
	inserted []models.AnalyticsEvent
	stats    []models.DailyStat
}

func (f *fakeAnalyticsStore) InsertAnalyticsEvents(events []models.AnalyticsEvent) error {
	f.inserted = append(f.inserted, events...)
	return nil
}

func (f *fakeAnalyticsStore) GetDailyStats(showID int64, since time.Time) ([]models.DailyStat, error) {
	return f.stats, nil
}

func TestPostAnalyticsEvents(t *testing.T) {
	store := &fakeAnalyticsStore{}
	enqueuer := &mockTaskEnqueuer{}
	h := New(nil, store, enqueuer)

	body := `{"events": [
		{"event_type": "play", "show_id": 1, "session_id": "abc", "occurred_at": "2024-06-01T10:00:00Z"},
		{"event_type": "complete", "show_id": 1, "session_id": "abc", "occurred_at": "2024-06-02T10:00:00Z"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/events", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.PostAnalyticsEvents(rr, req)

	assert.Equal(t, http.StatusAccepted, rr.Code)

	var resp struct {
		Accepted int    `json:"accepted"`
		BatchID  string `json:"batch_id"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Accepted)
	assert.NotEmpty(t, resp.BatchID)

	assert.Len(t, store.inserted, 2)
	assert.Equal(t, "play", store.inserted[0].EventType)

	// Two distinct days, one rollup task each.
	assert.Len(t, enqueuer.enqueuedTasks, 2)
	assert.Equal(t, tasks.TypeRollupAnalytics, enqueuer.enqueuedTasks[0].Type())

	var payload tasks.RollupAnalyticsPayload
	assert.NoError(t, json.Unmarshal(enqueuer.enqueuedTasks[0].Payload(), &payload))
	assert.Equal(t, "2024-06-01", payload.Day)
}

func TestPostAnalyticsEventsRejectsInvalid(t *testing.T) {
	t.Run("unknown event type", func(t *testing.T) {
		store := &fakeAnalyticsStore{}
		h := New(nil, store, &mockTaskEnqueuer{})

		body := `{"events": [{"event_type": "explode", "session_id": "abc"}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/analytics/events", strings.NewReader(body))
		rr := httptest.NewRecorder()
		h.PostAnalyticsEvents(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, store.inserted)
	})

	t.Run("empty batch", func(t *testing.T) {
		h := New(nil, &fakeAnalyticsStore{}, &mockTaskEnqueuer{})

		req := httptest.NewRequest(http.MethodPost, "/api/analytics/events", strings.NewReader(`{"events": []}`))
		rr := httptest.NewRecorder()
		h.PostAnalyticsEvents(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		h := New(nil, &fakeAnalyticsStore{}, &mockTaskEnqueuer{})

		req := httptest.NewRequest(http.MethodPost, "/api/analytics/events", strings.NewReader(`{`))
		rr := httptest.NewRecorder()
		h.PostAnalyticsEvents(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetAnalyticsSummary(t *testing.T) {
	showID := int64(1)
	store := &fakeAnalyticsStore{
		stats: []models.DailyStat{
			{Day: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), ShowID: &showID, EventType: "play", Count: 42},
		},
	}
	h := New(nil, store, &mockTaskEnqueuer{})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/summary?show_id=1&days=7", nil)
	rr := httptest.NewRecorder()
	h.GetAnalyticsSummary(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		ShowID int64              `json:"show_id"`
		Since  string             `json:"since"`
		Stats  []models.DailyStat `json:"stats"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ShowID)
	assert.Len(t, resp.Stats, 1)
	assert.Equal(t, int64(42), resp.Stats[0].Count)
}

func TestGetAnalyticsSummaryValidation(t *testing.T) {
	h := New(nil, &fakeAnalyticsStore{}, &mockTaskEnqueuer{})

	t.Run("missing show_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/analytics/summary", nil)
		rr := httptest.NewRecorder()
		h.GetAnalyticsSummary(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("days out of range", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/analytics/summary?show_id=1&days=9999", nil)
		rr := httptest.NewRecorder()
		h.GetAnalyticsSummary(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
