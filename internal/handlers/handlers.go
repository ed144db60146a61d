package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"castbuzz/internal/feed"
	"castbuzz/internal/models"
	"castbuzz/pkg/tasks"
)

// AnalyticsStore is the slice of the data layer the analytics handlers use.
type AnalyticsStore interface {
	InsertAnalyticsEvents(events []models.AnalyticsEvent) error
	GetDailyStats(showID int64, since time.Time) ([]models.DailyStat, error)
}

type Handlers struct {
	feeds       *feed.Service
	analytics   AnalyticsStore
	asynqClient tasks.TaskEnqueuer
}

func New(feeds *feed.Service, analytics AnalyticsStore, asynqClient tasks.TaskEnqueuer) *Handlers {
	return &Handlers{
		feeds:       feeds,
		analytics:   analytics,
		asynqClient: asynqClient,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
