package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"castbuzz/internal/analytics"
	"castbuzz/pkg/tasks"

	"github.com/google/uuid"
)

const (
	defaultSummaryDays = 30
	maxSummaryDays     = 365
)

type eventBatchRequest struct {
	Events []analytics.EventInput `json:"events"`
}

// PostAnalyticsEvents ingests a batch of player events and schedules a
// rollup for every day the batch touches.
func (h *Handlers) PostAnalyticsEvents(w http.ResponseWriter, r *http.Request) {
	var req eventBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	events, err := analytics.NormalizeBatch(req.Events, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.analytics.InsertAnalyticsEvents(events); err != nil {
		log.Printf("Error inserting analytics events: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Rollups are re-derivable from raw events, so a failed enqueue is
	// logged rather than failing the ingest.
	for _, day := range analytics.Days(events) {
		task, err := tasks.NewRollupAnalyticsTask(day)
		if err != nil {
			log.Printf("Error creating rollup task: %v", err)
			continue
		}
		if _, err := h.asynqClient.Enqueue(task); err != nil {
			log.Printf("Error enqueuing rollup task: %v", err)
		}
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"accepted": len(events),
		"batch_id": uuid.NewString(),
	})
}

// GetAnalyticsSummary returns daily rollup rows for one show.
func (h *Handlers) GetAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	showID, err := strconv.ParseInt(r.URL.Query().Get("show_id"), 10, 64)
	if err != nil || showID <= 0 {
		writeError(w, http.StatusBadRequest, "show_id is required")
		return
	}

	days := defaultSummaryDays
	if v := r.URL.Query().Get("days"); v != "" {
		days, err = strconv.Atoi(v)
		if err != nil || days <= 0 || days > maxSummaryDays {
			writeError(w, http.StatusBadRequest, "days must be between 1 and 365")
			return
		}
	}

	since := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -days)
	stats, err := h.analytics.GetDailyStats(showID, since)
	if err != nil {
		log.Printf("Error getting daily stats: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"show_id": showID,
		"since":   since.Format("2006-01-02"),
		"stats":   stats,
	})
}
