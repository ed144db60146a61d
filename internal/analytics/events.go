package analytics

import (
	"fmt"
	"time"

	"castbuzz/internal/models"
)

// MaxBatchSize caps a single ingest request. The player batches events
// client-side, so anything larger is a misbehaving client.
const MaxBatchSize = 500

var validEventTypes = map[string]bool{
	"play":      true,
	"pause":     true,
	"complete":  true,
	"download":  true,
	"heartbeat": true,
}

// EventInput is one tracked event as submitted by the player.
type EventInput struct {
	EventType  string     `json:"event_type"`
	ShowID     *int64     `json:"show_id,omitempty"`
	EpisodeID  *int64     `json:"episode_id,omitempty"`
	SessionID  string     `json:"session_id"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
}

// NormalizeBatch validates a batch and converts it to storable events.
// OccurredAt defaults to now. Any invalid event rejects the whole batch so
// clients notice broken payloads instead of silently losing data.
func NormalizeBatch(inputs []EventInput, now time.Time) ([]models.AnalyticsEvent, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("empty event batch")
	}
	if len(inputs) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d events exceeds limit of %d", len(inputs), MaxBatchSize)
	}

	events := make([]models.AnalyticsEvent, 0, len(inputs))
	for i, in := range inputs {
		if !validEventTypes[in.EventType] {
			return nil, fmt.Errorf("event %d: unknown event type %q", i, in.EventType)
		}
		if in.SessionID == "" {
			return nil, fmt.Errorf("event %d: missing session_id", i)
		}

		occurredAt := now
		if in.OccurredAt != nil {
			occurredAt = *in.OccurredAt
		}
		events = append(events, models.AnalyticsEvent{
			ShowID:     in.ShowID,
			EpisodeID:  in.EpisodeID,
			EventType:  in.EventType,
			SessionID:  in.SessionID,
			OccurredAt: occurredAt.UTC(),
		})
	}
	return events, nil
}

// Days returns the distinct UTC days the batch touches, in first-seen order.
// Each one gets a rollup task.
func Days(events []models.AnalyticsEvent) []time.Time {
	seen := make(map[string]bool)
	var days []time.Time
	for _, e := range events {
		day := e.OccurredAt.UTC().Truncate(24 * time.Hour)
		key := day.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			days = append(days, day)
		}
	}
	return days
}
