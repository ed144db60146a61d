package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"castbuzz/pkg/tasks"

	"github.com/hibiken/asynq"
)

// RollupStore is the slice of the data layer the worker needs.
type RollupStore interface {
	RollupAnalyticsDay(day time.Time) error
}

type TaskHandler struct {
	store RollupStore
}

func NewTaskHandler(store RollupStore) *TaskHandler {
	return &TaskHandler{store: store}
}

// HandleRollupAnalyticsTask re-aggregates one day of analytics events into
// the daily rollup table. Replaying a day overwrites its counts, so retries
// are safe.
func (h *TaskHandler) HandleRollupAnalyticsTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.RollupAnalyticsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshaling rollup payload: %w", err)
	}

	day, err := time.Parse("2006-01-02", payload.Day)
	if err != nil {
		return fmt.Errorf("parsing rollup day %q: %w", payload.Day, err)
	}

	if err := h.store.RollupAnalyticsDay(day); err != nil {
		return err
	}

	log.Printf("Rolled up analytics for %s", payload.Day)
	return nil
}
