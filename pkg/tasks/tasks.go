package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeRollupAnalytics = "analytics:rollup"
)

type RollupAnalyticsPayload struct {
	// Day is the UTC day to re-aggregate, formatted as 2006-01-02.
	Day string
}

func NewRollupAnalyticsTask(day time.Time) (*asynq.Task, error) {
	payload, err := json.Marshal(RollupAnalyticsPayload{
		Day: day.UTC().Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRollupAnalytics, payload), nil
}
