package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the only queue the worker listens on.
	QueueDefault = "default"

	// TaskMarkOverdue flips unpaid credit bills and invoices past their due date to OVERDUE.
	TaskMarkOverdue = "purchases:mark_overdue"
)

// MarkOverduePayload is carried by TaskMarkOverdue. Source records who scheduled the run.
type MarkOverduePayload struct {
	Source string `json:"source"`
}

// NewMarkOverdueTask builds a scan task. Runs are unique per window so overlapping schedules collapse.
func NewMarkOverdueTask(source string) (*asynq.Task, error) {
	payload, err := json.Marshal(MarkOverduePayload{Source: source})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMarkOverdue, payload,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(3),
		asynq.Unique(10*time.Minute),
	), nil
}
