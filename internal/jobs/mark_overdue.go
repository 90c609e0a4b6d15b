package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/hibiken/asynq"
)

// MarkOverdueJob runs the scheduled overdue scan.
type MarkOverdueJob struct {
	scanner portssvc.OverdueScanner
	logger  *slog.Logger
}

// NewMarkOverdueJob wires the job to the scanner.
func NewMarkOverdueJob(scanner portssvc.OverdueScanner, logger *slog.Logger) *MarkOverdueJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarkOverdueJob{scanner: scanner, logger: logger}
}

// Handle processes one TaskMarkOverdue.
func (j *MarkOverdueJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.scanner == nil {
		return errors.New("mark overdue: handler not configured")
	}
	var payload MarkOverduePayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("mark overdue: bad payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	logger := j.logger.With(slog.String("task", TaskMarkOverdue), slog.String("source", payload.Source))
	result, err := j.scanner.RunScan(ctx)
	if err != nil {
		logger.Error("overdue scan failed", slog.String("error", err.Error()))
		return err
	}
	logger.Info("overdue scan finished",
		slog.Int64("purchases_marked", result.Purchases),
		slog.Int64("sales_marked", result.Sales))
	return nil
}
