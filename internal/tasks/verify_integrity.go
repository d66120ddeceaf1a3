package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/novelzone/internal/database/integrity"
)

// VerifyIntegrityQueue is the backlite queue name for integrity checks.
const VerifyIntegrityQueue = "verify_integrity"

// VerifyIntegrityTask scans the catalog for orphaned rows.
type VerifyIntegrityTask struct {
	// Trigger records who asked for the run: "schedule", "api" or "startup".
	Trigger string `json:"trigger"`
}

// Config returns the queue configuration for integrity checks.
func (t VerifyIntegrityTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        VerifyIntegrityQueue,
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// VerifyIntegrityProcessor creates a processor function for VerifyIntegrityTask.
// A report with orphans is a successful run; only storage failures retry.
func VerifyIntegrityProcessor(runner integrity.HandleRunner, monitor *integrity.Monitor) backlite.QueueProcessor[VerifyIntegrityTask] {
	return func(ctx context.Context, task VerifyIntegrityTask) error {
		if runner == nil || monitor == nil {
			return fmt.Errorf("integrity checker not configured")
		}

		trigger := task.Trigger
		if trigger == "" {
			trigger = "queue"
		}
		if _, err := monitor.Run(ctx, runner, trigger); err != nil {
			return fmt.Errorf("verify integrity: %w", err)
		}
		return nil
	}
}

// NewVerifyIntegrityQueue creates a backlite queue for integrity checks.
func NewVerifyIntegrityQueue(runner integrity.HandleRunner, monitor *integrity.Monitor) backlite.Queue {
	return backlite.NewQueue(VerifyIntegrityProcessor(runner, monitor))
}
