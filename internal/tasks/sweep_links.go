package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// LinkSweeper removes book_authors rows whose book or author is gone.
type LinkSweeper interface {
	DeleteDanglingLinks() (int64, error)
}

// SweepRecorder records the outcome of a sweep. Implemented by the audit
// service.
type SweepRecorder interface {
	LogSweep(removed int64, err error)
}

// RunLinkSweep deletes dangling links and records the result when recorder
// is not nil. Shared by the queue processor, the scheduler and the CLI.
func RunLinkSweep(sweeper LinkSweeper, recorder SweepRecorder) (int64, error) {
	if sweeper == nil {
		return 0, fmt.Errorf("link sweeper not configured")
	}

	removed, err := sweeper.DeleteDanglingLinks()
	if recorder != nil {
		recorder.LogSweep(removed, err)
	}
	if err != nil {
		return 0, fmt.Errorf("sweep dangling links: %w", err)
	}
	return removed, nil
}

// QueueSweepLinks is the backlite queue name of SweepLinksTask.
const QueueSweepLinks = "sweep_dangling_links"

// SweepLinksTask removes join rows left behind by external writers or by
// deletes made with foreign keys disabled.
type SweepLinksTask struct{}

// Config returns the queue configuration for link sweep tasks.
func (t SweepLinksTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        QueueSweepLinks,
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SweepLinksProcessor creates a processor function for SweepLinksTask.
func SweepLinksProcessor(sweeper LinkSweeper, recorder SweepRecorder) backlite.QueueProcessor[SweepLinksTask] {
	return func(ctx context.Context, task SweepLinksTask) error {
		removed, err := RunLinkSweep(sweeper, recorder)
		if err != nil {
			return err
		}

		log.Printf("[TASK] Removed %d dangling book/author links", removed)
		return nil
	}
}

// NewSweepLinksQueue creates a backlite queue for link sweep tasks.
func NewSweepLinksQueue(sweeper LinkSweeper, recorder SweepRecorder) backlite.Queue {
	return backlite.NewQueue(SweepLinksProcessor(sweeper, recorder))
}
