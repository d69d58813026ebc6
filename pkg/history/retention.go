package history

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/openqpu/pulsecheck/pkg/observability"
)

// RetentionJob periodically deletes validation runs older than the retention
// window.
type RetentionJob struct {
	recorder  Recorder
	retention time.Duration
	logger    *observability.Logger
	cron      *cron.Cron
}

// NewRetentionJob schedules a cleanup on the given cron expression. A zero
// retention disables the job.
func NewRetentionJob(recorder Recorder, cfg Config, logger *observability.Logger) (*RetentionJob, error) {
	job := &RetentionJob{
		recorder:  recorder,
		retention: cfg.Retention,
		logger:    logger,
		cron:      cron.New(),
	}

	if cfg.Retention <= 0 {
		return job, nil
	}

	if _, err := job.cron.AddFunc(cfg.CleanupSchedule, job.runOnce); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", cfg.CleanupSchedule, err)
	}
	return job, nil
}

func (j *RetentionJob) runOnce() {
	defer observability.RecoverPanic(j.logger, "history-retention")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-j.retention)
	deleted, err := j.recorder.Cleanup(ctx, cutoff)
	if err != nil {
		j.logger.WithError(err).Error("History retention cleanup failed")
		return
	}
	j.logger.WithFields(map[string]interface{}{
		"deleted": deleted,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("History retention cleanup completed")
}

// Start begins the cron schedule.
func (j *RetentionJob) Start() {
	j.cron.Start()
}

// Stop halts the schedule and waits for a running cleanup to finish.
func (j *RetentionJob) Stop(ctx context.Context) error {
	done := j.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
