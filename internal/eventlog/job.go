package eventlog

import (
	"context"
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/logger"
)

// CleanupJobName identifies the retention job in scheduler and worker logs.
const CleanupJobName = "event_log_cleanup"

// CleanupJob deletes audit entries older than its retention window. It
// satisfies worker.Job so the scheduler can queue it directly.
type CleanupJob struct {
	service       Service
	retentionDays int
}

// NewCleanupJob creates a new cleanup job
func NewCleanupJob(service Service, retentionDays int) *CleanupJob {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &CleanupJob{service: service, retentionDays: retentionDays}
}

// Name implements worker.Named.
func (j *CleanupJob) Name() string { return CleanupJobName }

// Process runs one cleanup pass.
func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx).With(LogFieldRetentionDays, j.retentionDays)
	log.Info(LogMsgCleanupJobStarting)

	start := time.Now()
	deleted, err := j.service.CleanupOldEvents(ctx, j.retentionDays)
	if err != nil {
		log.Error(LogMsgCleanupJobFailed, LogFieldError, err, LogFieldDuration, time.Since(start))
		return err
	}

	log.Info(LogMsgCleanupJobCompleted, LogFieldDeletedCount, deleted, LogFieldDuration, time.Since(start))
	return nil
}
