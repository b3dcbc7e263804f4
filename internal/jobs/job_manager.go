package jobs

import (
	"fmt"
	"log/slog"

	"clinicalorders/internal/core/application/usecases/queries"
	"clinicalorders/internal/observability/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	expiryMonitorJob *ExpiryMonitorJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	countExpiredHandler queries.CountExpiredOrdersQueryHandler,
	m *metrics.Metrics,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		expiryMonitorJob: NewExpiryMonitorJob(countExpiredHandler, m, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.expiryMonitorJob.Start(); err != nil {
		return fmt.Errorf("failed to start expiry monitor job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.expiryMonitorJob.Stop()
}
