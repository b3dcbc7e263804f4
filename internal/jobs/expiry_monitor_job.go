package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"clinicalorders/internal/core/application/usecases/queries"
	"clinicalorders/internal/observability/metrics"
)

// ExpiryMonitorJob periodically counts orders that ran past their
// auto-expire date without being stopped and publishes the count as a gauge.
// Expiry itself needs no writes: the temporal activity rule already treats
// lapsed orders as inactive.
type ExpiryMonitorJob struct {
	handler queries.CountExpiredOrdersQueryHandler
	metrics *metrics.Metrics
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewExpiryMonitorJob creates a new job for monitoring lapsed orders.
func NewExpiryMonitorJob(
	handler queries.CountExpiredOrdersQueryHandler,
	m *metrics.Metrics,
	logger *slog.Logger,
) *ExpiryMonitorJob {
	return &ExpiryMonitorJob{
		handler: handler,
		metrics: m,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "expiry_monitor_job"),
	}
}

// Start begins the expiry monitor to run at the top of every minute.
func (j *ExpiryMonitorJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		query, queryErr := queries.NewCountExpiredOrdersQuery(time.Now())
		if queryErr != nil {
			j.logger.ErrorContext(ctx, "Expiry monitor job failed to build query", "error", queryErr)
			return
		}

		count, handleErr := j.handler.Handle(ctx, query)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Expiry monitor job failed", "error", handleErr)
			return
		}

		j.metrics.ExpiredOrders.Set(float64(count))
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiry monitor job started (running every minute)")
	return nil
}

// Stop stops the expiry monitor job.
func (j *ExpiryMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expiry monitor job stopped")
}
