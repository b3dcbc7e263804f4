// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order lifecycle monitoring.
//
// # Available Jobs
//
// 1. ExpiryMonitorJob - Runs every minute to count orders that lapsed past
// their auto-expire date and publish the number as a gauge
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(countExpiredHandler, appMetrics, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The expiry monitor uses the cron expression "0 * * * * *", running at the
// top of every minute. Expiry is a passive temporal fact in this system - the
// monitor only observes it for dashboards, it never mutates orders.
package jobs
