// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for carrier orchestration.
//
// # Available Jobs
//
// 1. TrackingSyncJob - Periodically sweeps every bound, non-terminal shipment
// and synchronizes its status with the carrier.
// 2. CredentialCheckJob - Periodically verifies every stored carrier
// credential bundle against the vendor and stamps the outcome.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(syncHandler, uowFactory, registry, schedules, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are standard cron expressions with a seconds field, configured
// per deployment. Tracking synchronization typically runs every few minutes;
// credential checks once an hour.
//
// # Error Handling
//
//   - The sync sweep isolates failures per shipment; one vendor outage never
//     aborts the sweep.
//   - Credential check failures are stamped on the configuration, not raised.
//   - Failed job starts stop any already running jobs.
package jobs
