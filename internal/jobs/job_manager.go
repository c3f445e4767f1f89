package jobs

import (
	"fmt"

	"dispatch/internal/core/application/usecases/commands"

	"go.uber.org/zap"
)

// Schedules carries the cron expressions for the background jobs.
// Both use the six-field form with a seconds column.
type Schedules struct {
	TrackingSync    string
	CredentialCheck string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	trackingSyncJob    *TrackingSyncJob
	credentialCheckJob *CredentialCheckJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the sync handler and shared infrastructure as dependencies to wire up
// the job execution.
func NewJobManager(
	syncHandler commands.SyncTrackingCommandHandler,
	uowFactory commands.UoWFactory,
	registry commands.AdapterRegistry,
	schedules Schedules,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		trackingSyncJob:    NewTrackingSyncJob(syncHandler, uowFactory, schedules.TrackingSync, logger),
		credentialCheckJob: NewCredentialCheckJob(uowFactory, registry, schedules.CredentialCheck, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.trackingSyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start tracking sync job: %w", err)
	}

	if err := jm.credentialCheckJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.trackingSyncJob.Stop()
		return fmt.Errorf("failed to start credential check job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.trackingSyncJob.Stop()
	jm.credentialCheckJob.Stop()
}
