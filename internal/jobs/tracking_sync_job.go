package jobs

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TrackingSyncJob periodically sweeps all bound, non-terminal shipments and
// synchronizes each one with its carrier. Terminal shipments drop out of the
// sweep at the repository level and are never polled again.
type TrackingSyncJob struct {
	handler    commands.SyncTrackingCommandHandler
	uowFactory commands.UoWFactory
	schedule   string
	cron       *cron.Cron
	log        *zap.Logger
}

// NewTrackingSyncJob creates the tracking sweep job. The schedule is a cron
// expression with a seconds field, e.g. "0 */5 * * * *" for every five minutes.
func NewTrackingSyncJob(
	handler commands.SyncTrackingCommandHandler,
	uowFactory commands.UoWFactory,
	schedule string,
	log *zap.Logger,
) *TrackingSyncJob {
	return &TrackingSyncJob{
		handler:    handler,
		uowFactory: uowFactory,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		log:        log.With(zap.String("component", "tracking_sync_job")),
	}
}

// Start schedules the sweep.
func (j *TrackingSyncJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.runSweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info("tracking sync job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the sweep.
func (j *TrackingSyncJob) Stop() {
	j.cron.Stop()
	j.log.Info("tracking sync job stopped")
}

func (j *TrackingSyncJob) runSweep() {
	ctx := context.Background()

	trackable, err := j.uowFactory.Create().OrderRepository().GetAllTrackable(ctx)
	if err != nil {
		j.log.Error("failed to list trackable shipments", zap.Error(err))
		return
	}
	if len(trackable) == 0 {
		return
	}

	orderIDs := make([]kernel.UUID, 0, len(trackable))
	for _, aggregate := range trackable {
		orderIDs = append(orderIDs, aggregate.ID())
	}

	results := j.handler.HandleBatch(ctx, orderIDs)

	var changed, failed int
	for _, result := range results {
		switch {
		case result.Err != nil:
			failed++
		case result.Changed:
			changed++
		}
	}

	j.log.Info("tracking sweep finished",
		zap.Int("swept", len(results)),
		zap.Int("changed", changed),
		zap.Int("failed", failed),
	)
}
