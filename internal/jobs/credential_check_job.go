package jobs

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/carrier"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CredentialCheckJob periodically verifies every stored carrier credential
// bundle against its vendor and stamps the outcome on the configuration.
// A failed check is recorded, never raised; merchants see the stamp, the
// router keeps working with whatever carriers remain reachable.
type CredentialCheckJob struct {
	uowFactory commands.UoWFactory
	registry   commands.AdapterRegistry
	schedule   string
	cron       *cron.Cron
	log        *zap.Logger
}

// NewCredentialCheckJob creates the credential verification job.
func NewCredentialCheckJob(
	uowFactory commands.UoWFactory,
	registry commands.AdapterRegistry,
	schedule string,
	log *zap.Logger,
) *CredentialCheckJob {
	return &CredentialCheckJob{
		uowFactory: uowFactory,
		registry:   registry,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		log:        log.With(zap.String("component", "credential_check_job")),
	}
}

// Start schedules the credential checks.
func (j *CredentialCheckJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.runChecks)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info("credential check job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the credential checks.
func (j *CredentialCheckJob) Stop() {
	j.cron.Stop()
	j.log.Info("credential check job stopped")
}

func (j *CredentialCheckJob) runChecks() {
	ctx := context.Background()

	configs, err := j.uowFactory.Create().CarrierConfigRepository().GetAll(ctx)
	if err != nil {
		j.log.Error("failed to list carrier configs", zap.Error(err))
		return
	}

	for _, config := range configs {
		ok := j.check(ctx, config)

		config.StampValidation(ok, time.Now())
		if err = j.persistStamp(ctx, config); err != nil {
			j.log.Error("failed to persist validation stamp",
				zap.String("config_id", config.ID().String()),
				zap.Error(err),
			)
		}

		if !ok {
			j.log.Warn("carrier credentials failed verification",
				zap.String("carrier", config.CarrierType().String()),
				zap.String("merchant_id", config.MerchantID().String()),
			)
		}
	}
}

func (j *CredentialCheckJob) check(ctx context.Context, config *carrier.Config) bool {
	adapter, err := j.registry.AdapterFor(config)
	if err != nil {
		return false
	}
	return adapter.CheckCredentials(ctx) == nil
}

func (j *CredentialCheckJob) persistStamp(ctx context.Context, config *carrier.Config) error {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.CarrierConfigRepository().Update(ctx, config); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
