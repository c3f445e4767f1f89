package cmd

import (
	"dispatch/internal/adapters/out/carriers"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/status"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/httpclient"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot wires infrastructure into use case handlers.
// All shared dependencies are built once; handlers are built per request site.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	uowFactory postgres.GormUnitOfWorkFactory
	registry   *carriers.Registry
	router     services.SmartRouter
	normalizer *status.Normalizer
	rates      commands.RateCollector
}

// NewCompositionRoot builds the object graph. The cache may be nil, which
// disables rate quote memoization.
func NewCompositionRoot(config Config, gormDB *gorm.DB, cache ports.Cache, logger *zap.Logger) CompositionRoot {
	directory := geo.NewDirectory()
	registry := carriers.NewRegistry(httpclient.NewClient(0, logger), directory, logger)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		router:     services.NewSmartRouter(directory),
		normalizer: status.NewNormalizer(),
		rates:      commands.NewRateCollector(registry, cache, logger),
	}
}

func (c *CompositionRoot) uowAdapter() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.uowAdapter(), c.registry)
}

func (c *CompositionRoot) CreateAutoShipOrderCommandHandler() commands.AutoShipOrderCommandHandler {
	return commands.NewAutoShipOrderCommandHandler(c.uowAdapter(), c.registry, c.router, c.rates)
}

func (c *CompositionRoot) CreateSyncTrackingCommandHandler() commands.SyncTrackingCommandHandler {
	return commands.NewSyncTrackingCommandHandler(c.uowAdapter(), c.registry, c.normalizer, c.logger)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	return commands.NewCancelShipmentCommandHandler(c.uowAdapter(), c.registry)
}

func (c *CompositionRoot) CreateGetLabelCommandHandler() commands.GetLabelCommandHandler {
	return commands.NewGetLabelCommandHandler(c.uowAdapter(), c.registry)
}

func (c *CompositionRoot) CreateGetTrackingTimelineQueryHandler() queries.GetTrackingTimelineQueryHandler {
	return queries.NewGetTrackingTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveShipmentsQueryHandler() queries.GetActiveShipmentsQueryHandler {
	return queries.NewGetActiveShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSyncTrackingCommandHandler(),
		c.uowAdapter(),
		c.registry,
		jobs.Schedules{
			TrackingSync:    c.config.Jobs.TrackingSyncSchedule,
			CredentialCheck: c.config.Jobs.CredentialCheckSchedule,
		},
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
