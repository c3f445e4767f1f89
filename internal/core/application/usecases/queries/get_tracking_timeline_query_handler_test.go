package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/status"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (t *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetTrackingTimelineQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetTrackingTimelineQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetTrackingTimelineQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.TrackingEventDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetTrackingTimelineQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetTrackingTimelineQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetTrackingTimelineQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, tracking_events CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetTrackingTimelineQueryHandlerTestSuite) seedShippedOrder() *order.Order {
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		"Amine Ben Salah", "+21620123456",
		"12 rue de Carthage", "Tunis", "Médenine",
		2.5, 1, 89.900, "",
	)
	suite.Require().NoError(err)

	boundAt := time.Now().UTC().Truncate(time.Second)
	err = aggregate.Bind(carrier.Navex, "NVX-1", "", "remote tier", boundAt)
	suite.Require().NoError(err)

	err = aggregate.ApplyTransition(status.PickedUp, "Ramassé", "Tunis", order.SourceSync, boundAt.Add(time.Hour))
	suite.Require().NoError(err)
	err = aggregate.ApplyTransition(status.OutForDelivery, "En cours de livraison", "Médenine", order.SourceSync, boundAt.Add(2*time.Hour))
	suite.Require().NoError(err)

	err = suite.orderRepo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *GetTrackingTimelineQueryHandlerTestSuite) TestHandle_ReturnsEntriesInSequenceOrder() {
	aggregate := suite.seedShippedOrder()

	query, err := queries.NewGetTrackingTimelineQuery(aggregate.ID())
	suite.Require().NoError(err)

	timeline, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(timeline, 2)

	suite.Equal(1, timeline[0].Seq)
	suite.Equal(status.PickedUp, timeline[0].Status)
	suite.Equal("Ramassé", timeline[0].RawStatus)
	suite.Equal("Picked up", timeline[0].LabelEN)
	suite.Equal("Ramassé", timeline[0].LabelFR)
	suite.Equal(carrier.Navex, timeline[0].CarrierType)
	suite.Equal("Tunis", timeline[0].Location)
	suite.Equal(order.SourceSync, timeline[0].Source)

	suite.Equal(2, timeline[1].Seq)
	suite.Equal(status.OutForDelivery, timeline[1].Status)
	suite.Equal("En cours de livraison", timeline[1].LabelFR)
}

func (suite *GetTrackingTimelineQueryHandlerTestSuite) TestHandle_OrderWithoutEvents_ReturnsEmptySlice() {
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		"Leïla Trabelsi", "+21698765432",
		"7 avenue Bourguiba", "Sousse", "Tunis",
		1.0, 1, 0, "",
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), aggregate))

	query, err := queries.NewGetTrackingTimelineQuery(aggregate.ID())
	suite.Require().NoError(err)

	timeline, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(timeline)
	suite.Empty(timeline)
}

func (suite *GetTrackingTimelineQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetTrackingTimelineQuery{}

	timeline, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(timeline)
	suite.Contains(err.Error(), "must be created via NewGetTrackingTimelineQuery constructor")
}

func (suite *GetTrackingTimelineQueryHandlerTestSuite) TestNewGetTrackingTimelineQuery_RequiresOrderID() {
	_, err := queries.NewGetTrackingTimelineQuery(kernel.UUID{})

	suite.Require().Error(err)
}

func TestGetTrackingTimelineQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetTrackingTimelineQueryHandlerTestSuite))
}
