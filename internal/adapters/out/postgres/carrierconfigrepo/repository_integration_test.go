package carrierconfigrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/carrierconfigrepo"
	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (t *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GormCarrierConfigRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *carrierconfigrepo.GormCarrierConfigRepository
}

func (suite *GormCarrierConfigRepositoryTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&carrierconfigrepo.CarrierConfigDTO{})
	suite.Require().NoError(err)

	suite.repo = carrierconfigrepo.NewGormCarrierConfigRepository(db, &mockAggregateTracker{})
}

func (suite *GormCarrierConfigRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormCarrierConfigRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE carrier_configs CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GormCarrierConfigRepositoryTestSuite) newNavexConfig(
	merchantID kernel.UUID, active bool, priority int,
) *carrier.Config {
	config, err := carrier.NewConfig(
		kernel.NewUUID(), merchantID,
		carrier.NavexCredentials{APIKey: "key-123", BaseURL: "https://api.navex.tn"},
		active, false, priority,
	)
	suite.Require().NoError(err)
	return config
}

func (suite *GormCarrierConfigRepositoryTestSuite) newSimulatedConfig(
	merchantID kernel.UUID, active bool, priority int,
) *carrier.Config {
	config, err := carrier.NewConfig(
		kernel.NewUUID(), merchantID,
		carrier.SimulatedCredentials{Label: "demo"},
		active, true, priority,
	)
	suite.Require().NoError(err)
	return config
}

func (suite *GormCarrierConfigRepositoryTestSuite) TestAddAndGet_RoundTripsTypedCredentials() {
	ctx := context.Background()
	merchantID := kernel.NewUUID()
	config := suite.newNavexConfig(merchantID, true, 0)

	err := suite.repo.Add(ctx, config)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(ctx, config.ID())
	suite.Require().NoError(err)

	suite.Equal(carrier.Navex, restored.CarrierType())
	suite.True(restored.IsActive())
	suite.False(restored.IsSandbox())

	creds, ok := restored.Credentials().(carrier.NavexCredentials)
	suite.Require().True(ok)
	suite.Equal("key-123", creds.APIKey)
	suite.Equal("https://api.navex.tn", creds.BaseURL)
}

func (suite *GormCarrierConfigRepositoryTestSuite) TestUpdate_PersistsValidationStamp() {
	ctx := context.Background()
	config := suite.newNavexConfig(kernel.NewUUID(), true, 0)

	err := suite.repo.Add(ctx, config)
	suite.Require().NoError(err)

	stampedAt := time.Now().UTC().Truncate(time.Second)
	config.StampValidation(false, stampedAt)
	err = suite.repo.Update(ctx, config)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(ctx, config.ID())
	suite.Require().NoError(err)

	suite.False(restored.LastValidationOK())
	suite.Require().NotNil(restored.LastValidatedAt())
	suite.WithinDuration(stampedAt, *restored.LastValidatedAt(), time.Second)
}

func (suite *GormCarrierConfigRepositoryTestSuite) TestGetByMerchantAndType_IgnoresActiveFlag() {
	ctx := context.Background()
	merchantID := kernel.NewUUID()
	deactivated := suite.newNavexConfig(merchantID, false, 0)

	err := suite.repo.Add(ctx, deactivated)
	suite.Require().NoError(err)

	restored, err := suite.repo.GetByMerchantAndType(ctx, merchantID, carrier.Navex)
	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(deactivated.ID()))
	suite.False(restored.IsActive())
}

func (suite *GormCarrierConfigRepositoryTestSuite) TestGetAllActive_OrdersByPriority() {
	ctx := context.Background()
	merchantID := kernel.NewUUID()

	simulated := suite.newSimulatedConfig(merchantID, true, 2)
	navex := suite.newNavexConfig(merchantID, true, 1)
	otherMerchant := suite.newSimulatedConfig(kernel.NewUUID(), true, 0)

	for _, config := range []*carrier.Config{simulated, navex, otherMerchant} {
		err := suite.repo.Add(ctx, config)
		suite.Require().NoError(err)
	}

	active, err := suite.repo.GetAllActive(ctx, merchantID)
	suite.Require().NoError(err)

	suite.Require().Len(active, 2)
	suite.Equal(carrier.Navex, active[0].CarrierType())
	suite.Equal(carrier.Simulated, active[1].CarrierType())
}

func (suite *GormCarrierConfigRepositoryTestSuite) TestGetAllActive_ExcludesDeactivated() {
	ctx := context.Background()
	merchantID := kernel.NewUUID()

	suite.Require().NoError(suite.repo.Add(ctx, suite.newNavexConfig(merchantID, false, 0)))
	suite.Require().NoError(suite.repo.Add(ctx, suite.newSimulatedConfig(merchantID, true, 1)))

	active, err := suite.repo.GetAllActive(ctx, merchantID)
	suite.Require().NoError(err)

	suite.Require().Len(active, 1)
	suite.Equal(carrier.Simulated, active[0].CarrierType())
}

func (suite *GormCarrierConfigRepositoryTestSuite) TestGetAll_SpansMerchants() {
	ctx := context.Background()

	first := suite.newNavexConfig(kernel.NewUUID(), true, 0)
	second := suite.newSimulatedConfig(kernel.NewUUID(), false, 0)

	suite.Require().NoError(suite.repo.Add(ctx, first))
	suite.Require().NoError(suite.repo.Add(ctx, second))

	all, err := suite.repo.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *GormCarrierConfigRepositoryTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestGormCarrierConfigRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormCarrierConfigRepositoryTestSuite))
}
