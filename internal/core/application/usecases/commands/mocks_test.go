package commands_test

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllTrackable(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockConfigRepository struct{ mock.Mock }

func (m *MockConfigRepository) Add(ctx context.Context, aggregate *carrier.Config) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockConfigRepository) Update(ctx context.Context, aggregate *carrier.Config) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockConfigRepository) Get(ctx context.Context, id kernel.UUID) (*carrier.Config, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*carrier.Config), args.Error(1)
}

func (m *MockConfigRepository) GetByMerchantAndType(
	ctx context.Context, merchantID kernel.UUID, carrierType carrier.Type,
) (*carrier.Config, error) {
	args := m.Called(ctx, merchantID, carrierType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*carrier.Config), args.Error(1)
}

func (m *MockConfigRepository) GetAllActive(ctx context.Context, merchantID kernel.UUID) ([]*carrier.Config, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*carrier.Config), args.Error(1)
}

func (m *MockConfigRepository) GetAll(ctx context.Context) ([]*carrier.Config, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*carrier.Config), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CarrierConfigRepository() ports.CarrierConfigRepository {
	args := m.Called()
	return args.Get(0).(ports.CarrierConfigRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockAdapter struct{ mock.Mock }

func (m *MockAdapter) CreateShipment(ctx context.Context, aggregate *order.Order) ports.ShipmentResult {
	args := m.Called(ctx, aggregate)
	return args.Get(0).(ports.ShipmentResult)
}

func (m *MockAdapter) GetTrackingStatus(ctx context.Context, externalID string) (ports.TrackingUpdate, error) {
	args := m.Called(ctx, externalID)
	return args.Get(0).(ports.TrackingUpdate), args.Error(1)
}

func (m *MockAdapter) CancelShipment(ctx context.Context, externalID string) error {
	args := m.Called(ctx, externalID)
	return args.Error(0)
}

func (m *MockAdapter) FetchLabel(ctx context.Context, externalID string) ([]byte, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockAdapter) CheckCredentials(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAdapter) QuoteRate(ctx context.Context, aggregate *order.Order) (float64, error) {
	args := m.Called(ctx, aggregate)
	return args.Get(0).(float64), args.Error(1)
}

type MockRegistry struct{ mock.Mock }

func (m *MockRegistry) AdapterFor(config *carrier.Config) (ports.CarrierAdapter, error) {
	args := m.Called(config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.CarrierAdapter), args.Error(1)
}

func (m *MockRegistry) QuoterFor(config *carrier.Config) (ports.RateQuoter, bool, error) {
	args := m.Called(config)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(ports.RateQuoter), args.Bool(1), args.Error(2)
}

// Shared fixtures.

func testOrder(destination string) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		"Amine Ben Salah", "+21620123456", "12 rue de Carthage",
		"Tunis", destination, 2.5, 1, 89.900, "")
	if err != nil {
		panic(err)
	}
	return o
}

func boundOrder(destination string, carrierType carrier.Type, externalID string) *order.Order {
	o := testOrder(destination)
	if err := o.Bind(carrierType, externalID, "", "test", time.Now()); err != nil {
		panic(err)
	}
	return o
}

func navexTestConfig(merchantID kernel.UUID, priority int) *carrier.Config {
	cfg, err := carrier.NewConfig(kernel.NewUUID(), merchantID, carrier.NavexCredentials{
		APIKey:  "key",
		BaseURL: "https://api.navex.example",
	}, true, false, priority)
	if err != nil {
		panic(err)
	}
	return cfg
}

func simulatedTestConfig(merchantID kernel.UUID, priority int) *carrier.Config {
	cfg, err := carrier.NewConfig(kernel.NewUUID(), merchantID,
		carrier.SimulatedCredentials{}, true, false, priority)
	if err != nil {
		panic(err)
	}
	return cfg
}
