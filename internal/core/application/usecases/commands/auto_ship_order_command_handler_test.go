package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func buildAutoShipHandler(factory commands.UoWFactory, registry commands.AdapterRegistry) commands.AutoShipOrderCommandHandler {
	return commands.NewAutoShipOrderCommandHandler(
		factory,
		registry,
		services.NewSmartRouter(geo.NewDirectory()),
		commands.NewRateCollector(registry, nil, zap.NewNop()),
	)
}

func TestAutoShipOrderCommandHandler_Handle_RemoteDestinationUsesSpecialist(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder("Tataouine")
	navexCfg := navexTestConfig(aggregate.MerchantID(), 1)
	simulatedCfg := simulatedTestConfig(aggregate.MerchantID(), 0)
	configs := []*carrier.Config{simulatedCfg, navexCfg}

	cmd, err := commands.NewAutoShipOrderCommand(aggregate.ID(), services.StrategySmart)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	configRepo := new(MockConfigRepository)
	adapter := new(MockAdapter)
	registry := new(MockRegistry)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("CarrierConfigRepository").Return(configRepo).Once(),
		configRepo.On("GetAllActive", ctx, aggregate.MerchantID()).Return(configs, nil).Once(),
		uow.On("CarrierConfigRepository").Return(configRepo).Once(),
		configRepo.On("GetAllActive", ctx, aggregate.MerchantID()).Return(configs, nil).Once(),
		registry.On("AdapterFor", navexCfg).Return(adapter, nil).Once(),
		adapter.On("CreateShipment", ctx, aggregate).Return(ports.ShipmentResult{
			Success:            true,
			ExternalTrackingID: "NVX-9",
		}).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := buildAutoShipHandler(factory, registry)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.True(t, aggregate.HasActiveBinding())
	assert.Equal(t, carrier.Navex, aggregate.Binding().CarrierType())
	assert.Contains(t, aggregate.Binding().Justification(), "remote")
}

func TestAutoShipOrderCommandHandler_Handle_NoCarrierConfigured(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder("Tunis")

	cmd, err := commands.NewAutoShipOrderCommand(aggregate.ID(), services.StrategySmart)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	configRepo := new(MockConfigRepository)
	registry := new(MockRegistry)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("CarrierConfigRepository").Return(configRepo).Once(),
		configRepo.On("GetAllActive", ctx, aggregate.MerchantID()).
			Return([]*carrier.Config{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := buildAutoShipHandler(factory, registry)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConfiguration)
	assert.Contains(t, err.Error(), services.NoCarrierConfigured)
	assert.False(t, aggregate.HasActiveBinding())
}

func TestAutoShipOrderCommandHandler_Handle_AlreadyBoundIsNoOp(t *testing.T) {
	ctx := t.Context()
	aggregate := boundOrder("Tunis", carrier.Simulated, "SIM-OLD")

	cmd, err := commands.NewAutoShipOrderCommand(aggregate.ID(), services.StrategySmart)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	registry := new(MockRegistry)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := buildAutoShipHandler(factory, registry)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "SIM-OLD", result.ExternalTrackingID)
	registry.AssertNotCalled(t, "AdapterFor", mock.Anything)
}

func TestAutoShipOrderCommandHandler_Handle_CheapestStrategyCollectsQuotes(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder("Sousse")
	navexCfg := navexTestConfig(aggregate.MerchantID(), 0)
	simulatedCfg := simulatedTestConfig(aggregate.MerchantID(), 1)
	configs := []*carrier.Config{navexCfg, simulatedCfg}

	cmd, err := commands.NewAutoShipOrderCommand(aggregate.ID(), services.StrategyCheapest)
	require.NoError(t, err)

	navexQuoter := new(MockAdapter)
	simulatedQuoter := new(MockAdapter)
	navexQuoter.On("QuoteRate", ctx, aggregate).Return(14.0, nil).Once()
	simulatedQuoter.On("QuoteRate", ctx, aggregate).Return(9.0, nil).Once()

	adapter := new(MockAdapter)
	adapter.On("CreateShipment", ctx, aggregate).Return(ports.ShipmentResult{
		Success:            true,
		ExternalTrackingID: "SIM-CHEAP",
	}).Once()

	registry := new(MockRegistry)
	registry.On("QuoterFor", navexCfg).Return(navexQuoter, true, nil).Once()
	registry.On("QuoterFor", simulatedCfg).Return(simulatedQuoter, true, nil).Once()
	registry.On("AdapterFor", simulatedCfg).Return(adapter, nil).Once()

	orderRepo := new(MockOrderRepository)
	configRepo := new(MockConfigRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CarrierConfigRepository").Return(configRepo)
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	configRepo.On("GetAllActive", ctx, aggregate.MerchantID()).Return(configs, nil)
	orderRepo.On("Update", ctx, aggregate).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := buildAutoShipHandler(factory, registry)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "SIM-CHEAP", result.ExternalTrackingID)
	require.True(t, aggregate.HasActiveBinding())
	assert.Equal(t, carrier.Simulated, aggregate.Binding().CarrierType())
	registry.AssertExpectations(t)
}

func TestAutoShipOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := buildAutoShipHandler(factory, new(MockRegistry))

	_, err := handler.Handle(t.Context(), commands.AutoShipOrderCommand{})

	require.ErrorIs(t, err, commands.ErrAutoShipOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
