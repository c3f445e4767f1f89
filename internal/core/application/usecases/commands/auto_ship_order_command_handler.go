package commands

import (
	"context"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AutoShipOrderCommandHandler composes recommendation and shipping: it asks
// the smart router for a carrier, then drives that carrier's adapter and
// binds the order on success. The recommendation's justification is recorded
// on the binding so the choice stays explainable after the fact.
type AutoShipOrderCommandHandler struct {
	uowFactory UoWFactory
	registry   AdapterRegistry
	router     services.SmartRouter
	rates      RateCollector
}

// NewAutoShipOrderCommandHandler creates a handler for policy-driven shipping.
func NewAutoShipOrderCommandHandler(
	uowFactory UoWFactory,
	registry AdapterRegistry,
	router services.SmartRouter,
	rates RateCollector,
) AutoShipOrderCommandHandler {
	return AutoShipOrderCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		router:     router,
		rates:      rates,
	}
}

// Handle routes and ships the order. A merchant with no active carrier gets
// a ConfigurationError carrying the router's justification, never a guess.
func (h *AutoShipOrderCommandHandler) Handle(ctx context.Context, cmd AutoShipOrderCommand) (ports.ShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return ports.ShipmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.ShipmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return ports.ShipmentResult{}, err
	}

	if !aggregate.IsShippable() {
		return noOpResult(aggregate), nil
	}

	configs, err := uow.CarrierConfigRepository().GetAllActive(ctx, aggregate.MerchantID())
	if err != nil {
		return ports.ShipmentResult{}, err
	}

	var quotes map[carrier.Type]float64
	if cmd.Strategy() == services.StrategyCheapest || cmd.Strategy() == services.StrategyBalanced {
		quotes = h.rates.Collect(ctx, aggregate, configs)
	}

	recommendation, err := h.router.Recommend(aggregate, configs, cmd.Strategy(), quotes)
	if err != nil {
		return ports.ShipmentResult{}, err
	}
	if recommendation.IsEmpty() {
		return ports.ShipmentResult{}, errs.NewConfigurationError(recommendation.Justification)
	}

	config, err := activeConfigFor(ctx, uow, aggregate, recommendation.CarrierType)
	if err != nil {
		return ports.ShipmentResult{}, err
	}

	result, err := shipWith(ctx, uow, h.registry, aggregate, config, recommendation.Justification)
	if err != nil || !result.Success {
		return result, err
	}

	return result, uow.Commit(ctx)
}
