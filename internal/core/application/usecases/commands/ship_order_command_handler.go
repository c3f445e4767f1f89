package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ShipOrderCommandHandler drives a carrier adapter to create a shipment and
// binds the order to the carrier on success.
//
// Shipping is safe to invoke twice: an order with an active, non-terminal
// binding short-circuits as a no-op success instead of creating a duplicate
// vendor shipment. On adapter failure nothing is persisted; the typed cause
// travels back in the result.
type ShipOrderCommandHandler struct {
	uowFactory UoWFactory
	registry   AdapterRegistry
}

// NewShipOrderCommandHandler creates a handler for explicit-carrier shipping.
func NewShipOrderCommandHandler(uowFactory UoWFactory, registry AdapterRegistry) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

// Handle processes the ship command and returns the shipment result. The
// error return covers validation, persistence and configuration failures;
// vendor-side failures come back inside the result with Success false.
func (h *ShipOrderCommandHandler) Handle(ctx context.Context, cmd ShipOrderCommand) (ports.ShipmentResult, error) {
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

	config, err := activeConfigFor(ctx, uow, aggregate, cmd.CarrierType())
	if err != nil {
		return ports.ShipmentResult{}, err
	}

	justification := "merchant selected " + cmd.CarrierType().String()
	result, err := shipWith(ctx, uow, h.registry, aggregate, config, justification)
	if err != nil || !result.Success {
		return result, err
	}

	return result, uow.Commit(ctx)
}

// noOpResult reports the existing binding as a success without contacting
// the vendor.
func noOpResult(aggregate *order.Order) ports.ShipmentResult {
	binding := aggregate.Binding()
	return ports.ShipmentResult{
		Success:            true,
		ExternalTrackingID: binding.ExternalID(),
		LabelRef:           binding.LabelRef(),
	}
}

// activeConfigFor finds the merchant's active configuration for the carrier.
func activeConfigFor(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	carrierType carrier.Type,
) (*carrier.Config, error) {
	configs, err := uow.CarrierConfigRepository().GetAllActive(ctx, aggregate.MerchantID())
	if err != nil {
		return nil, err
	}

	for _, config := range configs {
		if config.CarrierType() == carrierType {
			return config, nil
		}
	}
	return nil, errs.NewConfigurationError("carrier " + carrierType.String() + " is not active for this merchant")
}

// shipWith runs the adapter call and, on success, binds the order and stages
// the update inside the open transaction. The caller commits.
func shipWith(
	ctx context.Context,
	uow UoW,
	registry AdapterRegistry,
	aggregate *order.Order,
	config *carrier.Config,
	justification string,
) (ports.ShipmentResult, error) {
	adapter, err := registry.AdapterFor(config)
	if err != nil {
		return ports.ShipmentResult{}, err
	}

	result := adapter.CreateShipment(ctx, aggregate)
	if !result.Success {
		return result, nil
	}

	if err = aggregate.Bind(config.CarrierType(), result.ExternalTrackingID,
		result.LabelRef, justification, time.Now()); err != nil {
		return ports.ShipmentResult{}, err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return ports.ShipmentResult{}, err
	}

	return result, nil
}
