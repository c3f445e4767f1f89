package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/status"
)

// CancelShipmentCommandHandler asks the bound carrier to cancel a shipment
// and records the cancelled transition on success. A vendor refusal (for
// example after pickup) aborts without touching the order.
type CancelShipmentCommandHandler struct {
	uowFactory UoWFactory
	registry   AdapterRegistry
}

// NewCancelShipmentCommandHandler creates a handler for shipment cancellation.
func NewCancelShipmentCommandHandler(uowFactory UoWFactory, registry AdapterRegistry) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

// Handle processes the cancellation command.
func (h *CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	binding := aggregate.Binding()
	if binding == nil {
		return order.ErrNotBound
	}
	if binding.IsFinal() {
		return order.ErrBindingIsFinal
	}

	config, err := uow.CarrierConfigRepository().GetByMerchantAndType(
		ctx, aggregate.MerchantID(), binding.CarrierType())
	if err != nil {
		return err
	}

	adapter, err := h.registry.AdapterFor(config)
	if err != nil {
		return err
	}

	if err = adapter.CancelShipment(ctx, binding.ExternalID()); err != nil {
		return err
	}

	if err = aggregate.ApplyTransition(status.Cancelled, "cancelled by merchant",
		"", order.SourceCancel, time.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
