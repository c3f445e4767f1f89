package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// GetLabelCommandHandler downloads the shipping label for a bound order from
// its carrier. Nothing is persisted; the handler exists on the command side
// because the label lives at the vendor, not in the read model.
type GetLabelCommandHandler struct {
	uowFactory UoWFactory
	registry   AdapterRegistry
}

// NewGetLabelCommandHandler creates a handler for label downloads.
func NewGetLabelCommandHandler(uowFactory UoWFactory, registry AdapterRegistry) GetLabelCommandHandler {
	return GetLabelCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

// Handle fetches the label bytes for the order's current binding.
func (h *GetLabelCommandHandler) Handle(ctx context.Context, cmd GetLabelCommand) ([]byte, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	// Reads only, so no transaction is opened.
	uow := h.uowFactory.Create()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	binding := aggregate.Binding()
	if binding == nil {
		return nil, order.ErrNotBound
	}

	config, err := uow.CarrierConfigRepository().GetByMerchantAndType(
		ctx, aggregate.MerchantID(), binding.CarrierType())
	if err != nil {
		return nil, err
	}

	adapter, err := h.registry.AdapterFor(config)
	if err != nil {
		return nil, err
	}

	return adapter.FetchLabel(ctx, binding.ExternalID())
}
