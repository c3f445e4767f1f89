package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/status"

	"go.uber.org/zap"
)

// SyncTrackingCommandHandler is the tracking synchronizer: it polls the
// bound carrier for an order, normalizes the reported status and records
// the transition on the aggregate.
//
// Unbound orders and orders whose binding is terminal synchronize as
// successful no-ops; the terminal case never contacts the vendor. A raw
// status the normalizer does not recognize is logged for vocabulary-table
// maintenance and treated as no change, so an unknown vendor string can
// never regress a shipment to pending.
type SyncTrackingCommandHandler struct {
	uowFactory UoWFactory
	registry   AdapterRegistry
	normalizer *status.Normalizer
	log        *zap.Logger
}

// NewSyncTrackingCommandHandler creates the tracking synchronizer.
func NewSyncTrackingCommandHandler(
	uowFactory UoWFactory,
	registry AdapterRegistry,
	normalizer *status.Normalizer,
	log *zap.Logger,
) SyncTrackingCommandHandler {
	return SyncTrackingCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		normalizer: normalizer,
		log:        log,
	}
}

// Handle synchronizes one order. The error return covers command validation
// only; everything downstream lands in the result so batch sweeps stay
// isolated per order.
func (h *SyncTrackingCommandHandler) Handle(ctx context.Context, cmd SyncTrackingCommand) (SyncResult, error) {
	if err := cmd.Validate(); err != nil {
		return SyncResult{}, err
	}
	return h.sync(ctx, cmd.OrderID()), nil
}

// HandleBatch synchronizes each order independently: one order's failure is
// captured in its own result and never aborts the sweep. The returned slice
// carries exactly one result per input id, in input order.
func (h *SyncTrackingCommandHandler) HandleBatch(ctx context.Context, orderIDs []kernel.UUID) []SyncResult {
	results := make([]SyncResult, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		results = append(results, h.sync(ctx, orderID))
	}
	return results
}

func (h *SyncTrackingCommandHandler) sync(ctx context.Context, orderID kernel.UUID) SyncResult {
	result := SyncResult{OrderID: orderID}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		result.Err = err
		return result
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		result.Err = err
		return result
	}

	result.OldStatus = aggregate.CurrentStatus()
	result.NewStatus = result.OldStatus

	binding := aggregate.Binding()
	if binding == nil || binding.IsFinal() {
		return result
	}

	config, err := uow.CarrierConfigRepository().GetByMerchantAndType(
		ctx, aggregate.MerchantID(), binding.CarrierType())
	if err != nil {
		result.Err = err
		return result
	}

	adapter, err := h.registry.AdapterFor(config)
	if err != nil {
		result.Err = err
		return result
	}

	update, err := adapter.GetTrackingStatus(ctx, binding.ExternalID())
	if err != nil {
		result.Err = err
		return result
	}

	newStatus, recognized := h.normalizer.Normalize(update.RawStatus, binding.CarrierType())
	if !recognized {
		h.log.Warn("unrecognized carrier status",
			zap.String("order_id", orderID.String()),
			zap.String("carrier", binding.CarrierType().String()),
			zap.String("raw_status", update.RawStatus),
		)
		return result
	}

	if newStatus == result.OldStatus {
		return result
	}

	if err = aggregate.ApplyTransition(newStatus, update.RawStatus,
		update.Location, order.SourceSync, update.OccurredAt); err != nil {
		result.Err = err
		return result
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		result.Err = err
		return result
	}

	if err = uow.Commit(ctx); err != nil {
		result.Err = err
		return result
	}

	result.NewStatus = newStatus
	result.Changed = true
	return result
}
