package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/status"
	"dispatch/internal/pkg/guard"
)

var ErrSyncTrackingCommandIsNotConstructed = errors.New(
	"SyncTrackingCommand must be created via NewSyncTrackingCommand constructor",
)

// SyncTrackingCommand represents a request to synchronize one order's
// shipment status with its carrier.
type SyncTrackingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSyncTrackingCommand creates a command to synchronize one order.
func NewSyncTrackingCommand(orderID kernel.UUID) (SyncTrackingCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SyncTrackingCommand{}, err
	}

	return SyncTrackingCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SyncTrackingCommand) Validate() error {
	return c.guard.Validate(ErrSyncTrackingCommandIsNotConstructed)
}

// OrderID returns the order to synchronize.
func (c SyncTrackingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SyncResult reports the outcome of synchronizing one order. A batch carries
// one result per input order; a failed order records its error here instead
// of aborting the sweep.
type SyncResult struct {
	OrderID   kernel.UUID
	OldStatus status.MasterStatus
	NewStatus status.MasterStatus
	Changed   bool
	Err       error
}
