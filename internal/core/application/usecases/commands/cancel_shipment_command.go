package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCancelShipmentCommandIsNotConstructed = errors.New(
	"CancelShipmentCommand must be created via NewCancelShipmentCommand constructor",
)

// CancelShipmentCommand represents a merchant's request to cancel a shipment.
// Cancellation is a status transition on the binding, never a removal.
type CancelShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelShipmentCommand creates a command to cancel an order's shipment.
func NewCancelShipmentCommand(orderID kernel.UUID) (CancelShipmentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelShipmentCommand{}, err
	}

	return CancelShipmentCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
}

// OrderID returns the order whose shipment is cancelled.
func (c CancelShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}
