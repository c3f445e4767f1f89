package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrShipOrderCommandIsNotConstructed = errors.New(
	"ShipOrderCommand must be created via NewShipOrderCommand constructor",
)

// ShipOrderCommand represents a request to ship an order with a carrier the
// merchant picked explicitly. Carrier selection by policy is
// AutoShipOrderCommand's job.
type ShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	carrierType carrier.Type

	guard guard.ConstructorGuard
}

// NewShipOrderCommand creates a command to ship an order with the given
// carrier.
func NewShipOrderCommand(orderID kernel.UUID, carrierType carrier.Type) (ShipOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ShipOrderCommand{}, err
	}
	if err := carrierType.Validate(); err != nil {
		return ShipOrderCommand{}, err
	}

	return ShipOrderCommand{
		orderID:     orderID,
		carrierType: carrierType,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

// OrderID returns the order to ship.
func (c ShipOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CarrierType returns the carrier the merchant picked.
func (c ShipOrderCommand) CarrierType() carrier.Type {
	return c.carrierType
}
