package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

var ErrAutoShipOrderCommandIsNotConstructed = errors.New(
	"AutoShipOrderCommand must be created via NewAutoShipOrderCommand constructor",
)

// AutoShipOrderCommand represents a request to ship an order with the
// carrier the routing policy recommends.
type AutoShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	strategy services.Strategy

	guard guard.ConstructorGuard
}

// NewAutoShipOrderCommand creates a command to route and ship an order.
func NewAutoShipOrderCommand(orderID kernel.UUID, strategy services.Strategy) (AutoShipOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AutoShipOrderCommand{}, err
	}

	return AutoShipOrderCommand{
		orderID:  orderID,
		strategy: strategy,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrAutoShipOrderCommandIsNotConstructed)
}

// OrderID returns the order to route and ship.
func (c AutoShipOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Strategy returns the routing strategy to apply.
func (c AutoShipOrderCommand) Strategy() services.Strategy {
	return c.strategy
}
