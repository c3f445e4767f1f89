package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetLabelCommandIsNotConstructed = errors.New(
	"GetLabelCommand must be created via NewGetLabelCommand constructor",
)

// GetLabelCommand represents a merchant's request for the shipping label
// document of a bound order.
type GetLabelCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetLabelCommand creates a command to download an order's label.
func NewGetLabelCommand(orderID kernel.UUID) (GetLabelCommand, error) {
	if err := orderID.Validate(); err != nil {
		return GetLabelCommand{}, err
	}

	return GetLabelCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c GetLabelCommand) Validate() error {
	return c.guard.Validate(ErrGetLabelCommandIsNotConstructed)
}

// OrderID returns the order whose label is requested.
func (c GetLabelCommand) OrderID() kernel.UUID {
	return c.orderID
}
