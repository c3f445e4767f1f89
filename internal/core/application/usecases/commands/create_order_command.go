package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new shipment order.
// Encapsulates the recipient, destination and parcel details a merchant
// captured; the order starts unbound and pending.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	merchantID      kernel.UUID
	recipientName   string
	recipientPhone  string
	addressLine     string
	originArea      string
	destinationArea string
	weightKg        float64
	pieces          int
	codAmount       float64
	notes           string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new shipment order.
// Field-level validation (weight bounds, piece count) happens in the order
// aggregate; the command only checks identity and required fields.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	merchantID kernel.UUID,
	recipientName string,
	recipientPhone string,
	addressLine string,
	originArea string,
	destinationArea string,
	weightKg float64,
	pieces int,
	codAmount float64,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		originArea: originArea,
		weightKg:   weightKg,
		pieces:     pieces,
		codAmount:  codAmount,
		notes:      notes,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(orderID, merchantID),
		cmd.setRecipient(recipientName, recipientPhone),
		cmd.setDestination(addressLine, destinationArea),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// MerchantID returns the owning merchant.
func (c CreateOrderCommand) MerchantID() kernel.UUID {
	return c.merchantID
}

// RecipientName returns the recipient's full name.
func (c CreateOrderCommand) RecipientName() string {
	return c.recipientName
}

// RecipientPhone returns the recipient's phone number.
func (c CreateOrderCommand) RecipientPhone() string {
	return c.recipientPhone
}

// AddressLine returns the street-level delivery address.
func (c CreateOrderCommand) AddressLine() string {
	return c.addressLine
}

// OriginArea returns the administrative area the shipment leaves from.
func (c CreateOrderCommand) OriginArea() string {
	return c.originArea
}

// DestinationArea returns the administrative area the shipment goes to.
func (c CreateOrderCommand) DestinationArea() string {
	return c.destinationArea
}

// WeightKg returns the parcel weight in kilograms.
func (c CreateOrderCommand) WeightKg() float64 {
	return c.weightKg
}

// Pieces returns the number of parcels.
func (c CreateOrderCommand) Pieces() int {
	return c.pieces
}

// CODAmount returns the cash-on-delivery amount.
func (c CreateOrderCommand) CODAmount() float64 {
	return c.codAmount
}

// Notes returns free-text delivery instructions.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setIDs(orderID, merchantID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := merchantID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	c.merchantID = merchantID
	return nil
}

func (c *CreateOrderCommand) setRecipient(name, phone string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("recipient name")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("recipient phone")
	}
	c.recipientName = name
	c.recipientPhone = phone
	return nil
}

func (c *CreateOrderCommand) setDestination(addressLine, destinationArea string) error {
	if addressLine == "" {
		return errs.NewValueIsRequiredError("address line")
	}
	if destinationArea == "" {
		return errs.NewValueIsRequiredError("destination area")
	}
	c.addressLine = addressLine
	c.destinationArea = destinationArea
	return nil
}
