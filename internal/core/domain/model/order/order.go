package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/status"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrAlreadyBound is returned when a binding is requested for an order
	// that already has an active, non-terminal binding.
	ErrAlreadyBound = errors.New("order already has an active binding")

	// ErrNotBound is returned when a transition is applied to an order that
	// has no binding.
	ErrNotBound = errors.New("order has no binding")

	// ErrBindingIsFinal is returned when a transition is applied after the
	// binding reached a terminal status.
	ErrBindingIsFinal = errors.New("binding already reached a terminal status")
)

// MaxWeightKg is the heaviest parcel the dispatch core accepts. Heavier
// freight goes through a different channel entirely.
const MaxWeightKg = 70.0

// Order is the aggregate root for one merchant shipment. It owns the shipment
// details sent to carriers, the binding created when a carrier accepts the
// shipment, and the append-only tracking timeline.
//
// Order enforces these invariants:
//   - recipient, phone and destination area are always present
//   - weight is positive and bounded, pieces is at least one
//   - at most one active binding exists; it is created only through Bind
//     after a successful carrier call
//   - the timeline is append-only and strictly ordered by sequence
//   - no transition is accepted once the binding is terminal
type Order struct {
	id         kernel.UUID
	merchantID kernel.UUID

	recipientName   string
	recipientPhone  string
	addressLine     string
	originArea      string
	destinationArea string
	weightKg        float64
	pieces          int
	codAmount       float64
	notes           string

	binding      *Binding
	events       []TrackingEvent
	codCollected bool
	returnedAt   *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an unbound order carrying validated shipment details.
func NewOrder(
	id kernel.UUID,
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
) (*Order, error) {
	o := &Order{
		originArea: originArea,
		notes:      notes,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setIDs(id, merchantID),
		o.setRecipient(recipientName, recipientPhone),
		o.setDestination(addressLine, destinationArea),
		o.setParcel(weightKg, pieces, codAmount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its binding,
// timeline and side-effect marks.
func RestoreOrder(
	id kernel.UUID,
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
	binding *Binding,
	events []TrackingEvent,
	codCollected bool,
	returnedAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, merchantID, recipientName, recipientPhone, addressLine,
		originArea, destinationArea, weightKg, pieces, codAmount, notes)
	if err != nil {
		return nil, err
	}

	o.binding = binding
	o.events = events
	o.codCollected = codCollected
	o.returnedAt = returnedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// MerchantID returns the owning merchant.
func (o *Order) MerchantID() kernel.UUID {
	return o.merchantID
}

// RecipientName returns the full recipient name as the merchant captured it.
func (o *Order) RecipientName() string {
	return o.recipientName
}

// RecipientPhone returns the recipient phone number, possibly with a country
// prefix; adapters localize it to each vendor's expected format.
func (o *Order) RecipientPhone() string {
	return o.recipientPhone
}

// AddressLine returns the street-level delivery address.
func (o *Order) AddressLine() string {
	return o.addressLine
}

// OriginArea returns the administrative area the shipment leaves from.
func (o *Order) OriginArea() string {
	return o.originArea
}

// DestinationArea returns the administrative area the shipment goes to.
func (o *Order) DestinationArea() string {
	return o.destinationArea
}

// WeightKg returns the parcel weight in kilograms.
func (o *Order) WeightKg() float64 {
	return o.weightKg
}

// Pieces returns the number of parcels in the shipment.
func (o *Order) Pieces() int {
	return o.pieces
}

// CODAmount returns the cash-on-delivery amount, zero for prepaid shipments.
func (o *Order) CODAmount() float64 {
	return o.codAmount
}

// Notes returns free-text delivery instructions.
func (o *Order) Notes() string {
	return o.notes
}

// Binding returns the carrier binding, or nil for unbound orders.
func (o *Order) Binding() *Binding {
	return o.binding
}

// Events returns the tracking timeline in sequence order.
func (o *Order) Events() []TrackingEvent {
	return o.events
}

// CODCollected reports whether delivery marked the funds as collected.
func (o *Order) CODCollected() bool {
	return o.codCollected
}

// ReturnedAt returns when the shipment was marked returned, if it was.
func (o *Order) ReturnedAt() *time.Time {
	return o.returnedAt
}

// CurrentStatus derives the order's shipment status. Unbound orders are
// Pending; bound orders report the binding status, which always equals the
// most recent event's normalized status.
func (o *Order) CurrentStatus() status.MasterStatus {
	if o.binding == nil {
		return status.Pending
	}
	return o.binding.Status()
}

// HasActiveBinding reports whether a binding exists at all. Bindings are
// never removed, so this is true from the first successful ship onward.
func (o *Order) HasActiveBinding() bool {
	return o.binding != nil
}

// IsShippable reports whether a ship call should contact a carrier: orders
// with an active, non-terminal binding must short-circuit as a no-op instead
// of creating a duplicate vendor shipment.
func (o *Order) IsShippable() bool {
	return o.binding == nil || o.binding.IsFinal()
}

// Bind attaches the order to a carrier after a successful carrier call.
// Returns ErrAlreadyBound when an active, non-terminal binding exists.
func (o *Order) Bind(
	carrierType carrier.Type,
	externalID string,
	labelRef string,
	justification string,
	at time.Time,
) error {
	if o.binding != nil && !o.binding.IsFinal() {
		return ErrAlreadyBound
	}

	binding, err := newBinding(carrierType, externalID, labelRef, justification, at)
	if err != nil {
		return err
	}

	o.binding = binding
	return nil
}

// ApplyTransition records a detected status change: it updates the binding
// status and appends one tracking event. Side effects are strictly tied to
// the transition — entering Delivered marks cash-on-delivery funds as
// collected, entering Returned stamps the return time. No other side effects
// are permitted.
func (o *Order) ApplyTransition(
	newStatus status.MasterStatus,
	rawStatus string,
	location string,
	source string,
	at time.Time,
) error {
	if o.binding == nil {
		return ErrNotBound
	}
	if o.binding.IsFinal() {
		return ErrBindingIsFinal
	}
	if err := newStatus.Validate(); err != nil {
		return err
	}

	o.binding.currentStatus = newStatus
	o.events = append(o.events, TrackingEvent{
		seq:         len(o.events) + 1,
		status:      newStatus,
		rawStatus:   rawStatus,
		carrierType: o.binding.carrierType,
		location:    location,
		occurredAt:  at,
		source:      source,
	})

	switch newStatus {
	case status.Delivered:
		if o.codAmount > 0 {
			o.codCollected = true
		}
	case status.Returned:
		returnedAt := at
		o.returnedAt = &returnedAt
	}

	return nil
}

func (o *Order) setIDs(id, merchantID kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := merchantID.Validate(); err != nil {
		return err
	}
	o.id = id
	o.merchantID = merchantID
	return nil
}

func (o *Order) setRecipient(name, phone string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("recipient name")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("recipient phone")
	}
	o.recipientName = name
	o.recipientPhone = phone
	return nil
}

func (o *Order) setDestination(addressLine, destinationArea string) error {
	if addressLine == "" {
		return errs.NewValueIsRequiredError("address line")
	}
	if destinationArea == "" {
		return errs.NewValueIsRequiredError("destination area")
	}
	o.addressLine = addressLine
	o.destinationArea = destinationArea
	return nil
}

func (o *Order) setParcel(weightKg float64, pieces int, codAmount float64) error {
	if weightKg <= 0 || weightKg > MaxWeightKg {
		return errs.NewValueIsOutOfRangeError("weight", weightKg, 0, MaxWeightKg)
	}
	if pieces < 1 {
		return errs.NewValueIsInvalidErrorWithCause("pieces",
			fmt.Errorf("%d is not at least 1", pieces))
	}
	if codAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("cod amount",
			fmt.Errorf("%.3f is negative", codAmount))
	}
	o.weightKg = weightKg
	o.pieces = pieces
	o.codAmount = codAmount
	return nil
}
