package order

import (
	"time"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/status"
	"dispatch/internal/pkg/errs"
)

// Binding links an order to the carrier that accepted it. It is created once,
// by the smart router after a successful carrier call, and from then on only
// its status field changes. The external tracking identifier is assigned by
// the vendor and immutable.
type Binding struct {
	carrierType   carrier.Type
	externalID    string
	labelRef      string
	currentStatus status.MasterStatus
	justification string
	boundAt       time.Time
}

func newBinding(
	carrierType carrier.Type,
	externalID string,
	labelRef string,
	justification string,
	boundAt time.Time,
) (*Binding, error) {
	if err := carrierType.Validate(); err != nil {
		return nil, err
	}
	if externalID == "" {
		return nil, errs.NewValueIsRequiredError("external tracking id")
	}

	return &Binding{
		carrierType:   carrierType,
		externalID:    externalID,
		labelRef:      labelRef,
		currentStatus: status.Pending,
		justification: justification,
		boundAt:       boundAt,
	}, nil
}

// RestoreBinding reconstructs a binding from persistence.
func RestoreBinding(
	carrierType carrier.Type,
	externalID string,
	labelRef string,
	currentStatus status.MasterStatus,
	justification string,
	boundAt time.Time,
) (*Binding, error) {
	binding, err := newBinding(carrierType, externalID, labelRef, justification, boundAt)
	if err != nil {
		return nil, err
	}
	if err = currentStatus.Validate(); err != nil {
		return nil, err
	}

	binding.currentStatus = currentStatus
	return binding, nil
}

// CarrierType returns the carrier the order is bound to.
func (b *Binding) CarrierType() carrier.Type {
	return b.carrierType
}

// ExternalID returns the vendor-assigned tracking identifier.
func (b *Binding) ExternalID() string {
	return b.externalID
}

// LabelRef returns the label reference the vendor issued, if any.
func (b *Binding) LabelRef() string {
	return b.labelRef
}

// Status returns the current normalized shipment status.
func (b *Binding) Status() status.MasterStatus {
	return b.currentStatus
}

// Justification returns the routing explanation recorded when the carrier was
// chosen.
func (b *Binding) Justification() string {
	return b.justification
}

// BoundAt returns when the binding was created.
func (b *Binding) BoundAt() time.Time {
	return b.boundAt
}

// IsFinal reports whether the binding reached a terminal status.
func (b *Binding) IsFinal() bool {
	return b.currentStatus.IsFinal()
}
