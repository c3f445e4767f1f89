// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/status"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The carrier binding is flattened into nullable binding_* columns; a NULL
// binding_carrier_type means the order is unbound. The tracking timeline lives
// in its own table, see TrackingEventDTO.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantID uuid.UUID `gorm:"type:uuid;index"`

	RecipientName   string
	RecipientPhone  string
	AddressLine     string
	OriginArea      string
	DestinationArea string
	WeightKg        float64
	Pieces          int
	CODAmount       float64 `gorm:"column:cod_amount"`
	Notes           string

	BindingCarrierType   *string `gorm:"column:binding_carrier_type;index"`
	BindingExternalID    string  `gorm:"column:binding_external_id;index"`
	BindingLabelRef      string  `gorm:"column:binding_label_ref"`
	BindingStatus        string  `gorm:"column:binding_status;index"`
	BindingJustification string  `gorm:"column:binding_justification"`
	BoundAt              *time.Time

	CODCollected bool `gorm:"column:cod_collected"`
	ReturnedAt   *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// TrackingEventDTO represents one row of an order's append-only timeline.
// The (order_id, seq) pair is the primary key, which makes re-inserting
// already persisted events a conflict instead of a duplicate.
type TrackingEventDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq         int       `gorm:"primaryKey"`
	Status      string
	RawStatus   string
	CarrierType string
	Location    string
	OccurredAt  time.Time
	Source      string
}

// TableName specifies the database table name for tracking events.
func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

// fromDomain converts an order aggregate to its database representation.
// Flattens the optional binding into nullable columns.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:              aggregate.ID().Bytes(),
		MerchantID:      aggregate.MerchantID().Bytes(),
		RecipientName:   aggregate.RecipientName(),
		RecipientPhone:  aggregate.RecipientPhone(),
		AddressLine:     aggregate.AddressLine(),
		OriginArea:      aggregate.OriginArea(),
		DestinationArea: aggregate.DestinationArea(),
		WeightKg:        aggregate.WeightKg(),
		Pieces:          aggregate.Pieces(),
		CODAmount:       aggregate.CODAmount(),
		Notes:           aggregate.Notes(),
		CODCollected:    aggregate.CODCollected(),
		ReturnedAt:      aggregate.ReturnedAt(),
	}

	if binding := aggregate.Binding(); binding != nil {
		carrierType := binding.CarrierType().String()
		boundAt := binding.BoundAt()

		dto.BindingCarrierType = &carrierType
		dto.BindingExternalID = binding.ExternalID()
		dto.BindingLabelRef = binding.LabelRef()
		dto.BindingStatus = binding.Status().String()
		dto.BindingJustification = binding.Justification()
		dto.BoundAt = &boundAt
	}

	return dto
}

// eventsFromDomain converts an aggregate's timeline to event rows.
func eventsFromDomain(aggregate *order.Order) []TrackingEventDTO {
	events := aggregate.Events()
	dtos := make([]TrackingEventDTO, 0, len(events))

	for _, event := range events {
		dtos = append(dtos, TrackingEventDTO{
			OrderID:     aggregate.ID().Bytes(),
			Seq:         event.Seq(),
			Status:      event.Status().String(),
			RawStatus:   event.RawStatus(),
			CarrierType: event.CarrierType().String(),
			Location:    event.Location(),
			OccurredAt:  event.OccurredAt(),
			Source:      event.Source(),
		})
	}

	return dtos
}

// toDomain converts database rows back into an order aggregate.
// Reconstructs the binding and timeline using the Restore constructors.
func toDomain(dto OrderDTO, eventDTOs []TrackingEventDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	var binding *order.Binding
	if dto.BindingCarrierType != nil {
		carrierType, carrierErr := carrier.TypeFromString(*dto.BindingCarrierType)
		if carrierErr != nil {
			return nil, carrierErr
		}

		bindingStatus, statusErr := status.FromString(dto.BindingStatus)
		if statusErr != nil {
			return nil, statusErr
		}

		var boundAt time.Time
		if dto.BoundAt != nil {
			boundAt = *dto.BoundAt
		}

		binding, err = order.RestoreBinding(
			carrierType,
			dto.BindingExternalID,
			dto.BindingLabelRef,
			bindingStatus,
			dto.BindingJustification,
			boundAt,
		)
		if err != nil {
			return nil, err
		}
	}

	events := make([]order.TrackingEvent, 0, len(eventDTOs))
	for _, eventDTO := range eventDTOs {
		eventStatus, statusErr := status.FromString(eventDTO.Status)
		if statusErr != nil {
			return nil, statusErr
		}

		carrierType, carrierErr := carrier.TypeFromString(eventDTO.CarrierType)
		if carrierErr != nil {
			return nil, carrierErr
		}

		events = append(events, order.RestoreTrackingEvent(
			eventDTO.Seq,
			eventStatus,
			eventDTO.RawStatus,
			carrierType,
			eventDTO.Location,
			eventDTO.OccurredAt,
			eventDTO.Source,
		))
	}

	return order.RestoreOrder(
		id,
		merchantID,
		dto.RecipientName,
		dto.RecipientPhone,
		dto.AddressLine,
		dto.OriginArea,
		dto.DestinationArea,
		dto.WeightKg,
		dto.Pieces,
		dto.CODAmount,
		dto.Notes,
		binding,
		events,
		dto.CODCollected,
		dto.ReturnedAt,
	)
}
