package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/status"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetActiveShipmentsQueryIsNotConstructed = errors.New(
		"GetActiveShipmentsQuery must be created via NewGetActiveShipmentsQuery constructor",
	)
)

// GetActiveShipmentsQuery retrieves a merchant's shipments that are bound to a
// carrier and still in flight. Delivered, returned and cancelled shipments are
// excluded.
//
// Example:
//
//	query, err := NewGetActiveShipmentsQuery(merchantID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetActiveShipmentsQueryHandler(db)
//
//	shipments, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active shipments: %w", err)
//	}
//
//	fmt.Printf("%d shipments in flight\n", len(shipments))
type GetActiveShipmentsQuery struct {
	merchantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveShipmentsQuery creates a query for a merchant's in-flight
// shipments.
func NewGetActiveShipmentsQuery(merchantID kernel.UUID) (GetActiveShipmentsQuery, error) {
	if err := merchantID.Validate(); err != nil {
		return GetActiveShipmentsQuery{}, err
	}

	return GetActiveShipmentsQuery{
		merchantID: merchantID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// MerchantID returns the merchant whose shipments are requested.
func (q GetActiveShipmentsQuery) MerchantID() kernel.UUID {
	return q.merchantID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveShipmentsQueryIsNotConstructed if validation fails.
func (q GetActiveShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveShipmentsQueryIsNotConstructed)
}

// GetActiveShipmentsQueryResponse is one in-flight shipment of the merchant.
type GetActiveShipmentsQueryResponse struct {
	ID                 kernel.UUID
	RecipientName      string
	DestinationArea    string
	CODAmount          float64
	CarrierType        carrier.Type
	ExternalTrackingID string
	Status             status.MasterStatus
	BoundAt            time.Time
}
