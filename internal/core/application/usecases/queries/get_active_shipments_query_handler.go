package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/status"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveShipmentsQueryHandler retrieves in-flight shipments from the
// database. Reads binding columns directly off the orders table, newest
// binding first.
//
// Example:
//
//	handler := NewGetActiveShipmentsQueryHandler(db)
//	query, _ := NewGetActiveShipmentsQuery(merchantID)
//
//	shipments, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get active shipments: %v", err)
//	    return err
//	}
type GetActiveShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveShipmentsQueryHandler creates a handler for in-flight shipment
// queries. Requires a GORM database connection for query execution.
func NewGetActiveShipmentsQueryHandler(db *gorm.DB) GetActiveShipmentsQueryHandler {
	return GetActiveShipmentsQueryHandler{db: db}
}

// Handle executes the query and returns bound, non-terminal shipments of the
// merchant, most recently bound first.
func (h GetActiveShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveShipmentsQuery,
) ([]GetActiveShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]GetActiveShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			recipient_name,
			destination_area,
			cod_amount,
			binding_carrier_type,
			binding_external_id,
			binding_status,
			bound_at
		FROM orders
		WHERE merchant_id = ?
		  AND binding_carrier_type IS NOT NULL
		  AND binding_status NOT IN (?, ?, ?)
		ORDER BY bound_at DESC, id
	`, query.MerchantID().Bytes(),
		status.Delivered.String(), status.Returned.String(), status.Cancelled.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var shipment GetActiveShipmentsQueryResponse
		var id uuid.UUID
		var carrierName, statusName string
		var boundAt time.Time

		err = rows.Scan(
			&id,
			&shipment.RecipientName,
			&shipment.DestinationArea,
			&shipment.CODAmount,
			&carrierName,
			&shipment.ExternalTrackingID,
			&statusName,
			&boundAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		shipment.ID = orderID

		carrierType, carrierErr := carrier.TypeFromString(carrierName)
		if carrierErr != nil {
			return nil, carrierErr
		}
		shipment.CarrierType = carrierType

		masterStatus, statusErr := status.FromString(statusName)
		if statusErr != nil {
			return nil, statusErr
		}
		shipment.Status = masterStatus
		shipment.BoundAt = boundAt

		shipments = append(shipments, shipment)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
