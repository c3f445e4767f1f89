package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/status"

	"gorm.io/gorm"
)

// GetTrackingTimelineQueryHandler reads an order's timeline straight from the
// tracking_events table, bypassing the aggregate.
//
// Example:
//
//	handler := NewGetTrackingTimelineQueryHandler(db)
//	query, _ := NewGetTrackingTimelineQuery(orderID)
//
//	timeline, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get timeline: %v", err)
//	    return err
//	}
type GetTrackingTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingTimelineQueryHandler creates a handler for timeline queries.
// Requires a GORM database connection for query execution.
func NewGetTrackingTimelineQueryHandler(db *gorm.DB) GetTrackingTimelineQueryHandler {
	return GetTrackingTimelineQueryHandler{db: db}
}

// Handle executes the query and returns the timeline in sequence order.
// An order without events yields an empty slice, not an error.
func (h GetTrackingTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingTimelineQuery,
) ([]GetTrackingTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetTrackingTimelineQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			seq,
			status,
			raw_status,
			carrier_type,
			location,
			occurred_at,
			source
		FROM tracking_events
		WHERE order_id = ?
		ORDER BY seq
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetTrackingTimelineQueryResponse
		var statusName, carrierName string
		var occurredAt time.Time

		err = rows.Scan(
			&entry.Seq,
			&statusName,
			&entry.RawStatus,
			&carrierName,
			&entry.Location,
			&occurredAt,
			&entry.Source,
		)
		if err != nil {
			return nil, err
		}

		masterStatus, statusErr := status.FromString(statusName)
		if statusErr != nil {
			return nil, statusErr
		}
		entry.Status = masterStatus

		meta := masterStatus.Meta()
		entry.LabelEN = meta.LabelEN
		entry.LabelFR = meta.LabelFR

		carrierType, carrierErr := carrier.TypeFromString(carrierName)
		if carrierErr != nil {
			return nil, carrierErr
		}
		entry.CarrierType = carrierType
		entry.OccurredAt = occurredAt

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
