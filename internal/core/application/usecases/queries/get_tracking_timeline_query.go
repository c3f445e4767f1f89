// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
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
	ErrGetTrackingTimelineQueryIsNotConstructed = errors.New(
		"GetTrackingTimelineQuery must be created via NewGetTrackingTimelineQuery constructor",
	)
)

// GetTrackingTimelineQuery retrieves the full tracking timeline of one order:
// every recorded status transition in sequence order, with display labels.
//
// Example:
//
//	query, err := NewGetTrackingTimelineQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetTrackingTimelineQueryHandler(db)
//
//	timeline, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get timeline: %w", err)
//	}
//
//	for _, entry := range timeline {
//	    fmt.Printf("%d. %s (%s)\n", entry.Seq, entry.LabelEN, entry.RawStatus)
//	}
type GetTrackingTimelineQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTrackingTimelineQuery creates a query for one order's timeline.
func NewGetTrackingTimelineQuery(orderID kernel.UUID) (GetTrackingTimelineQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetTrackingTimelineQuery{}, err
	}

	return GetTrackingTimelineQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose timeline is requested.
func (q GetTrackingTimelineQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTrackingTimelineQueryIsNotConstructed if validation fails.
func (q GetTrackingTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingTimelineQueryIsNotConstructed)
}

// GetTrackingTimelineQueryResponse is one entry of an order's timeline.
// Carries both the normalized status with its display labels and the raw
// vendor status the entry was derived from.
type GetTrackingTimelineQueryResponse struct {
	Seq         int
	Status      status.MasterStatus
	LabelEN     string
	LabelFR     string
	RawStatus   string
	CarrierType carrier.Type
	Location    string
	OccurredAt  time.Time
	Source      string
}
