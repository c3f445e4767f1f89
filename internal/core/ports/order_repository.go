// Package ports defines the driven-side contracts of the dispatch core:
// repositories, the unit of work, the carrier adapter, and the cache.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders together
// with their carrier binding and tracking timeline.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including
	// newly appended tracking events.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its binding and full timeline.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllTrackable retrieves all orders with an active binding whose
	// status is not terminal. Used by the tracking synchronizer to decide
	// which external shipments still need polling.
	GetAllTrackable(ctx context.Context) ([]*order.Order, error)
}
