package orderrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/status"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, timeline included.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.saveEvents(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. All columns are written,
// including columns going back to their zero value, and newly appended
// timeline events are inserted. The (order_id, seq) primary key makes the
// event insert idempotent for rows already persisted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.saveEvents(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID, including its binding and full timeline.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	events, err := r.loadEvents(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, events)
}

// GetAllTrackable retrieves all orders bound to a carrier whose status is not
// terminal. These are the shipments the tracking synchronizer still polls.
func (r *GormOrderRepository) GetAllTrackable(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("binding_carrier_type IS NOT NULL").
		Where("binding_status NOT IN (?, ?, ?)",
			status.Delivered.String(), status.Returned.String(), status.Cancelled.String()).
		Order("bound_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		events, eventsErr := r.loadEvents(ctx, dto.ID)
		if eventsErr != nil {
			return nil, eventsErr
		}

		aggregate, domainErr := toDomain(dto, events)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

func (r *GormOrderRepository) saveEvents(ctx context.Context, aggregate *order.Order) error {
	eventDTOs := eventsFromDomain(aggregate)
	if len(eventDTOs) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&eventDTOs).Error
}

func (r *GormOrderRepository) loadEvents(ctx context.Context, orderID uuid.UUID) ([]TrackingEventDTO, error) {
	var eventDTOs []TrackingEventDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("seq").
		Find(&eventDTOs).Error
	if err != nil {
		return nil, err
	}

	return eventDTOs, nil
}
