package carrierconfigrepo

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCarrierConfigRepository implements CarrierConfigRepository using GORM.
type GormCarrierConfigRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCarrierConfigRepository creates a new GORM carrier configuration
// repository.
func NewGormCarrierConfigRepository(db *gorm.DB, tracker aggregateTracker) *GormCarrierConfigRepository {
	return &GormCarrierConfigRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new carrier configuration to the database.
func (r *GormCarrierConfigRepository) Add(ctx context.Context, aggregate *carrier.Config) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing configuration to the database. All columns are
// written so that deactivation and cleared validation stamps persist.
func (r *GormCarrierConfigRepository) Update(ctx context.Context, aggregate *carrier.Config) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&CarrierConfigDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a configuration by ID.
func (r *GormCarrierConfigRepository) Get(ctx context.Context, id kernel.UUID) (*carrier.Config, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CarrierConfigDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("carrier config", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByMerchantAndType retrieves a merchant's configuration for one carrier
// regardless of the active flag. Shipments bound before a deactivation still
// synchronize and cancel through it.
func (r *GormCarrierConfigRepository) GetByMerchantAndType(
	ctx context.Context,
	merchantID kernel.UUID,
	carrierType carrier.Type,
) (*carrier.Config, error) {
	if err := merchantID.Validate(); err != nil {
		return nil, err
	}
	if err := carrierType.Validate(); err != nil {
		return nil, err
	}

	var dto CarrierConfigDTO
	err := r.db.WithContext(ctx).
		First(&dto, "merchant_id = ? AND carrier_type = ?", merchantID.Bytes(), carrierType.String()).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("carrier config",
				fmt.Sprintf("%s/%s", merchantID, carrierType))
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves every active configuration of a merchant, ordered by
// ascending priority. Ties break on the carrier name for a stable order.
func (r *GormCarrierConfigRepository) GetAllActive(
	ctx context.Context,
	merchantID kernel.UUID,
) ([]*carrier.Config, error) {
	if err := merchantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CarrierConfigDTO
	err := r.db.WithContext(ctx).
		Where("merchant_id = ? AND active", merchantID.Bytes()).
		Order("priority, carrier_type").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetAll retrieves every configuration regardless of merchant or active flag.
// Used by the credential check job.
func (r *GormCarrierConfigRepository) GetAll(ctx context.Context) ([]*carrier.Config, error) {
	var dtos []CarrierConfigDTO
	err := r.db.WithContext(ctx).
		Order("merchant_id, carrier_type").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

func (r *GormCarrierConfigRepository) toDomainAll(dtos []CarrierConfigDTO) ([]*carrier.Config, error) {
	configs := make([]*carrier.Config, 0, len(dtos))
	for _, dto := range dtos {
		config, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		configs = append(configs, config)
	}

	return configs, nil
}
