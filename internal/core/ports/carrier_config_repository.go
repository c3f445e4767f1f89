package ports

import (
	"context"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/kernel"
)

// CarrierConfigRepository defines the persistence contract for carrier
// configuration aggregates.
type CarrierConfigRepository interface {
	// Add persists a new carrier configuration.
	Add(ctx context.Context, aggregate *carrier.Config) error

	// Update persists changes to an existing configuration, including
	// credential validation stamps.
	Update(ctx context.Context, aggregate *carrier.Config) error

	// Get retrieves a configuration by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*carrier.Config, error)

	// GetByMerchantAndType retrieves a merchant's configuration for one
	// carrier regardless of the active flag. Shipments bound before a
	// deactivation still synchronize through it.
	GetByMerchantAndType(ctx context.Context, merchantID kernel.UUID, carrierType carrier.Type) (*carrier.Config, error)

	// GetAllActive retrieves every active configuration of a merchant,
	// ordered by ascending priority (lower number wins ties).
	GetAllActive(ctx context.Context, merchantID kernel.UUID) ([]*carrier.Config, error)

	// GetAll retrieves every configuration regardless of merchant or
	// active flag. Used by the credential check job.
	GetAll(ctx context.Context) ([]*carrier.Config, error)
}
