// Package carrierconfigrepo provides data transfer objects and mapping
// functions for carrier configuration persistence. Credential bundles are
// stored as a JSON column and decoded back into their typed form on load.
package carrierconfigrepo

import (
	"time"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CarrierConfigDTO represents the database structure for persisting carrier
// configurations. A merchant has at most one configuration per carrier,
// enforced by the unique (merchant_id, carrier_type) index.
type CarrierConfigDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantID  uuid.UUID `gorm:"type:uuid;index:idx_configs_merchant_carrier,unique"`
	CarrierType string    `gorm:"index:idx_configs_merchant_carrier,unique"`
	Credentials []byte    `gorm:"type:jsonb"`
	Active      bool
	Sandbox     bool
	Priority    int

	LastValidatedAt  *time.Time
	LastValidationOK bool `gorm:"column:last_validation_ok"`
}

// TableName specifies the database table name for carrier configurations.
func (CarrierConfigDTO) TableName() string {
	return "carrier_configs"
}

// fromDomain converts a configuration aggregate to its database
// representation, serializing the typed credential bundle.
func fromDomain(config *carrier.Config) (CarrierConfigDTO, error) {
	raw, err := carrier.EncodeCredentials(config.Credentials())
	if err != nil {
		return CarrierConfigDTO{}, err
	}

	return CarrierConfigDTO{
		ID:               config.ID().Bytes(),
		MerchantID:       config.MerchantID().Bytes(),
		CarrierType:      config.CarrierType().String(),
		Credentials:      raw,
		Active:           config.IsActive(),
		Sandbox:          config.IsSandbox(),
		Priority:         config.Priority(),
		LastValidatedAt:  config.LastValidatedAt(),
		LastValidationOK: config.LastValidationOK(),
	}, nil
}

// toDomain converts a database DTO to a configuration aggregate,
// decoding the credential payload into its carrier-specific type.
func toDomain(dto CarrierConfigDTO) (*carrier.Config, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	carrierType, err := carrier.TypeFromString(dto.CarrierType)
	if err != nil {
		return nil, err
	}

	credentials, err := carrier.ParseCredentials(carrierType, dto.Credentials)
	if err != nil {
		return nil, err
	}

	return carrier.RestoreConfig(
		id,
		merchantID,
		credentials,
		dto.Active,
		dto.Sandbox,
		dto.Priority,
		dto.LastValidatedAt,
		dto.LastValidationOK,
	)
}
