package carrier

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrConfigIsNotConstructed is returned when a Config instance was not created
// through NewConfig or RestoreConfig.
var ErrConfigIsNotConstructed = errors.New("Config must be created via NewConfig or RestoreConfig")

// Config is a merchant's configuration for one carrier: the typed credential
// bundle, activation flags, and the fallback priority used when no geographic
// rule applies. The routing and tracking core treats configs as read-only; the
// only mutation the core performs is stamping credential validation results.
type Config struct {
	id          kernel.UUID
	merchantID  kernel.UUID
	carrierType Type
	credentials Credentials
	active      bool
	sandbox     bool

	// priority orders active carriers for the fallback routing rule.
	// Lower values win.
	priority int

	lastValidatedAt  *time.Time
	lastValidationOK bool

	guard guard.ConstructorGuard
}

// NewConfig creates a carrier configuration for a merchant.
func NewConfig(
	id kernel.UUID,
	merchantID kernel.UUID,
	credentials Credentials,
	active bool,
	sandbox bool,
	priority int,
) (*Config, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := merchantID.Validate(); err != nil {
		return nil, err
	}
	if credentials == nil {
		return nil, errs.NewValueIsRequiredError("credentials")
	}
	if err := credentials.CarrierType().Validate(); err != nil {
		return nil, err
	}
	if priority < 0 {
		return nil, errs.NewValueIsInvalidError("priority")
	}

	return &Config{
		id:          id,
		merchantID:  merchantID,
		carrierType: credentials.CarrierType(),
		credentials: credentials,
		active:      active,
		sandbox:     sandbox,
		priority:    priority,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreConfig reconstructs a configuration from persistence, including the
// validation stamp.
func RestoreConfig(
	id kernel.UUID,
	merchantID kernel.UUID,
	credentials Credentials,
	active bool,
	sandbox bool,
	priority int,
	lastValidatedAt *time.Time,
	lastValidationOK bool,
) (*Config, error) {
	config, err := NewConfig(id, merchantID, credentials, active, sandbox, priority)
	if err != nil {
		return nil, err
	}

	config.lastValidatedAt = lastValidatedAt
	config.lastValidationOK = lastValidationOK
	return config, nil
}

// Validate ensures the Config was created through a constructor.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigIsNotConstructed
	}
	return c.guard.Validate(ErrConfigIsNotConstructed)
}

// ID returns the configuration identifier.
func (c *Config) ID() kernel.UUID {
	return c.id
}

// MerchantID returns the owning merchant.
func (c *Config) MerchantID() kernel.UUID {
	return c.merchantID
}

// CarrierType returns the vendor this configuration is for.
func (c *Config) CarrierType() Type {
	return c.carrierType
}

// Credentials returns the typed credential bundle.
func (c *Config) Credentials() Credentials {
	return c.credentials
}

// IsActive reports whether the merchant enabled this carrier.
func (c *Config) IsActive() bool {
	return c.active
}

// IsSandbox reports whether the carrier runs against the vendor's sandbox.
func (c *Config) IsSandbox() bool {
	return c.sandbox
}

// Priority returns the fallback routing priority (lower wins).
func (c *Config) Priority() int {
	return c.priority
}

// LastValidatedAt returns when credentials were last checked, if ever.
func (c *Config) LastValidatedAt() *time.Time {
	return c.lastValidatedAt
}

// LastValidationOK reports the outcome of the last credential check.
func (c *Config) LastValidationOK() bool {
	return c.lastValidationOK
}

// StampValidation records the outcome of a credential check. This is the only
// mutation the routing/tracking core performs on carrier configurations.
func (c *Config) StampValidation(ok bool, at time.Time) {
	c.lastValidationOK = ok
	c.lastValidatedAt = &at
}
