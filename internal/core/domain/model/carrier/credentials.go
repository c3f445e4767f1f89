package carrier

import (
	"encoding/json"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Credentials is the typed credential bundle a vendor integration needs.
// Each carrier type owns its own struct; the open string-keyed dictionaries
// of earlier iterations are gone.
type Credentials interface {
	// CarrierType names the vendor the bundle belongs to.
	CarrierType() Type

	// Validate checks that the bundle is complete enough to reach the vendor.
	Validate() error
}

// NavexCredentials authenticates against the Navex HTTP API.
type NavexCredentials struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
}

// CarrierType implements Credentials.
func (c NavexCredentials) CarrierType() Type {
	return Navex
}

// Validate implements Credentials.
func (c NavexCredentials) Validate() error {
	if c.APIKey == "" {
		return errs.NewValueIsRequiredError("navex api key")
	}
	if c.BaseURL == "" {
		return errs.NewValueIsRequiredError("navex base url")
	}
	return nil
}

// SimulatedCredentials configures the simulated integration. The bundle is
// intentionally empty besides an optional label; the simulated carrier needs
// no secrets.
type SimulatedCredentials struct {
	Label string `json:"label"`
}

// CarrierType implements Credentials.
func (c SimulatedCredentials) CarrierType() Type {
	return Simulated
}

// Validate implements Credentials.
func (c SimulatedCredentials) Validate() error {
	return nil
}

// ParseCredentials decodes a stored credential payload into the typed bundle
// for the given carrier.
func ParseCredentials(t Type, raw []byte) (Credentials, error) {
	switch t {
	case Navex:
		var creds NavexCredentials
		if err := json.Unmarshal(raw, &creds); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("navex credentials", err)
		}
		return creds, nil

	case Simulated:
		var creds SimulatedCredentials
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &creds); err != nil {
				return nil, errs.NewValueIsInvalidErrorWithCause("simulated credentials", err)
			}
		}
		return creds, nil

	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("carrier type",
			fmt.Errorf("%d has no credential format", t))
	}
}

// EncodeCredentials serializes a typed bundle for storage.
func EncodeCredentials(c Credentials) ([]byte, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("credentials", err)
	}
	return raw, nil
}
