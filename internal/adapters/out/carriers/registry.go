// Package carriers exposes the registry that turns a stored carrier
// configuration into a live adapter. The registry is built once at process
// start with every integration registered explicitly; there is no runtime
// mutation and no ambient singleton.
package carriers

import (
	"net/http"

	"dispatch/internal/adapters/out/carriers/navex"
	"dispatch/internal/adapters/out/carriers/simulated"
	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"go.uber.org/zap"
)

// factory builds an adapter from a typed credential bundle.
type factory func(creds carrier.Credentials) (ports.CarrierAdapter, error)

// Registry resolves carrier configurations to adapters.
type Registry struct {
	factories map[carrier.Type]factory
}

// NewRegistry builds the registry with every supported integration. The
// simulated carrier shares one progression store across configurations so a
// demo shipment keeps its tracking state no matter which config polled it.
func NewRegistry(client *http.Client, directory *geo.Directory, log *zap.Logger) *Registry {
	progression := simulated.NewThreeStepProgression()
	simulatedAdapter := simulated.NewAdapter(carrier.SimulatedCredentials{}, directory, progression)

	return &Registry{
		factories: map[carrier.Type]factory{
			carrier.Navex: func(creds carrier.Credentials) (ports.CarrierAdapter, error) {
				typed, ok := creds.(carrier.NavexCredentials)
				if !ok {
					return nil, errs.NewConfigurationError("credentials are not navex credentials")
				}
				return navex.NewAdapter(typed, client, directory, log)
			},
			carrier.Simulated: func(creds carrier.Credentials) (ports.CarrierAdapter, error) {
				if _, ok := creds.(carrier.SimulatedCredentials); !ok {
					return nil, errs.NewConfigurationError("credentials are not simulated credentials")
				}
				return simulatedAdapter, nil
			},
		},
	}
}

// AdapterFor returns a live adapter for the configuration. A carrier type
// without a registered integration is a configuration error, not a panic.
func (r *Registry) AdapterFor(config *carrier.Config) (ports.CarrierAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	build, ok := r.factories[config.CarrierType()]
	if !ok {
		return nil, errs.NewConfigurationError("no integration registered for carrier " + config.CarrierType().String())
	}
	return build(config.Credentials())
}

// QuoterFor returns the rate quoter behind the configuration, or false when
// the integration cannot price without creating.
func (r *Registry) QuoterFor(config *carrier.Config) (ports.RateQuoter, bool, error) {
	adapter, err := r.AdapterFor(config)
	if err != nil {
		return nil, false, err
	}
	quoter, ok := adapter.(ports.RateQuoter)
	return quoter, ok, nil
}
