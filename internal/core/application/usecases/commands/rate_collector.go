package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"go.uber.org/zap"
)

// rateTTL bounds how long a vendor quote is reused before repricing.
const rateTTL = 15 * time.Minute

// RateCollector gathers rate quotes for the price-aware routing strategies.
// Quotes are memoized in the cache; a carrier that cannot quote, or whose
// quote call fails, is simply absent from the result so routing degrades
// instead of failing.
type RateCollector struct {
	registry AdapterRegistry
	cache    ports.Cache
	log      *zap.Logger
}

// NewRateCollector creates a collector. The cache may be nil; quotes are
// then fetched fresh on every call.
func NewRateCollector(registry AdapterRegistry, cache ports.Cache, log *zap.Logger) RateCollector {
	return RateCollector{
		registry: registry,
		cache:    cache,
		log:      log,
	}
}

// Collect returns a quote per carrier able to price the order.
func (r RateCollector) Collect(
	ctx context.Context,
	aggregate *order.Order,
	configs []*carrier.Config,
) map[carrier.Type]float64 {
	quotes := make(map[carrier.Type]float64, len(configs))

	for _, config := range configs {
		if !config.IsActive() {
			continue
		}

		key := rateKey(config.CarrierType(), aggregate)
		if rate, ok := r.cached(ctx, key); ok {
			quotes[config.CarrierType()] = rate
			continue
		}

		quoter, ok, err := r.registry.QuoterFor(config)
		if err != nil || !ok {
			continue
		}

		rate, err := quoter.QuoteRate(ctx, aggregate)
		if err != nil {
			r.log.Warn("rate quote failed",
				zap.String("carrier", config.CarrierType().String()),
				zap.Error(err),
			)
			continue
		}

		quotes[config.CarrierType()] = rate
		r.store(ctx, key, rate)
	}

	return quotes
}

func (r RateCollector) cached(ctx context.Context, key string) (float64, bool) {
	if r.cache == nil {
		return 0, false
	}

	raw, err := r.cache.Get(ctx, key)
	if err != nil {
		return 0, false
	}

	rate, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, false
	}
	return rate, true
}

func (r RateCollector) store(ctx context.Context, key string, rate float64) {
	if r.cache == nil {
		return
	}

	value := strconv.FormatFloat(rate, 'f', 3, 64)
	if err := r.cache.Set(ctx, key, []byte(value), rateTTL); err != nil {
		r.log.Warn("rate cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func rateKey(carrierType carrier.Type, aggregate *order.Order) string {
	return fmt.Sprintf("rates:%s:%s:%.1f:%.3f",
		carrierType, aggregate.DestinationArea(), aggregate.WeightKg(), aggregate.CODAmount())
}
