package services

import (
	"fmt"
	"math"
	"sort"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/order"
)

// NoCarrierConfigured is the justification recorded when a merchant has no
// active carrier at all. Callers surface it as a configuration error.
const NoCarrierConfigured = "no carrier configured"

// Strategy selects the routing policy Recommend applies.
type Strategy int

const (
	// StrategySmart is the default geography-first policy.
	StrategySmart Strategy = iota

	// StrategyCheapest picks the lowest quoted rate among active carriers.
	StrategyCheapest

	// StrategyFastest favors the carrier expected to move the parcel the
	// quickest for the destination tier.
	StrategyFastest

	// StrategyBalanced weighs geographic fit, price and configured
	// priority together.
	StrategyBalanced

	// StrategyPriority follows the merchant's configured priority order
	// and ignores geography entirely.
	StrategyPriority
)

// String returns the strategy's wire name.
func (s Strategy) String() string {
	switch s {
	case StrategySmart:
		return "smart"
	case StrategyCheapest:
		return "cheapest"
	case StrategyFastest:
		return "fastest"
	case StrategyBalanced:
		return "balanced"
	case StrategyPriority:
		return "priority"
	}
	return "smart"
}

// StrategyFromString parses a wire name into a Strategy. Unknown or empty
// names fall back to StrategySmart.
func StrategyFromString(s string) Strategy {
	switch s {
	case "cheapest":
		return StrategyCheapest
	case "fastest":
		return StrategyFastest
	case "balanced":
		return StrategyBalanced
	case "priority":
		return StrategyPriority
	}
	return StrategySmart
}

// Recommendation is the ephemeral outcome of a routing decision. It is
// returned to the caller and recorded on the binding as justification text;
// it is never persisted on its own.
type Recommendation struct {
	CarrierType   carrier.Type
	Confidence    float64
	Justification string
	RulesApplied  []string
	Fallback      bool
}

// IsEmpty reports whether no carrier could be recommended.
func (r Recommendation) IsEmpty() bool {
	return r.CarrierType == carrier.Unknown
}

// SmartRouter recommends a carrier for a shipment. The decision is pure:
// it depends only on the order, the merchant's active configurations, the
// strategy and the optional rate quotes passed in. Driving the chosen
// adapter and persisting the binding belong to the application layer.
type SmartRouter struct {
	directory *geo.Directory
}

// NewSmartRouter creates a SmartRouter resolving areas through the given
// directory.
func NewSmartRouter(directory *geo.Directory) SmartRouter {
	return SmartRouter{directory: directory}
}

// Recommend evaluates the routing policy for the order over the merchant's
// active configurations, in ascending priority order. Quotes carries rate
// estimates per carrier for the price-aware strategies; pass nil otherwise.
//
// The default policy, evaluated in order, each step appending to the rule
// trail:
//  1. destination in the remote tier and a remote specialist active:
//     recommend it with confidence 0.95
//  2. destination in the dense tier and a generalist active: recommend it
//     with confidence 0.90
//  3. otherwise fall back to the merchant's priority order with confidence
//     0.70 and the fallback flag set
//  4. no active carrier: empty recommendation, confidence 0, justification
//     NoCarrierConfigured
func (s SmartRouter) Recommend(
	aggregate *order.Order,
	configs []*carrier.Config,
	strategy Strategy,
	quotes map[carrier.Type]float64,
) (Recommendation, error) {
	if err := aggregate.Validate(); err != nil {
		return Recommendation{}, err
	}

	active := activeByPriority(configs)
	if len(active) == 0 {
		return Recommendation{
			Confidence:    0,
			Justification: NoCarrierConfigured,
			RulesApplied:  []string{NoCarrierConfigured},
		}, nil
	}

	switch strategy {
	case StrategyCheapest:
		return s.recommendCheapest(aggregate, active, quotes), nil
	case StrategyFastest:
		return s.recommendFastest(aggregate, active), nil
	case StrategyBalanced:
		return s.recommendBalanced(aggregate, active, quotes), nil
	case StrategyPriority:
		return s.recommendByPriority(active, nil, 0.75, false), nil
	}
	return s.recommendSmart(aggregate, active), nil
}

func (s SmartRouter) recommendSmart(aggregate *order.Order, active []*carrier.Config) Recommendation {
	destination := aggregate.DestinationArea()
	tier := s.directory.TierOfName(destination)
	trail := []string{fmt.Sprintf("destination %q is in the %s tier", destination, tier)}

	if tier == geo.TierRemote {
		for _, cfg := range active {
			if cfg.CarrierType().IsRemoteSpecialist() {
				trail = append(trail, fmt.Sprintf("%s is an active remote specialist", cfg.CarrierType()))
				return Recommendation{
					CarrierType:   cfg.CarrierType(),
					Confidence:    0.95,
					Justification: fmt.Sprintf("remote destination %q routed to specialist %s", destination, cfg.CarrierType()),
					RulesApplied:  trail,
				}
			}
		}
		trail = append(trail, "no remote specialist active")
	}

	if tier == geo.TierDense {
		for _, cfg := range active {
			if cfg.CarrierType().IsGeneralist() {
				trail = append(trail, fmt.Sprintf("%s is an active generalist", cfg.CarrierType()))
				return Recommendation{
					CarrierType:   cfg.CarrierType(),
					Confidence:    0.90,
					Justification: fmt.Sprintf("dense destination %q routed to generalist %s", destination, cfg.CarrierType()),
					RulesApplied:  trail,
				}
			}
		}
		trail = append(trail, "no generalist active")
	}

	return s.recommendByPriority(active, trail, 0.70, true)
}

func (s SmartRouter) recommendByPriority(
	active []*carrier.Config,
	trail []string,
	confidence float64,
	fallback bool,
) Recommendation {
	chosen := active[0]
	trail = append(trail, fmt.Sprintf("%s has the best configured priority (%d)", chosen.CarrierType(), chosen.Priority()))
	return Recommendation{
		CarrierType:   chosen.CarrierType(),
		Confidence:    confidence,
		Justification: fmt.Sprintf("%s chosen by configured priority", chosen.CarrierType()),
		RulesApplied:  trail,
		Fallback:      fallback,
	}
}

func (s SmartRouter) recommendCheapest(
	aggregate *order.Order,
	active []*carrier.Config,
	quotes map[carrier.Type]float64,
) Recommendation {
	var (
		best     *carrier.Config
		bestRate = math.MaxFloat64
	)
	trail := make([]string, 0, len(active)+1)

	for _, cfg := range active {
		rate, ok := quotes[cfg.CarrierType()]
		if !ok {
			trail = append(trail, fmt.Sprintf("%s has no rate quote", cfg.CarrierType()))
			continue
		}
		trail = append(trail, fmt.Sprintf("%s quoted %.3f", cfg.CarrierType(), rate))
		if rate < bestRate {
			bestRate = rate
			best = cfg
		}
	}

	if best == nil {
		trail = append(trail, "no quotes available, falling back to geography")
		rec := s.recommendSmart(aggregate, active)
		rec.RulesApplied = append(trail, rec.RulesApplied...)
		rec.Fallback = true
		return rec
	}

	return Recommendation{
		CarrierType:   best.CarrierType(),
		Confidence:    0.85,
		Justification: fmt.Sprintf("%s quoted the lowest rate (%.3f)", best.CarrierType(), bestRate),
		RulesApplied:  trail,
	}
}

func (s SmartRouter) recommendFastest(aggregate *order.Order, active []*carrier.Config) Recommendation {
	destination := aggregate.DestinationArea()
	tier := s.directory.TierOfName(destination)
	trail := []string{fmt.Sprintf("destination %q is in the %s tier", destination, tier)}

	// A remote specialist runs its own southern line haul and beats a
	// generalist's interline handoff on remote lanes. Everywhere else the
	// best-priority generalist is the fastest option a merchant has.
	if tier == geo.TierRemote {
		for _, cfg := range active {
			if cfg.CarrierType().IsRemoteSpecialist() {
				trail = append(trail, fmt.Sprintf("%s runs a direct remote line", cfg.CarrierType()))
				return Recommendation{
					CarrierType:   cfg.CarrierType(),
					Confidence:    0.85,
					Justification: fmt.Sprintf("%s is the fastest option for remote destination %q", cfg.CarrierType(), destination),
					RulesApplied:  trail,
				}
			}
		}
		trail = append(trail, "no remote specialist active")
	}

	return s.recommendByPriority(active, trail, 0.75, tier == geo.TierRemote)
}

func (s SmartRouter) recommendBalanced(
	aggregate *order.Order,
	active []*carrier.Config,
	quotes map[carrier.Type]float64,
) Recommendation {
	tier := s.directory.TierOfName(aggregate.DestinationArea())
	trail := []string{fmt.Sprintf("destination %q is in the %s tier", aggregate.DestinationArea(), tier)}

	var (
		best      *carrier.Config
		bestScore = -1.0
	)
	for _, cfg := range active {
		score := 0.0
		if tier == geo.TierRemote && cfg.CarrierType().IsRemoteSpecialist() {
			score += 0.5
		}
		if tier != geo.TierRemote && cfg.CarrierType().IsGeneralist() {
			score += 0.3
		}
		if rate, ok := quotes[cfg.CarrierType()]; ok && rate > 0 {
			score += 0.3 / rate * minQuote(quotes)
		}
		score += 0.2 / float64(cfg.Priority()+1)

		trail = append(trail, fmt.Sprintf("%s scored %.2f", cfg.CarrierType(), score))
		if score > bestScore {
			bestScore = score
			best = cfg
		}
	}

	return Recommendation{
		CarrierType:   best.CarrierType(),
		Confidence:    0.80,
		Justification: fmt.Sprintf("%s balanced geography, price and priority best", best.CarrierType()),
		RulesApplied:  trail,
	}
}

func minQuote(quotes map[carrier.Type]float64) float64 {
	minimum := math.MaxFloat64
	for _, rate := range quotes {
		if rate < minimum {
			minimum = rate
		}
	}
	return minimum
}

// activeByPriority filters out inactive configurations and sorts the rest by
// ascending priority. Ties break on carrier name for determinism.
func activeByPriority(configs []*carrier.Config) []*carrier.Config {
	active := make([]*carrier.Config, 0, len(configs))
	for _, cfg := range configs {
		if cfg != nil && cfg.IsActive() {
			active = append(active, cfg)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Priority() != active[j].Priority() {
			return active[i].Priority() < active[j].Priority()
		}
		return active[i].CarrierType().String() < active[j].CarrierType().String()
	})
	return active
}
