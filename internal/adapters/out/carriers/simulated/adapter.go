// Package simulated implements the carrier contract without a network
// dependency. It exists so environments lacking vendor credentials can
// exercise routing, synchronization and the merchant surface end to end.
// Nothing here mimics real vendor polling semantics; the tracking
// progression is a demo device and is explicitly pluggable so it can never
// be confused with the real-vendor path.
package simulated

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

const vendorName = "simulated"

// Cost rule constants, in the merchant currency. Remote destinations carry
// a surcharge so the cheapest strategy has something realistic to compare.
const (
	baseCost        = 7.0
	costPerKg       = 0.8
	remoteSurcharge = 3.5
)

// Progression decides the next raw status a tracked shipment reports.
// It is a strategy interface precisely because the default implementation
// is demo convenience, not a contract.
type Progression interface {
	// Next returns the raw status to report for the tracking id, given
	// the raw status reported last time (empty on the first poll).
	Next(externalID string) string
}

// ThreeStepProgression advances every shipment through a fixed
// pre-transit, in-transit, delivered sequence, one step per poll. State is
// held in memory per tracking id and lost on restart, which is acceptable
// for a demo carrier.
type ThreeStepProgression struct {
	mu   sync.Mutex
	last map[string]string
}

// NewThreeStepProgression creates an empty progression store.
func NewThreeStepProgression() *ThreeStepProgression {
	return &ThreeStepProgression{last: make(map[string]string)}
}

// Next implements Progression.
func (p *ThreeStepProgression) Next(externalID string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var next string
	switch p.last[externalID] {
	case "in_transit":
		next = "delivered"
	case "delivered":
		next = "delivered"
	default:
		// Any pre-transit state moves to in_transit.
		next = "in_transit"
	}

	p.last[externalID] = next
	return next
}

// Adapter is the simulated carrier. It satisfies the same contract as the
// real integrations, returns synthetic tracking identifiers and
// rule-bounded cost estimates, and never touches the network.
type Adapter struct {
	creds       carrier.SimulatedCredentials
	directory   *geo.Directory
	progression Progression

	mu        sync.Mutex
	cancelled map[string]bool
}

// NewAdapter creates a simulated adapter. The progression is injected so
// tests and demos can control pacing.
func NewAdapter(
	creds carrier.SimulatedCredentials,
	directory *geo.Directory,
	progression Progression,
) *Adapter {
	return &Adapter{
		creds:       creds,
		directory:   directory,
		progression: progression,
		cancelled:   make(map[string]bool),
	}
}

// CreateShipment accepts every valid order and assigns a synthetic
// tracking identifier.
func (a *Adapter) CreateShipment(_ context.Context, aggregate *order.Order) ports.ShipmentResult {
	if err := aggregate.Validate(); err != nil {
		return ports.ShipmentResult{Err: err}
	}

	externalID := "SIM-" + uuid.NewString()[:8]
	cost := a.estimateCost(aggregate)

	return ports.ShipmentResult{
		Success:            true,
		ExternalTrackingID: externalID,
		LabelRef:           fmt.Sprintf("simulated://labels/%s.pdf", externalID),
		CostEstimate:       &cost,
	}
}

// GetTrackingStatus advances the progression one step and reports the
// resulting raw status.
func (a *Adapter) GetTrackingStatus(_ context.Context, externalID string) (ports.TrackingUpdate, error) {
	a.mu.Lock()
	cancelled := a.cancelled[externalID]
	a.mu.Unlock()
	if cancelled {
		return ports.TrackingUpdate{RawStatus: "cancelled", OccurredAt: time.Now()}, nil
	}

	return ports.TrackingUpdate{
		RawStatus:  a.progression.Next(externalID),
		Location:   "simulated hub",
		OccurredAt: time.Now(),
	}, nil
}

// CancelShipment marks the shipment cancelled unless the progression has
// already delivered it, mirroring how real vendors refuse late cancels.
func (a *Adapter) CancelShipment(_ context.Context, externalID string) error {
	if p, ok := a.progression.(*ThreeStepProgression); ok {
		p.mu.Lock()
		delivered := p.last[externalID] == "delivered"
		p.mu.Unlock()
		if delivered {
			return errs.NewVendorRejectionError(vendorName, "shipment already delivered")
		}
	}

	a.mu.Lock()
	a.cancelled[externalID] = true
	a.mu.Unlock()
	return nil
}

// FetchLabel renders a plain-text stand-in for a label document.
func (a *Adapter) FetchLabel(_ context.Context, externalID string) ([]byte, error) {
	return []byte(fmt.Sprintf("SIMULATED LABEL\ncarrier: %s\ntracking: %s\n", a.creds.Label, externalID)), nil
}

// CheckCredentials always succeeds; the simulated carrier needs no secrets.
func (a *Adapter) CheckCredentials(_ context.Context) error {
	return nil
}

// QuoteRate prices the shipment with the same rules CreateShipment uses.
func (a *Adapter) QuoteRate(_ context.Context, aggregate *order.Order) (float64, error) {
	if err := aggregate.Validate(); err != nil {
		return 0, err
	}
	return a.estimateCost(aggregate), nil
}

func (a *Adapter) estimateCost(aggregate *order.Order) float64 {
	cost := baseCost + costPerKg*aggregate.WeightKg()
	if a.directory.TierOfName(aggregate.DestinationArea()) == geo.TierRemote {
		cost += remoteSurcharge
	}
	return cost
}
