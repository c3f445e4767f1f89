package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
)

// ShipmentResult is the outcome of a shipment creation call. Adapters never
// return a Go error from CreateShipment; every failure mode is folded into
// the result so the router can try the next candidate without unwinding.
type ShipmentResult struct {
	// Success reports whether the vendor accepted the shipment.
	Success bool

	// ExternalTrackingID is the vendor-assigned tracking identifier.
	// Empty when Success is false.
	ExternalTrackingID string

	// LabelRef is a reference to the shipping label the vendor issued,
	// when the vendor issues one.
	LabelRef string

	// CostEstimate is the vendor's quoted cost in the merchant currency,
	// nil when the vendor does not quote on creation.
	CostEstimate *float64

	// Err carries the typed failure when Success is false: a
	// TransportError, a VendorRejectionError, or a ConfigurationError.
	Err error
}

// TrackingUpdate is one raw status observation returned by a carrier.
// Normalization to the master taxonomy happens in the core, not here.
type TrackingUpdate struct {
	// RawStatus is the vendor's status string verbatim.
	RawStatus string

	// Location is the free-text location the vendor reported, if any.
	Location string

	// OccurredAt is the vendor's timestamp for the observation, or the
	// poll time when the vendor does not report one.
	OccurredAt time.Time
}

// CarrierAdapter is the uniform contract every concrete carrier integration
// implements. One adapter instance is bound to one merchant's credentials.
//
// All methods accept a context for cancellation. CreateShipment reports
// failures through ShipmentResult; the remaining methods return typed errors
// from the errs package (TransportError for network and protocol failures,
// VendorRejectionError when the vendor explicitly refuses,
// ConfigurationError for credential problems).
type CarrierAdapter interface {
	// CreateShipment registers the order with the vendor and returns the
	// vendor-assigned tracking identifier. It never returns a Go error;
	// see ShipmentResult.
	CreateShipment(ctx context.Context, aggregate *order.Order) ShipmentResult

	// GetTrackingStatus fetches the vendor's current raw status for an
	// external tracking identifier.
	GetTrackingStatus(ctx context.Context, externalID string) (TrackingUpdate, error)

	// CancelShipment asks the vendor to cancel the shipment. Vendors that
	// cannot cancel after pickup return a VendorRejectionError.
	CancelShipment(ctx context.Context, externalID string) error

	// FetchLabel downloads the shipping label document for a shipment.
	// The bytes are whatever format the vendor issues, usually PDF.
	FetchLabel(ctx context.Context, externalID string) ([]byte, error)

	// CheckCredentials verifies the stored credentials against the vendor
	// with a cheap call that creates nothing.
	CheckCredentials(ctx context.Context) error
}

// RateQuoter is implemented by adapters that can price a shipment without
// creating it. The cheapest routing strategy only considers carriers whose
// adapter implements this interface.
type RateQuoter interface {
	// QuoteRate returns the estimated cost of shipping the order, in the
	// merchant currency.
	QuoteRate(ctx context.Context, aggregate *order.Order) (float64, error)
}
