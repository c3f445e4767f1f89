package order

import (
	"time"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/status"
)

// Event source tags recorded on the tracking timeline.
const (
	// SourceSync marks events appended by the tracking synchronizer.
	SourceSync = "sync"

	// SourceCancel marks the event appended when a merchant cancels a
	// shipment through the dispatch core.
	SourceCancel = "cancel"
)

// TrackingEvent is one immutable entry in an order's tracking timeline.
// Events are created exclusively through the aggregate's transition methods,
// never mutated, and never deleted.
type TrackingEvent struct {
	seq         int
	status      status.MasterStatus
	rawStatus   string
	carrierType carrier.Type
	location    string
	occurredAt  time.Time
	source      string
}

// RestoreTrackingEvent reconstructs an event from persistence.
func RestoreTrackingEvent(
	seq int,
	masterStatus status.MasterStatus,
	rawStatus string,
	carrierType carrier.Type,
	location string,
	occurredAt time.Time,
	source string,
) TrackingEvent {
	return TrackingEvent{
		seq:         seq,
		status:      masterStatus,
		rawStatus:   rawStatus,
		carrierType: carrierType,
		location:    location,
		occurredAt:  occurredAt,
		source:      source,
	}
}

// Seq returns the 1-based position of the event in the timeline.
func (e TrackingEvent) Seq() int {
	return e.seq
}

// Status returns the normalized status the order entered.
func (e TrackingEvent) Status() status.MasterStatus {
	return e.status
}

// RawStatus returns the vendor's status string verbatim.
func (e TrackingEvent) RawStatus() string {
	return e.rawStatus
}

// CarrierType returns the carrier that reported the transition.
func (e TrackingEvent) CarrierType() carrier.Type {
	return e.carrierType
}

// Location returns the free-text location the vendor reported, if any.
func (e TrackingEvent) Location() string {
	return e.location
}

// OccurredAt returns when the transition was detected.
func (e TrackingEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// Source returns the tag identifying what appended the event.
func (e TrackingEvent) Source() string {
	return e.source
}
