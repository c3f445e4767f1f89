// Package status defines the closed internal status taxonomy every vendor
// vocabulary is normalized into, together with the normalization engine.
package status

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// MasterStatus is the closed internal shipment status taxonomy.
// Every raw vendor status, regardless of language or casing, maps onto one of
// these ten values. Delivered, Returned and Cancelled are terminal.
//
// The normal progression is:
//
//	Pending → Preparing → ReadyToShip → PickedUp → InTransit → OutForDelivery → Delivered
//
// with Failed, Returned and Cancelled reachable as terminal or near-terminal
// branches from most non-terminal states.
type MasterStatus int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized MasterStatus values.
	Unknown MasterStatus = iota

	// Pending is the initial status: the shipment exists but nothing has
	// been handed to a carrier yet. It is also the safe default when a raw
	// vendor status cannot be recognized.
	Pending

	// Preparing indicates the merchant is preparing the parcel.
	Preparing

	// ReadyToShip indicates the parcel awaits carrier pickup.
	ReadyToShip

	// PickedUp indicates the carrier collected the parcel.
	PickedUp

	// InTransit indicates the parcel is moving through the carrier network.
	InTransit

	// OutForDelivery indicates the parcel is on the last-mile vehicle.
	OutForDelivery

	// Delivered is terminal: the recipient received the parcel.
	Delivered

	// Failed indicates a delivery attempt failed. Not terminal; carriers
	// usually retry or return.
	Failed

	// Returned is terminal: the parcel went back to the sender.
	Returned

	// Cancelled is terminal: the shipment was cancelled before completion.
	Cancelled
)

// Metadata carries the display and ordering information attached to a status.
type Metadata struct {
	// LabelEN and LabelFR are the display labels.
	LabelEN string
	LabelFR string

	// Order positions the status on a timeline view.
	Order int

	// IsFinal marks terminal statuses: once reached, synchronization stops.
	IsFinal bool
}

func getStatusStrings() map[MasterStatus]string {
	return map[MasterStatus]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Preparing:      "preparing",
		ReadyToShip:    "ready-to-ship",
		PickedUp:       "picked-up",
		InTransit:      "in-transit",
		OutForDelivery: "out-for-delivery",
		Delivered:      "delivered",
		Failed:         "failed",
		Returned:       "returned",
		Cancelled:      "cancelled",
	}
}

func getMetadata() map[MasterStatus]Metadata {
	return map[MasterStatus]Metadata{
		Pending:        {LabelEN: "Pending", LabelFR: "En attente", Order: 1},
		Preparing:      {LabelEN: "Preparing", LabelFR: "En préparation", Order: 2},
		ReadyToShip:    {LabelEN: "Ready to ship", LabelFR: "Prêt à expédier", Order: 3},
		PickedUp:       {LabelEN: "Picked up", LabelFR: "Ramassé", Order: 4},
		InTransit:      {LabelEN: "In transit", LabelFR: "En transit", Order: 5},
		OutForDelivery: {LabelEN: "Out for delivery", LabelFR: "En cours de livraison", Order: 6},
		Delivered:      {LabelEN: "Delivered", LabelFR: "Livré", Order: 7, IsFinal: true},
		Failed:         {LabelEN: "Delivery failed", LabelFR: "Échec de livraison", Order: 8},
		Returned:       {LabelEN: "Returned", LabelFR: "Retourné", Order: 9, IsFinal: true},
		Cancelled:      {LabelEN: "Cancelled", LabelFR: "Annulé", Order: 10, IsFinal: true},
	}
}

// String returns the wire name of the status, e.g. "out-for-delivery".
func (s MasterStatus) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the ten taxonomy values.
func (s MasterStatus) Validate() error {
	if _, ok := getMetadata()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Meta returns the display label, timeline order and terminality of a status.
// Unknown statuses return a zero Metadata.
func (s MasterStatus) Meta() Metadata {
	return getMetadata()[s]
}

// IsFinal reports whether the status is terminal. Terminal shipments are
// never synchronized again.
func (s MasterStatus) IsFinal() bool {
	return getMetadata()[s].IsFinal
}

// IsPreTransit reports whether the parcel has not yet entered the carrier
// network.
func (s MasterStatus) IsPreTransit() bool {
	return s == Pending || s == Preparing || s == ReadyToShip || s == PickedUp
}

// FromString parses a wire name back into a MasterStatus.
func FromString(s string) (MasterStatus, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}
