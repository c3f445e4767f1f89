// Package order contains the order aggregate: the shipment details a merchant
// captured, the binding to the carrier that took the shipment, and the
// append-only tracking timeline.
//
// The aggregate enforces the dispatch invariants:
//   - at most one active binding per order; a binding is only created after a
//     successful carrier call and is never deleted, only transitioned
//   - the external tracking identifier is immutable once set
//   - tracking events are append-only and strictly ordered; the current
//     status is always the most recent event's normalized status
//   - terminal statuses (delivered, returned, cancelled) end the lifecycle;
//     no further transitions are accepted
package order
