// Package services provides domain services that orchestrate business
// decisions across multiple domain entities in the dispatch system. It
// implements logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - SmartRouter: a domain service that recommends a carrier for a shipment
//     using geography-first rules with an explainable justification trail
//
// Domain services stay pure: they receive every fact they need as arguments
// and never touch adapters or persistence themselves.
package services
