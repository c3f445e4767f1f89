// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ConfigRepoFactory provides access to the carrier configuration
	// repository within a transaction.
	ConfigRepoFactory interface {
		CarrierConfigRepository() ports.CarrierConfigRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across order and carrier configuration
	// aggregates. Used by routing commands that read configurations and
	// write bindings in one transaction.
	UoW interface {
		TxManager
		OrderRepoFactory
		ConfigRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// AdapterRegistry resolves a stored carrier configuration to a live adapter.
// Implemented by the carriers registry; abstracted here so handlers can be
// tested with mocks.
type AdapterRegistry interface {
	AdapterFor(config *carrier.Config) (ports.CarrierAdapter, error)
	QuoterFor(config *carrier.Config) (ports.RateQuoter, bool, error)
}
