// Package guard implements a defensive pattern that ensures value objects and
// entities are only created through their designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by Validate when a
// nil validation error is passed. This ensures validation always fails with a
// meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed domain objects from zero
// values. Embedding a ConstructorGuard in a struct and setting it via
// NewConstructorGuard inside the constructor lets Validate detect structs that
// bypassed construction.
//
// Example usage:
//
//	var ErrShipmentNotConstructed = errors.New("Shipment must be created via NewShipment")
//
//	type Shipment struct {
//	    recipient string
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewShipment(recipient string) (Shipment, error) {
//	    if recipient == "" {
//	        return Shipment{}, errors.New("recipient is required")
//	    }
//	    return Shipment{recipient: recipient, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (s Shipment) Validate() error {
//	    return s.guard.Validate(ErrShipmentNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the constructor of domain objects.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for properly constructed objects. For zero-value
// guards it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
