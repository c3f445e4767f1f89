package carrier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Type identifies a delivery vendor integration.
// It is a closed enumeration: adding a vendor means adding a constant here and
// a registry entry in the carriers adapter package, never editing call sites.
type Type int

const (
	// Unknown represents an invalid or undefined carrier type.
	Unknown Type = iota

	// Navex is the real vendor integration. Navex is a remote-coverage
	// specialist with full coverage of the southern governorates.
	Navex

	// Simulated is the in-process integration used in environments without
	// vendor credentials. It implements the full adapter contract against
	// synthetic data.
	Simulated
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		Unknown:   "unknown",
		Navex:     "navex",
		Simulated: "simulated",
	}
}

// String returns the wire name of the carrier type.
func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return "unknown"
}

// Validate checks that the type is one of the known vendors.
func (t Type) Validate() error {
	if t != Navex && t != Simulated {
		return errs.NewValueIsInvalidErrorWithCause("carrier type",
			fmt.Errorf("%d is not a valid carrier type", t))
	}
	return nil
}

// TypeFromString parses a wire name back into a Type.
func TypeFromString(s string) (Type, error) {
	for t, name := range getTypeStrings() {
		if name == s && t != Unknown {
			return t, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("carrier type",
		fmt.Errorf("%q is not a valid carrier type", s))
}

// IsRemoteSpecialist reports whether the carrier reliably covers the remote
// southern tier. The smart routing policy prefers specialists there.
func (t Type) IsRemoteSpecialist() bool {
	return t == Navex
}

// IsGeneralist reports whether the carrier operates a dense-coverage network
// in the northern tier.
func (t Type) IsGeneralist() bool {
	return t == Simulated || t == Navex
}
