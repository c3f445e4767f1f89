// Package errs provides standardized error types for the dispatch core.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Validation errors cover the common domain scenarios:
//   - ValueIsRequiredError: for when a required value is missing
//   - ValueIsInvalidError: for when a value is invalid
//   - ValueIsOutOfRangeError: for when a numeric value is outside its bounds
//   - ObjectNotFoundError: for when an object cannot be found
//
// Carrier-facing operations use a dedicated taxonomy:
//   - ConfigurationError: no active carrier or missing credentials; surfaced
//     immediately, never retried internally
//   - TransportError: timeout or connection failure reaching a vendor;
//     reported with the vendor name, retry policy belongs to the caller
//   - VendorRejectionError: the vendor explicitly rejected the request; its
//     message is preserved verbatim and never retried automatically
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
