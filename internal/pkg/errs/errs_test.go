package errs_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("phone")

		assert.Equal(t, "phone", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: phone", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("phone", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: phone (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("weight", 150, 0, 120)

		assert.Equal(t, "weight", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		assert.Equal(t, "value is invalid: 150 is weight, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("recipient")

		assert.Equal(t, "recipient", err.ParamName)
		assert.Equal(t, "value is required: recipient", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("recipient", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: recipient (cause: missing required field)", err.Error())
	})
}

func TestConfigurationError(t *testing.T) {
	t.Run("NewConfigurationError", func(t *testing.T) {
		err := errs.NewConfigurationError("no carrier configured")

		assert.Equal(t, "no carrier configured", err.Reason)
		assert.Equal(t, "configuration is invalid: no carrier configured", err.Error())
		assert.Equal(t, errs.ErrConfiguration, err.Unwrap())
	})

	t.Run("NewConfigurationErrorWithCause", func(t *testing.T) {
		cause := errors.New("credentials missing")
		err := errs.NewConfigurationErrorWithCause("carrier navex is not usable", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"configuration is invalid: carrier navex is not usable (cause: credentials missing)",
			err.Error())
	})
}

func TestTransportError(t *testing.T) {
	cause := errors.New("context deadline exceeded")
	err := errs.NewTransportError("navex", cause)

	assert.Equal(t, "navex", err.Vendor)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, "transport failed: vendor is: navex (cause: context deadline exceeded)", err.Error())
	assert.Equal(t, errs.ErrTransport, err.Unwrap())
}

func TestVendorRejectionError(t *testing.T) {
	err := errs.NewVendorRejectionError("navex", "governorate id is unknown")

	assert.Equal(t, "navex", err.Vendor)
	assert.Equal(t, "governorate id is unknown", err.Message)
	assert.Equal(t, "vendor rejected request: navex: governorate id is unknown", err.Error())
	assert.Equal(t, errs.ErrVendorRejection, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "configuration is invalid", errs.ErrConfiguration.Error())
		assert.Equal(t, "transport failed", errs.ErrTransport.Error())
		assert.Equal(t, "vendor rejected request", errs.ErrVendorRejection.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("phone"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("weight", 150, 0, 120), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("recipient"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewConfigurationError("no carrier configured"), errs.ErrConfiguration)
		require.ErrorIs(t, errs.NewTransportError("navex", errors.New("timeout")), errs.ErrTransport)
		require.ErrorIs(t, errs.NewVendorRejectionError("navex", "bad payload"), errs.ErrVendorRejection)
	})
}
