package errs_test

import (
	"errors"
	"testing"

	"clinicalorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderNumber", "ORD-123")

		assert.Equal(t, "orderNumber", err.ParamName)
		assert.Equal(t, "ORD-123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: ORD-123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderNumber", "ORD-123", cause)

		assert.Equal(t, "orderNumber", err.ParamName)
		assert.Equal(t, "ORD-123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderNumber, ID is: ORD-123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("voidReason")

		assert.Equal(t, "voidReason", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: voidReason", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("voidReason", cause)

		assert.Equal(t, "voidReason", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: voidReason (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("previousOrder")

		assert.Equal(t, "previousOrder", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: previousOrder", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("previousOrder", cause)

		assert.Equal(t, "previousOrder", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: previousOrder (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("traversalDepth", 1001, 0, 1000)

	assert.Equal(t, "traversalDepth", err.ParamName)
	assert.Equal(t, 1001, err.Value)
	assert.Equal(t, 0, err.Min)
	assert.Equal(t, 1000, err.Max)
	require.NoError(t, err.Cause)
	assert.Equal(t, "value is invalid: 1001 is traversalDepth, min value is 0, max value is 1000", err.Error())
	assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
}

func TestIllegalTransitionError(t *testing.T) {
	t.Run("NewIllegalTransitionError", func(t *testing.T) {
		err := errs.NewIllegalTransitionError("cannot revise a stopped order")

		assert.Equal(t, "cannot revise a stopped order", err.Rule)
		require.NoError(t, err.Cause)
		assert.Equal(t, "illegal transition: cannot revise a stopped order", err.Error())
		assert.Equal(t, errs.ErrIllegalTransition, err.Unwrap())
	})

	t.Run("NewIllegalTransitionErrorWithCause", func(t *testing.T) {
		cause := errors.New("order stopped at 2024-01-05")
		err := errs.NewIllegalTransitionErrorWithCause("cannot revise a stopped order", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"illegal transition: cannot revise a stopped order (cause: order stopped at 2024-01-05)",
			err.Error())
	})
}

func TestUnresolvedDefaultError(t *testing.T) {
	err := errs.NewUnresolvedDefaultError("orderType")

	assert.Equal(t, "orderType", err.ParamName)
	assert.Equal(t, "unresolved default: orderType", err.Error())
	assert.Equal(t, errs.ErrUnresolvedDefault, err.Unwrap())
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("previousOrder", "ORD-7")

	assert.Equal(t, "previousOrder", err.ParamName)
	assert.Equal(t, "ORD-7", err.ID)
	assert.Equal(t, "conflict: previousOrder is no longer current, ID is: ORD-7", err.Error())
	assert.Equal(t, errs.ErrConflict, err.Unwrap())
}

func TestDataIntegrityError(t *testing.T) {
	err := errs.NewDataIntegrityError("cycle detected in previous-order chain")

	assert.Equal(t, "cycle detected in previous-order chain", err.Detail)
	assert.Equal(t, "data integrity violation: cycle detected in previous-order chain", err.Error())
	assert.Equal(t, errs.ErrDataIntegrity, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrIllegalTransition)
		require.Error(t, errs.ErrUnresolvedDefault)
		require.Error(t, errs.ErrConflict)
		require.Error(t, errs.ErrDataIntegrity)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "illegal transition", errs.ErrIllegalTransition.Error())
		assert.Equal(t, "unresolved default", errs.ErrUnresolvedDefault.Error())
		assert.Equal(t, "conflict", errs.ErrConflict.Error())
		assert.Equal(t, "data integrity violation", errs.ErrDataIntegrity.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("order", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("concept"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsRequiredError("patient"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewIllegalTransitionError("rule"), errs.ErrIllegalTransition)
		require.ErrorIs(t, errs.NewUnresolvedDefaultError("careSetting"), errs.ErrUnresolvedDefault)
		require.ErrorIs(t, errs.NewConflictError("previousOrder", "1"), errs.ErrConflict)
		require.ErrorIs(t, errs.NewDataIntegrityError("cycle"), errs.ErrDataIntegrity)
	})
}
