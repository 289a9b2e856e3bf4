package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("create: %w", NewValidationError("return_date", "must not be before departure_date"))

	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "return_date", verr.Field)
	assert.Equal(t, "create: return_date: must not be before departure_date", err.Error())
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage("list travel orders", cause)

	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "list travel orders: connection reset", err.Error())

	assert.NoError(t, Storage("noop", nil))
}

func TestNotFoundError(t *testing.T) {
	orderNotFound := NewNotFoundError("travel order")
	err := fmt.Errorf("get: %w", orderNotFound)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, orderNotFound))
	assert.False(t, errors.Is(err, NewNotFoundError("travel order")))
	assert.Equal(t, "travel order not found", orderNotFound.Error())
}
