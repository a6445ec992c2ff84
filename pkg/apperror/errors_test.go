package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Sale")
	assert.Equal(t, 404, err.Code)
	assert.Equal(t, "Sale not found", err.Message)
}

func TestNewConflictError(t *testing.T) {
	err := NewConflictError("Sale was modified by another request")
	assert.Equal(t, 409, err.Code)
}

func TestGetAppError(t *testing.T) {
	appErr := NewBadRequestError("bad input")
	assert.Equal(t, appErr, GetAppError(appErr))

	// Wrapped AppErrors unwrap cleanly.
	wrapped := fmt.Errorf("handler: %w", appErr)
	assert.Equal(t, appErr, GetAppError(wrapped))

	// Plain errors map to 500.
	plain := errors.New("boom")
	got := GetAppError(plain)
	assert.Equal(t, 500, got.Code)
	assert.Equal(t, "boom", got.Message)
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(ErrNotFound))
	assert.False(t, IsAppError(errors.New("boom")))
}
