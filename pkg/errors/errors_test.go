package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"not found", New(ErrCodeBookNotFound, "x"), http.StatusNotFound},
		{"validation", ErrValidation, http.StatusUnprocessableEntity},
		{"throttle", ErrTooManyRequests, http.StatusTooManyRequests},
		{"internal", Wrap(errors.New("boom"), "x"), http.StatusInternalServerError},
		{"database", WithCode(errors.New("boom"), ErrCodeDatabaseError, "x"), http.StatusInternalServerError},
		{"unknown code", New(99999, "x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		cause := errors.New("connection refused")
		appErr := GetAppError(cause)

		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.ErrorIs(t, appErr, cause)
	})

	t.Run("透传已包装的AppError", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", ErrNotFound)
		assert.Same(t, ErrNotFound, GetAppError(wrapped))
	})
}

func TestAppError_Is(t *testing.T) {
	sentinel := New(ErrCodeBookNotFound, "Book not found.")
	other := New(ErrCodeBookNotFound, "Book not found.")

	assert.True(t, errors.Is(other, sentinel))
	assert.False(t, errors.Is(ErrNotFound, sentinel))
	assert.True(t, IsAppError(fmt.Errorf("wrap: %w", sentinel)))
	assert.Contains(t, Wrap(errors.New("db down"), "query failed").Error(), "db down")
}
