package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		assert.Equal(t, KindNotFound, KindOf(NotFound("patient not found")))
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("booking: %w", Conflict("slot already booked"))
		assert.Equal(t, KindConflict, KindOf(err))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, Kind(""), KindOf(errors.New("boom")))
	})
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusBadRequest},
		{KindOperational, http.StatusInternalServerError},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{Kind(""), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.kind))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &AppError{Kind: KindOperational, Message: "storage unavailable", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "storage unavailable: connection refused", err.Error())
}
