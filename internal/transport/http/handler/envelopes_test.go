package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wcontent-api/internal/domain"
)

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "User not found", publicMessage(fmt.Errorf("User not found: %w", domain.ErrNotFound)))
	assert.Equal(t, "Invalid or expired OTP", publicMessage(fmt.Errorf("Invalid or expired OTP: %w", domain.ErrInvalidOTP)))
	assert.Equal(t, "plain", publicMessage(errors.New("plain")))
}

func TestWriteError_StatusByKind(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrBadRequest, http.StatusBadRequest},
		{domain.ErrInvalidOTP, http.StatusBadRequest},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		writeError(rr, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("wrapped: %w", tc.err))
		assert.Equal(t, tc.status, rr.Code, tc.err.Error())
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	}
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHealthHandler().Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"ok"}`, rr.Body.String())
}
