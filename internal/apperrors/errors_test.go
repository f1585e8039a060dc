package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unauthorized", err: apperrors.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "forbidden", err: fmt.Errorf("%w: role user", apperrors.ErrForbidden), want: http.StatusForbidden},
		{name: "quota", err: apperrors.NewQuotaExceededError("crew", 3, 3), want: http.StatusForbidden},
		{name: "subscription", err: apperrors.ErrSubscriptionInactive, want: http.StatusPaymentRequired},
		{name: "not found", err: apperrors.NewNotFoundError("crew"), want: http.StatusNotFound},
		{name: "transition", err: fmt.Errorf("%w: approved", apperrors.ErrInvalidTransition), want: http.StatusConflict},
		{name: "validation", err: apperrors.NewValidationFailedError("reason"), want: http.StatusBadRequest},
		{name: "bad token", err: apperrors.NewAppError(400, "invalid nextToken", errors.New("base64")), want: http.StatusBadRequest},
		{name: "infrastructure", err: apperrors.NewAppError(500, "query failed", errors.New("eof")), want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.StatusCode(tt.err))
		})
	}
}

func TestQuotaExceededError(t *testing.T) {
	err := fmt.Errorf("create crew: %w", apperrors.NewQuotaExceededError("crew", 3, 3))

	assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
	var quotaErr *apperrors.QuotaExceededError
	assert.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, 3, quotaErr.CurrentUsage)
	assert.Equal(t, 3, quotaErr.Limit)
}
