package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized indicates a missing or invalid caller context.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller's role lacks the capability for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrQuotaExceeded indicates the organization's plan ceiling for a resource kind was reached.
var ErrQuotaExceeded = errors.New("quota exceeded")

// ErrSubscriptionInactive indicates a mutating operation on an organization whose
// subscription is neither active nor trialing.
var ErrSubscriptionInactive = errors.New("subscription inactive")

// ErrInvalidTransition indicates an approval workflow state mismatch.
var ErrInvalidTransition = errors.New("invalid status transition")

// AppError wraps an infrastructure failure with an HTTP-ish code and a message safe to log.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error wrapping ErrNotFound with context.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewConflictError returns an error wrapping ErrConflict with context.
func NewConflictError(message string) error {
	return fmt.Errorf("%w: %s", ErrConflict, message)
}

// NewValidationFailedError returns an error wrapping ErrValidation with context.
func NewValidationFailedError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// QuotaExceededError carries the usage numbers of a rejected create.
type QuotaExceededError struct {
	Kind         string
	CurrentUsage int
	Limit        int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s: %s usage %d of %d", ErrQuotaExceeded, e.Kind, e.CurrentUsage, e.Limit)
}

// Is lets errors.Is(err, ErrQuotaExceeded) match.
func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

// NewQuotaExceededError builds a QuotaExceededError.
func NewQuotaExceededError(kind string, currentUsage, limit int) *QuotaExceededError {
	return &QuotaExceededError{Kind: kind, CurrentUsage: currentUsage, Limit: limit}
}

// StatusCode maps an error to the HTTP status it should surface as.
func StatusCode(err error) int {
	var appErr *AppError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrSubscriptionInactive):
		return http.StatusPaymentRequired
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrQuotaExceeded):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 600:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}
