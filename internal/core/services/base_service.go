package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/SscSPs/crew_planner/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Authorize applies the subscription gate to mutating operations and then the role matrix.
func (s *BaseService) Authorize(ctx context.Context, caller *domain.CallerContext, capability domain.Capability, mutating bool) error {
	if err := authorizeCaller(caller, capability, mutating); err != nil {
		if caller != nil {
			s.LogDebug(ctx, "Caller not authorized",
				slog.String("user_id", caller.UserID),
				slog.String("organization_id", caller.OrganizationID),
				slog.String("capability", string(capability)),
				slog.String("reason", err.Error()))
		}
		return err
	}
	return nil
}

func authorizeCaller(caller *domain.CallerContext, capability domain.Capability, mutating bool) error {
	if caller == nil || caller.UserID == "" || caller.OrganizationID == "" {
		return apperrors.ErrUnauthorized
	}
	if mutating && !caller.SubscriptionStatus.AllowsMutations() {
		return fmt.Errorf("%w: subscription is %s", apperrors.ErrSubscriptionInactive, caller.SubscriptionStatus)
	}
	if !caller.Role.Can(capability) {
		return fmt.Errorf("%w: role %s cannot %s", apperrors.ErrForbidden, caller.Role, capability)
	}
	return nil
}
