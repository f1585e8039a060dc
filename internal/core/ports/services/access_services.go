package services

import (
	"context"

	"github.com/SscSPs/crew_planner/internal/core/domain"
)

// AccessSvc resolves callers and gates operations by subscription and role.
type AccessSvc interface {
	// ResolveCaller builds the caller context of userID. An empty organizationID selects the
	// user's primary membership.
	ResolveCaller(ctx context.Context, userID, organizationID string) (*domain.CallerContext, error)

	// Authorize checks the subscription gate (for mutating operations) and then the role capability.
	Authorize(ctx context.Context, caller *domain.CallerContext, capability domain.Capability, mutating bool) error
}

// QuotaSvc enforces plan ceilings on resource creation.
type QuotaSvc interface {
	// CheckQuota fails with a *apperrors.QuotaExceededError when one more resource of kind would
	// exceed the caller's plan.
	CheckQuota(ctx context.Context, caller *domain.CallerContext, kind domain.ResourceKind) error

	// QuotaUsageFor reports live usage against the ceilings of plan for every resource kind.
	QuotaUsageFor(ctx context.Context, organizationID string, plan domain.Plan) ([]domain.QuotaUsage, error)
}

// EventPublisher delivers schedule domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ScheduleEvent) error
}
