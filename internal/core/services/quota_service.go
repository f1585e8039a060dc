package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
)

type quotaService struct {
	BaseService
	counter portsrepo.ResourceCounter
	limits  domain.PlanLimits
}

// NewQuotaService creates a quota service enforcing limits against live counts.
func NewQuotaService(counter portsrepo.ResourceCounter, limits domain.PlanLimits) portssvc.QuotaSvc {
	if limits == nil {
		limits = domain.DefaultPlanLimits()
	}
	return &quotaService{counter: counter, limits: limits}
}

var _ portssvc.QuotaSvc = (*quotaService)(nil)

// CheckQuota counts at call time. Two concurrent creates can both pass; see DESIGN.md.
func (s *quotaService) CheckQuota(ctx context.Context, caller *domain.CallerContext, kind domain.ResourceKind) error {
	if caller == nil {
		return apperrors.ErrUnauthorized
	}
	limit := s.limits.Limit(caller.Plan, kind)
	if limit == domain.Unlimited {
		return nil
	}

	count, err := s.counter.CountResources(ctx, caller.OrganizationID, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to count resources", slog.String("organization_id", caller.OrganizationID), slog.String("kind", string(kind)))
		return fmt.Errorf("failed to check quota: %w", err)
	}
	if !domain.CanCreate(count, limit) {
		s.LogInfo(ctx, "Quota exceeded",
			slog.String("organization_id", caller.OrganizationID),
			slog.String("kind", string(kind)),
			slog.Int("current_usage", count),
			slog.Int("limit", limit))
		return apperrors.NewQuotaExceededError(string(kind), count, limit)
	}
	return nil
}

func (s *quotaService) QuotaUsageFor(ctx context.Context, organizationID string, plan domain.Plan) ([]domain.QuotaUsage, error) {
	usage := make([]domain.QuotaUsage, 0, len(domain.ResourceKinds))
	for _, kind := range domain.ResourceKinds {
		count, err := s.counter.CountResources(ctx, organizationID, kind)
		if err != nil {
			s.LogError(ctx, err, "Failed to count resources", slog.String("organization_id", organizationID), slog.String("kind", string(kind)))
			return nil, fmt.Errorf("failed to compute quota usage: %w", err)
		}
		limit := s.limits.Limit(plan, kind)
		usage = append(usage, domain.QuotaUsage{
			Kind:         kind,
			CurrentUsage: count,
			Limit:        limit,
			CanCreate:    domain.CanCreate(count, limit),
		})
	}
	return usage, nil
}
