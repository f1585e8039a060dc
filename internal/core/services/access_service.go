package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
)

type accessService struct {
	BaseService
	orgRepo portsrepo.OrganizationRepositoryFacade
}

// NewAccessService creates the caller resolution and authorization service.
func NewAccessService(orgRepo portsrepo.OrganizationRepositoryFacade) portssvc.AccessSvc {
	return &accessService{orgRepo: orgRepo}
}

var _ portssvc.AccessSvc = (*accessService)(nil)

func (s *accessService) ResolveCaller(ctx context.Context, userID, organizationID string) (*domain.CallerContext, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	if organizationID == "" {
		memberships, err := s.orgRepo.ListMembershipsByUser(ctx, userID)
		if err != nil {
			s.LogError(ctx, err, "Failed to list memberships", slog.String("user_id", userID))
			return nil, fmt.Errorf("failed to resolve organization: %w", err)
		}
		primary, ok := domain.PrimaryMembership(userID, memberships)
		if !ok {
			return nil, fmt.Errorf("%w: user has no organization", apperrors.ErrUnauthorized)
		}
		return callerFrom(primary.Membership, primary.Organization), nil
	}

	membership, err := s.orgRepo.FindMembership(ctx, organizationID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find membership", slog.String("user_id", userID), slog.String("organization_id", organizationID))
			return nil, fmt.Errorf("failed to resolve organization: %w", err)
		}
		memberships, listErr := s.orgRepo.ListMembershipsByUser(ctx, userID)
		if listErr == nil && len(memberships) == 0 {
			return nil, fmt.Errorf("%w: user has no organization", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: not a member of organization %s", apperrors.ErrForbidden, organizationID)
	}

	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load organization", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to resolve organization: %w", err)
	}
	return callerFrom(*membership, *org), nil
}

func (s *accessService) Authorize(ctx context.Context, caller *domain.CallerContext, capability domain.Capability, mutating bool) error {
	return s.BaseService.Authorize(ctx, caller, capability, mutating)
}

func callerFrom(m domain.Membership, org domain.Organization) *domain.CallerContext {
	return &domain.CallerContext{
		UserID:             m.UserID,
		OrganizationID:     org.OrganizationID,
		Role:               m.Role,
		Plan:               org.Plan,
		SubscriptionStatus: org.SubscriptionStatus,
	}
}
