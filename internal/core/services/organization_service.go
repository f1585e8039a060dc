package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/google/uuid"
)

type organizationService struct {
	BaseService
	orgRepo portsrepo.OrganizationRepositoryFacade
	now     func() time.Time
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvc {
	return &organizationService{orgRepo: orgRepo, now: time.Now}
}

func (s *organizationService) CreateOrganization(ctx context.Context, userID, name string) (*domain.Organization, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("organization name is required")
	}

	now := s.now()
	org := domain.Organization{
		OrganizationID:     uuid.NewString(),
		Name:               name,
		Plan:               domain.PlanStarter,
		SubscriptionStatus: domain.SubscriptionTrialing,
		OwnerID:            userID,
		AuditFields:        domain.NewAuditFields(userID, now),
	}
	owner := domain.Membership{
		OrganizationID: org.OrganizationID,
		UserID:         userID,
		Role:           domain.RoleAdmin,
		AcceptedAt:     now,
	}

	if err := s.orgRepo.SaveOrganizationWithOwner(ctx, org, owner); err != nil {
		s.LogError(ctx, err, "Failed to save organization", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	s.LogInfo(ctx, "Organization created", slog.String("organization_id", org.OrganizationID))
	return &org, nil
}

func (s *organizationService) ListOrganizations(ctx context.Context, userID string) ([]domain.OrganizationMembership, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	memberships, err := s.orgRepo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organizations", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return memberships, nil
}
