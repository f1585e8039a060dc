package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/SscSPs/crew_planner/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// defaultInvitationTTL applies when the configured TTL is not positive.
const defaultInvitationTTL = 7 * 24 * time.Hour

type teamService struct {
	BaseService
	orgRepo        portsrepo.OrganizationRepositoryFacade
	invitationRepo portsrepo.InvitationRepositoryFacade
	invitationTTL  time.Duration
	validate       *validator.Validate
	now            func() time.Time
}

// NewTeamService creates a new TeamService.
func NewTeamService(orgRepo portsrepo.OrganizationRepositoryFacade, invitationRepo portsrepo.InvitationRepositoryFacade, invitationTTL time.Duration) portssvc.TeamSvc {
	if invitationTTL <= 0 {
		invitationTTL = defaultInvitationTTL
	}
	return &teamService{
		orgRepo:        orgRepo,
		invitationRepo: invitationRepo,
		invitationTTL:  invitationTTL,
		validate:       validator.New(),
		now:            time.Now,
	}
}

func (s *teamService) ListMembers(ctx context.Context, caller *domain.CallerContext) ([]domain.Membership, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityViewSchedule, false); err != nil {
		return nil, err
	}
	return s.orgRepo.ListMembers(ctx, caller.OrganizationID)
}

// protectOwner rejects changes to the organization owner's membership.
func (s *teamService) protectOwner(ctx context.Context, organizationID, userID string) error {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return err
	}
	if org.OwnerID == userID {
		return apperrors.NewConflictError("the organization owner keeps the admin role")
	}
	return nil
}

func (s *teamService) ChangeRole(ctx context.Context, caller *domain.CallerContext, userID string, role domain.Role) error {
	if err := s.Authorize(ctx, caller, domain.CapabilityManageTeam, true); err != nil {
		return err
	}
	if !role.IsValid() {
		return apperrors.NewValidationFailedError("unknown role " + string(role))
	}
	if err := s.protectOwner(ctx, caller.OrganizationID, userID); err != nil {
		return err
	}
	if err := s.orgRepo.UpdateMemberRole(ctx, caller.OrganizationID, userID, role); err != nil {
		s.LogError(ctx, err, "Failed to update member role", slog.String("member_id", userID))
		return fmt.Errorf("failed to change role: %w", err)
	}
	s.LogInfo(ctx, "Member role changed", slog.String("member_id", userID), slog.String("role", string(role)))
	return nil
}

func (s *teamService) RemoveMember(ctx context.Context, caller *domain.CallerContext, userID string) error {
	if err := s.Authorize(ctx, caller, domain.CapabilityManageTeam, true); err != nil {
		return err
	}
	if err := s.protectOwner(ctx, caller.OrganizationID, userID); err != nil {
		return err
	}
	if err := s.orgRepo.RemoveMember(ctx, caller.OrganizationID, userID); err != nil {
		s.LogError(ctx, err, "Failed to remove member", slog.String("member_id", userID))
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

func (s *teamService) CreateInvitation(ctx context.Context, caller *domain.CallerContext, email string, role domain.Role) (*domain.Invitation, string, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityManageTeam, true); err != nil {
		return nil, "", err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, "", apperrors.NewValidationFailedError("a valid email is required")
	}
	if !role.IsValid() {
		return nil, "", apperrors.NewValidationFailedError("unknown role " + string(role))
	}

	code, hash, err := utils.NewInvitationCode()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate invitation code: %w", err)
	}

	now := s.now()
	invitation := domain.Invitation{
		InvitationID:   uuid.NewString(),
		OrganizationID: caller.OrganizationID,
		Email:          email,
		Role:           role,
		CodeHash:       hash,
		InvitedBy:      caller.UserID,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.invitationTTL),
	}
	if err := s.invitationRepo.SaveInvitation(ctx, invitation); err != nil {
		s.LogError(ctx, err, "Failed to save invitation")
		return nil, "", fmt.Errorf("failed to create invitation: %w", err)
	}
	s.LogInfo(ctx, "Invitation created", slog.String("invitation_id", invitation.InvitationID), slog.String("role", string(role)))
	return &invitation, code, nil
}

func (s *teamService) ListInvitations(ctx context.Context, caller *domain.CallerContext) ([]domain.Invitation, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityManageTeam, false); err != nil {
		return nil, err
	}
	return s.invitationRepo.ListOpenInvitations(ctx, caller.OrganizationID)
}

func (s *teamService) AcceptInvitation(ctx context.Context, userID, invitationID, code string) (*domain.Membership, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	invitation, err := s.invitationRepo.FindInvitationByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	// A wrong code looks the same as a missing invitation.
	if !utils.CheckSecretHash(code, invitation.CodeHash) {
		return nil, apperrors.NewNotFoundError("invitation " + invitationID)
	}
	if invitation.IsAccepted() {
		return nil, apperrors.NewConflictError("invitation already accepted")
	}
	now := s.now()
	if invitation.IsExpired(now) {
		return nil, apperrors.NewValidationFailedError("invitation expired")
	}

	org, err := s.orgRepo.FindOrganizationByID(ctx, invitation.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !org.SubscriptionStatus.AllowsMutations() {
		return nil, fmt.Errorf("%w: subscription is %s", apperrors.ErrSubscriptionInactive, org.SubscriptionStatus)
	}

	if _, err := s.orgRepo.FindMembership(ctx, invitation.OrganizationID, userID); err == nil {
		return nil, fmt.Errorf("%w: user is already a member", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	membership := domain.Membership{
		OrganizationID: invitation.OrganizationID,
		UserID:         userID,
		Role:           invitation.Role,
		AcceptedAt:     now,
	}
	invitation.AcceptedAt = &now
	invitation.AcceptedBy = &userID

	if err := s.invitationRepo.AcceptInvitation(ctx, *invitation, membership); err != nil {
		s.LogError(ctx, err, "Failed to accept invitation", slog.String("invitation_id", invitationID))
		return nil, fmt.Errorf("failed to accept invitation: %w", err)
	}
	s.LogInfo(ctx, "Invitation accepted", slog.String("invitation_id", invitationID), slog.String("user_id", userID))
	return &membership, nil
}
