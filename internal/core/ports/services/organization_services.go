package services

import (
	"context"

	"github.com/SscSPs/crew_planner/internal/core/domain"
)

// OrganizationSvc creates and lists organizations.
type OrganizationSvc interface {
	// CreateOrganization creates a trialing starter organization owned by userID, who becomes admin.
	CreateOrganization(ctx context.Context, userID, name string) (*domain.Organization, error)
	ListOrganizations(ctx context.Context, userID string) ([]domain.OrganizationMembership, error)
}

// TeamSvc manages memberships and invitations. Every operation requires the manage-team capability
// except AcceptInvitation, which only needs an authenticated user.
type TeamSvc interface {
	ListMembers(ctx context.Context, caller *domain.CallerContext) ([]domain.Membership, error)
	ChangeRole(ctx context.Context, caller *domain.CallerContext, userID string, role domain.Role) error
	RemoveMember(ctx context.Context, caller *domain.CallerContext, userID string) error

	// CreateInvitation returns the invitation and its one-time plaintext code.
	CreateInvitation(ctx context.Context, caller *domain.CallerContext, email string, role domain.Role) (*domain.Invitation, string, error)
	ListInvitations(ctx context.Context, caller *domain.CallerContext) ([]domain.Invitation, error)
	AcceptInvitation(ctx context.Context, userID, invitationID, code string) (*domain.Membership, error)
}

// SettingsSvc manages planner settings.
type SettingsSvc interface {
	GetSettings(ctx context.Context, caller *domain.CallerContext) (*domain.PlannerSettings, error)
	SetColorLabel(ctx context.Context, caller *domain.CallerContext, color, label string) error
	SetVehicleTypes(ctx context.Context, caller *domain.CallerContext, vehicleTypes []string) error
}
