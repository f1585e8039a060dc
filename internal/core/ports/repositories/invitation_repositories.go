package repositories

import (
	"context"

	"github.com/SscSPs/crew_planner/internal/core/domain"
)

// InvitationRepositoryFacade defines persistence for team invitations.
type InvitationRepositoryFacade interface {
	SaveInvitation(ctx context.Context, invitation domain.Invitation) error
	FindInvitationByID(ctx context.Context, invitationID string) (*domain.Invitation, error)
	// ListOpenInvitations returns invitations that are neither accepted nor expired.
	ListOpenInvitations(ctx context.Context, organizationID string) ([]domain.Invitation, error)
	// AcceptInvitation marks the invitation accepted and adds the membership in one transaction.
	// It fails with a conflict if the invitation was already accepted.
	AcceptInvitation(ctx context.Context, invitation domain.Invitation, membership domain.Membership) error
}
