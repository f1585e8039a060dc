package repositories

import (
	"context"

	"github.com/SscSPs/crew_planner/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// SaveOrganizationWithOwner persists a new organization and its owner's admin membership atomically.
	SaveOrganizationWithOwner(ctx context.Context, org domain.Organization, owner domain.Membership) error
}

// MembershipManager defines operations for managing organization memberships
type MembershipManager interface {
	// FindMembership retrieves the membership of a user in an organization.
	FindMembership(ctx context.Context, organizationID, userID string) (*domain.Membership, error)

	// ListMembershipsByUser retrieves every membership of a user together with its organization.
	ListMembershipsByUser(ctx context.Context, userID string) ([]domain.OrganizationMembership, error)

	// ListMembers retrieves all memberships of an organization.
	ListMembers(ctx context.Context, organizationID string) ([]domain.Membership, error)

	// UpdateMemberRole changes the role of an existing member.
	UpdateMemberRole(ctx context.Context, organizationID, userID string, role domain.Role) error

	// RemoveMember deletes a membership.
	RemoveMember(ctx context.Context, organizationID, userID string) error
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
	MembershipManager
}

// OrganizationRepositoryWithTx extends OrganizationRepositoryFacade with transaction capabilities
type OrganizationRepositoryWithTx interface {
	OrganizationRepositoryFacade
	TransactionManager
}
