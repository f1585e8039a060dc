package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organizations and memberships.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryWithTx {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxOrganizationRepository implements portsrepo.OrganizationRepositoryWithTx
var _ portsrepo.OrganizationRepositoryWithTx = (*PgxOrganizationRepository)(nil)

const organizationColumns = `
	o.organization_id, o.name, o.plan, o.subscription_status, o.owner_id,
	o.created_at, o.created_by, o.last_updated_at, o.last_updated_by, o.version`

func scanOrganization(row pgx.Row, org *domain.Organization, extra ...any) error {
	dest := []any{
		&org.OrganizationID, &org.Name, &org.Plan, &org.SubscriptionStatus, &org.OwnerID,
		&org.CreatedAt, &org.CreatedBy, &org.LastUpdatedAt, &org.LastUpdatedBy, &org.Version,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations o WHERE o.organization_id = $1`

	var org domain.Organization
	if err := scanOrganization(r.Pool.QueryRow(ctx, query, organizationID), &org); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("organization " + organizationID)
		}
		return nil, apperrors.NewAppError(500, "failed to find organization "+organizationID, err)
	}
	return &org, nil
}

// SaveOrganizationWithOwner inserts the organization and its owner's membership in one transaction.
func (r *PgxOrganizationRepository) SaveOrganizationWithOwner(ctx context.Context, org domain.Organization, owner domain.Membership) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO organizations (
				organization_id, name, plan, subscription_status, owner_id,
				created_at, created_by, last_updated_at, last_updated_by, version
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
			org.OrganizationID, org.Name, org.Plan, org.SubscriptionStatus, org.OwnerID,
			org.CreatedAt, org.CreatedBy, org.LastUpdatedAt, org.LastUpdatedBy, org.Version,
		)
		if err != nil {
			return mapWriteError(err, "organization "+org.OrganizationID)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO memberships (organization_id, user_id, role, accepted_at)
			VALUES ($1, $2, $3, $4);`,
			owner.OrganizationID, owner.UserID, owner.Role, owner.AcceptedAt,
		)
		if err != nil {
			return mapWriteError(err, "membership of "+owner.UserID)
		}
		return nil
	})
}

func (r *PgxOrganizationRepository) FindMembership(ctx context.Context, organizationID, userID string) (*domain.Membership, error) {
	query := `
		SELECT organization_id, user_id, role, accepted_at
		FROM memberships
		WHERE organization_id = $1 AND user_id = $2;
	`
	var m domain.Membership
	err := r.Pool.QueryRow(ctx, query, organizationID, userID).Scan(&m.OrganizationID, &m.UserID, &m.Role, &m.AcceptedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("membership of " + userID + " in " + organizationID)
		}
		return nil, apperrors.NewAppError(500, "failed to find membership", err)
	}
	return &m, nil
}

func (r *PgxOrganizationRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]domain.OrganizationMembership, error) {
	query := `
		SELECT ` + organizationColumns + `, m.role, m.accepted_at
		FROM memberships m
		JOIN organizations o ON o.organization_id = m.organization_id
		WHERE m.user_id = $1
		ORDER BY m.accepted_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query memberships of "+userID, err)
	}
	defer rows.Close()

	memberships, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrganizationMembership, error) {
		var om domain.OrganizationMembership
		err := scanOrganization(row, &om.Organization, &om.Role, &om.AcceptedAt)
		om.OrganizationID = om.Organization.OrganizationID
		om.UserID = userID
		return om, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect membership rows", err)
	}
	return memberships, nil
}

func (r *PgxOrganizationRepository) ListMembers(ctx context.Context, organizationID string) ([]domain.Membership, error) {
	query := `
		SELECT organization_id, user_id, role, accepted_at
		FROM memberships
		WHERE organization_id = $1
		ORDER BY accepted_at;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query members of "+organizationID, err)
	}
	defer rows.Close()

	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Membership, error) {
		var m domain.Membership
		err := row.Scan(&m.OrganizationID, &m.UserID, &m.Role, &m.AcceptedAt)
		return m, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect member rows", err)
	}
	return members, nil
}

func (r *PgxOrganizationRepository) UpdateMemberRole(ctx context.Context, organizationID, userID string, role domain.Role) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE memberships SET role = $3
		WHERE organization_id = $1 AND user_id = $2;`,
		organizationID, userID, role,
	)
	if err != nil {
		return mapWriteError(err, "membership of "+userID)
	}
	return expectOne(tag, "membership of "+userID)
}

func (r *PgxOrganizationRepository) RemoveMember(ctx context.Context, organizationID, userID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM memberships WHERE organization_id = $1 AND user_id = $2;`, organizationID, userID)
	if err != nil {
		return mapDeleteError(err, "membership of "+userID)
	}
	return expectOne(tag, "membership of "+userID)
}
