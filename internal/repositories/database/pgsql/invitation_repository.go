package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvitationRepository struct {
	BaseRepository
}

func newPgxInvitationRepository(pool *pgxpool.Pool) portsrepo.InvitationRepositoryFacade {
	return &PgxInvitationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvitationRepositoryFacade = (*PgxInvitationRepository)(nil)

const invitationSelect = `
SELECT invitation_id, organization_id, email, role, code_hash, invited_by,
       created_at, expires_at, accepted_at, accepted_by
FROM invitations
`

func scanInvitation(row pgx.Row) (domain.Invitation, error) {
	var inv domain.Invitation
	err := row.Scan(
		&inv.InvitationID, &inv.OrganizationID, &inv.Email, &inv.Role, &inv.CodeHash, &inv.InvitedBy,
		&inv.CreatedAt, &inv.ExpiresAt, &inv.AcceptedAt, &inv.AcceptedBy,
	)
	return inv, err
}

func (r *PgxInvitationRepository) SaveInvitation(ctx context.Context, invitation domain.Invitation) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO invitations (
			invitation_id, organization_id, email, role, code_hash, invited_by, created_at, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		invitation.InvitationID, invitation.OrganizationID, invitation.Email, invitation.Role,
		invitation.CodeHash, invitation.InvitedBy, invitation.CreatedAt, invitation.ExpiresAt,
	)
	if err != nil {
		return mapWriteError(err, "invitation "+invitation.InvitationID)
	}
	return nil
}

func (r *PgxInvitationRepository) FindInvitationByID(ctx context.Context, invitationID string) (*domain.Invitation, error) {
	inv, err := scanInvitation(r.Pool.QueryRow(ctx, invitationSelect+`WHERE invitation_id = $1`, invitationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("invitation " + invitationID)
		}
		return nil, apperrors.NewAppError(500, "failed to find invitation "+invitationID, err)
	}
	return &inv, nil
}

func (r *PgxInvitationRepository) ListOpenInvitations(ctx context.Context, organizationID string) ([]domain.Invitation, error) {
	rows, err := r.Pool.Query(ctx, invitationSelect+`
		WHERE organization_id = $1 AND accepted_at IS NULL AND expires_at > $2
		ORDER BY created_at DESC`,
		organizationID, time.Now(),
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invitations", err)
	}
	defer rows.Close()

	invitations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Invitation, error) {
		return scanInvitation(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect invitation rows", err)
	}
	return invitations, nil
}

// AcceptInvitation claims the invitation and inserts the membership atomically. The conditional
// update makes a concurrent second acceptance fail with a conflict.
func (r *PgxInvitationRepository) AcceptInvitation(ctx context.Context, invitation domain.Invitation, membership domain.Membership) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE invitations SET accepted_at = $2, accepted_by = $3
			WHERE invitation_id = $1 AND accepted_at IS NULL;`,
			invitation.InvitationID, invitation.AcceptedAt, invitation.AcceptedBy,
		)
		if err != nil {
			return mapWriteError(err, "invitation "+invitation.InvitationID)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewConflictError("invitation " + invitation.InvitationID + " already accepted")
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO memberships (organization_id, user_id, role, accepted_at)
			VALUES ($1, $2, $3, $4);`,
			membership.OrganizationID, membership.UserID, membership.Role, membership.AcceptedAt,
		)
		if err != nil {
			return mapWriteError(err, "membership of "+membership.UserID)
		}
		return nil
	})
}
