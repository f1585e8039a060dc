package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCrewRepository struct {
	BaseRepository
}

func newPgxCrewRepository(pool *pgxpool.Pool) portsrepo.CrewRepositoryWithTx {
	return &PgxCrewRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CrewRepositoryWithTx = (*PgxCrewRepository)(nil)

const crewSelect = `
SELECT crew_id, organization_id, depot_id, name, shift, archived_at,
       created_at, created_by, last_updated_at, last_updated_by, version
FROM crews
`

func (r *PgxCrewRepository) getCrews(ctx context.Context, filterQuery string, args ...any) ([]domain.Crew, error) {
	rows, err := r.Pool.Query(ctx, crewSelect+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query crews", err)
	}
	defer rows.Close()

	crews, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Crew, error) {
		var c domain.Crew
		err := row.Scan(&c.CrewID, &c.OrganizationID, &c.DepotID, &c.Name, &c.Shift, &c.ArchivedAt,
			&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy, &c.Version)
		return c, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect crew rows", err)
	}
	return crews, nil
}

func (r *PgxCrewRepository) FindCrewByID(ctx context.Context, organizationID, crewID string) (*domain.Crew, error) {
	crews, err := r.getCrews(ctx, `WHERE organization_id = $1 AND crew_id = $2`, organizationID, crewID)
	if err != nil {
		return nil, err
	}
	if len(crews) == 0 {
		return nil, apperrors.NewNotFoundError("crew " + crewID)
	}
	return &crews[0], nil
}

func (r *PgxCrewRepository) ListCrews(ctx context.Context, organizationID string, includeArchived bool) ([]domain.Crew, error) {
	if includeArchived {
		return r.getCrews(ctx, `WHERE organization_id = $1 ORDER BY name`, organizationID)
	}
	return r.getCrews(ctx, `WHERE organization_id = $1 AND archived_at IS NULL ORDER BY name`, organizationID)
}

func (r *PgxCrewRepository) SaveCrew(ctx context.Context, crew domain.Crew) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO crews (
			crew_id, organization_id, depot_id, name, shift,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		crew.CrewID, crew.OrganizationID, crew.DepotID, crew.Name, crew.Shift,
		crew.CreatedAt, crew.CreatedBy, crew.LastUpdatedAt, crew.LastUpdatedBy, crew.Version,
	)
	if err != nil {
		return mapWriteError(err, "crew "+crew.CrewID)
	}
	return nil
}

// UpdateCrew writes an active crew whose version is unchanged.
func (r *PgxCrewRepository) UpdateCrew(ctx context.Context, crew domain.Crew) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE crews
		SET depot_id = $3, name = $4, shift = $5, last_updated_at = $6, last_updated_by = $7, version = version + 1
		WHERE organization_id = $1 AND crew_id = $2 AND version = $8 AND archived_at IS NULL;`,
		crew.OrganizationID, crew.CrewID, crew.DepotID, crew.Name, crew.Shift,
		crew.LastUpdatedAt, crew.LastUpdatedBy, crew.Version,
	)
	if err != nil {
		return mapWriteError(err, "crew "+crew.CrewID)
	}
	return expectOne(tag, "crew "+crew.CrewID)
}

// ArchiveCrewWithFutureItems deletes the crew's items from cutoff on and archives the crew. Both
// statements commit together or not at all.
func (r *PgxCrewRepository) ArchiveCrewWithFutureItems(ctx context.Context, organizationID, crewID, userID string, cutoff, archivedAt time.Time) (int, error) {
	var removed int64
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE crews
			SET archived_at = $3, last_updated_at = $3, last_updated_by = $4, version = version + 1
			WHERE organization_id = $1 AND crew_id = $2 AND archived_at IS NULL;`,
			organizationID, crewID, archivedAt, userID,
		)
		if err != nil {
			return mapWriteError(err, "crew "+crewID)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewConflictError("crew " + crewID + " is missing or already archived")
		}

		tag, err = tx.Exec(ctx, `
			DELETE FROM schedule_items
			WHERE organization_id = $1 AND crew_id = $2 AND item_date >= $3;`,
			organizationID, crewID, cutoff,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to delete future items of crew "+crewID, err)
		}
		removed = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(removed), nil
}
