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

type PgxDepotRepository struct {
	BaseRepository
}

func newPgxDepotRepository(pool *pgxpool.Pool) portsrepo.DepotRepositoryFacade {
	return &PgxDepotRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DepotRepositoryFacade = (*PgxDepotRepository)(nil)

const depotSelect = `
SELECT depot_id, organization_id, name, address,
       created_at, created_by, last_updated_at, last_updated_by, version
FROM depots
`

func (r *PgxDepotRepository) getDepots(ctx context.Context, filterQuery string, args ...any) ([]domain.Depot, error) {
	rows, err := r.Pool.Query(ctx, depotSelect+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query depots", err)
	}
	defer rows.Close()

	depots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Depot, error) {
		var d domain.Depot
		err := row.Scan(&d.DepotID, &d.OrganizationID, &d.Name, &d.Address,
			&d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy, &d.Version)
		return d, err
	})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to collect depot rows", err)
	}
	return depots, nil
}

func (r *PgxDepotRepository) SaveDepot(ctx context.Context, depot domain.Depot) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO depots (
			depot_id, organization_id, name, address,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		depot.DepotID, depot.OrganizationID, depot.Name, depot.Address,
		depot.CreatedAt, depot.CreatedBy, depot.LastUpdatedAt, depot.LastUpdatedBy, depot.Version,
	)
	if err != nil {
		return mapWriteError(err, "depot "+depot.DepotID)
	}
	return nil
}

func (r *PgxDepotRepository) FindDepotByID(ctx context.Context, organizationID, depotID string) (*domain.Depot, error) {
	depots, err := r.getDepots(ctx, `WHERE organization_id = $1 AND depot_id = $2`, organizationID, depotID)
	if err != nil {
		return nil, err
	}
	if len(depots) == 0 {
		return nil, apperrors.NewNotFoundError("depot " + depotID)
	}
	return &depots[0], nil
}

func (r *PgxDepotRepository) ListDepots(ctx context.Context, organizationID string) ([]domain.Depot, error) {
	return r.getDepots(ctx, `WHERE organization_id = $1 ORDER BY name`, organizationID)
}

// UpdateDepot writes depot if its version is unchanged and bumps the version.
func (r *PgxDepotRepository) UpdateDepot(ctx context.Context, depot domain.Depot) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE depots
		SET name = $3, address = $4, last_updated_at = $5, last_updated_by = $6, version = version + 1
		WHERE organization_id = $1 AND depot_id = $2 AND version = $7;`,
		depot.OrganizationID, depot.DepotID, depot.Name, depot.Address,
		depot.LastUpdatedAt, depot.LastUpdatedBy, depot.Version,
	)
	if err != nil {
		return mapWriteError(err, "depot "+depot.DepotID)
	}
	return expectOne(tag, "depot "+depot.DepotID)
}

func (r *PgxDepotRepository) DeleteDepot(ctx context.Context, organizationID, depotID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM depots WHERE organization_id = $1 AND depot_id = $2;`, organizationID, depotID)
	if err != nil {
		return mapDeleteError(err, "depot "+depotID)
	}
	return expectOne(tag, "depot "+depotID)
}
