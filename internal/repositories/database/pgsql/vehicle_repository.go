package pgsql

import (
	"context"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxVehicleRepository struct {
	BaseRepository
}

func newPgxVehicleRepository(pool *pgxpool.Pool) portsrepo.VehicleRepositoryFacade {
	return &PgxVehicleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.VehicleRepositoryFacade = (*PgxVehicleRepository)(nil)

const vehicleSelect = `
SELECT vehicle_id, organization_id, depot_id, name, status, vehicle_type,
       created_at, created_by, last_updated_at, last_updated_by, version
FROM vehicles
`

func (r *PgxVehicleRepository) getVehicles(ctx context.Context, filterQuery string, args ...any) ([]domain.Vehicle, error) {
	rows, err := r.Pool.Query(ctx, vehicleSelect+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query vehicles", err)
	}
	defer rows.Close()

	vehicles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Vehicle, error) {
		var e domain.Vehicle
		err := row.Scan(&e.VehicleID, &e.OrganizationID, &e.DepotID, &e.Name, &e.Status, &e.VehicleType,
			&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy, &e.Version)
		return e, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect vehicle rows", err)
	}
	return vehicles, nil
}

func (r *PgxVehicleRepository) SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO vehicles (
			vehicle_id, organization_id, depot_id, name, status, vehicle_type,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		vehicle.VehicleID, vehicle.OrganizationID, vehicle.DepotID, vehicle.Name, vehicle.Status, vehicle.VehicleType,
		vehicle.CreatedAt, vehicle.CreatedBy, vehicle.LastUpdatedAt, vehicle.LastUpdatedBy, vehicle.Version,
	)
	if err != nil {
		return mapWriteError(err, "vehicle "+vehicle.VehicleID)
	}
	return nil
}

func (r *PgxVehicleRepository) FindVehicleByID(ctx context.Context, organizationID, vehicleID string) (*domain.Vehicle, error) {
	vehicles, err := r.getVehicles(ctx, `WHERE organization_id = $1 AND vehicle_id = $2`, organizationID, vehicleID)
	if err != nil {
		return nil, err
	}
	if len(vehicles) == 0 {
		return nil, apperrors.NewNotFoundError("vehicle " + vehicleID)
	}
	return &vehicles[0], nil
}

func (r *PgxVehicleRepository) ListVehicles(ctx context.Context, organizationID string, depotID *string) ([]domain.Vehicle, error) {
	return r.getVehicles(ctx, `
		WHERE organization_id = $1 AND ($2::text IS NULL OR depot_id = $2)
		ORDER BY name`,
		organizationID, depotID,
	)
}

func (r *PgxVehicleRepository) UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE vehicles
		SET depot_id = $3, name = $4, status = $5, vehicle_type = $6,
		    last_updated_at = $7, last_updated_by = $8, version = version + 1
		WHERE organization_id = $1 AND vehicle_id = $2 AND version = $9;`,
		vehicle.OrganizationID, vehicle.VehicleID, vehicle.DepotID, vehicle.Name, vehicle.Status, vehicle.VehicleType,
		vehicle.LastUpdatedAt, vehicle.LastUpdatedBy, vehicle.Version,
	)
	if err != nil {
		return mapWriteError(err, "vehicle "+vehicle.VehicleID)
	}
	return expectOne(tag, "vehicle "+vehicle.VehicleID)
}

func (r *PgxVehicleRepository) DeleteVehicle(ctx context.Context, organizationID, vehicleID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM vehicles WHERE organization_id = $1 AND vehicle_id = $2;`, organizationID, vehicleID)
	if err != nil {
		return mapDeleteError(err, "vehicle "+vehicleID)
	}
	return expectOne(tag, "vehicle "+vehicleID)
}
