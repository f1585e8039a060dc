package pgsql

import (
	"context"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxResourceCounter struct {
	BaseRepository
}

func newPgxResourceCounter(pool *pgxpool.Pool) portsrepo.ResourceCounter {
	return &PgxResourceCounter{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ResourceCounter = (*PgxResourceCounter)(nil)

var countQueries = map[domain.ResourceKind]string{
	domain.ResourceDepot:    `SELECT COUNT(*) FROM depots WHERE organization_id = $1`,
	domain.ResourceCrew:     `SELECT COUNT(*) FROM crews WHERE organization_id = $1 AND archived_at IS NULL`,
	domain.ResourceEmployee: `SELECT COUNT(*) FROM employees WHERE organization_id = $1`,
	domain.ResourceVehicle:  `SELECT COUNT(*) FROM vehicles WHERE organization_id = $1`,
}

func (r *PgxResourceCounter) CountResources(ctx context.Context, organizationID string, kind domain.ResourceKind) (int, error) {
	query, ok := countQueries[kind]
	if !ok {
		return 0, apperrors.NewValidationFailedError("unknown resource kind " + string(kind))
	}
	var count int
	if err := r.Pool.QueryRow(ctx, query, organizationID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count "+string(kind)+" resources", err)
	}
	return count, nil
}
