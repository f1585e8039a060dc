package pgsql

import (
	"context"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxColorLabelRepository struct {
	BaseRepository
}

func newPgxColorLabelRepository(pool *pgxpool.Pool) portsrepo.ColorLabelRepository {
	return &PgxColorLabelRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ColorLabelRepository = (*PgxColorLabelRepository)(nil)

func (r *PgxColorLabelRepository) UpsertColorLabel(ctx context.Context, label domain.ColorLabel) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO color_labels (organization_id, color, label, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (organization_id, color)
		DO UPDATE SET label = EXCLUDED.label, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at;`,
		label.OrganizationID, label.Color, label.Label, label.UpdatedBy, label.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "color label "+label.Color)
	}
	return nil
}

func (r *PgxColorLabelRepository) ListColorLabels(ctx context.Context, organizationID string) ([]domain.ColorLabel, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT organization_id, color, label, updated_by, updated_at
		FROM color_labels
		WHERE organization_id = $1
		ORDER BY color;`,
		organizationID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query color labels", err)
	}
	defer rows.Close()

	labels, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ColorLabel, error) {
		var l domain.ColorLabel
		err := row.Scan(&l.OrganizationID, &l.Color, &l.Label, &l.UpdatedBy, &l.UpdatedAt)
		return l, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect color label rows", err)
	}
	return labels, nil
}
