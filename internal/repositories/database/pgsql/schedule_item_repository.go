package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	"github.com/SscSPs/crew_planner/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxScheduleItemRepository struct {
	BaseRepository
}

// newPgxScheduleItemRepository creates a new repository for schedule items.
func newPgxScheduleItemRepository(pool *pgxpool.Pool) portsrepo.ScheduleItemRepositoryWithTx {
	return &PgxScheduleItemRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxScheduleItemRepository implements portsrepo.ScheduleItemRepositoryWithTx
var _ portsrepo.ScheduleItemRepositoryWithTx = (*PgxScheduleItemRepository)(nil)

const scheduleItemColumns = `
	item_id, organization_id, depot_id, crew_id, item_type, item_date, start_time,
	status, job_status, duration, position, customer, address, description,
	employee_id, vehicle_id, note_content,
	approved_by, approved_at, rejected_by, rejected_at, rejection_reason,
	created_at, created_by, last_updated_at, last_updated_by, version`

func scanScheduleItem(row pgx.Row) (domain.ScheduleItem, error) {
	var i domain.ScheduleItem
	err := row.Scan(
		&i.ItemID, &i.OrganizationID, &i.DepotID, &i.CrewID, &i.Type, &i.Date, &i.StartTime,
		&i.Status, &i.JobStatus, &i.Duration, &i.Position, &i.Customer, &i.Address, &i.Description,
		&i.EmployeeID, &i.VehicleID, &i.NoteContent,
		&i.ApprovedBy, &i.ApprovedAt, &i.RejectedBy, &i.RejectedAt, &i.RejectionReason,
		&i.CreatedAt, &i.CreatedBy, &i.LastUpdatedAt, &i.LastUpdatedBy, &i.Version,
	)
	return i, err
}

func (r *PgxScheduleItemRepository) getItems(ctx context.Context, filterQuery string, args ...any) ([]domain.ScheduleItem, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+scheduleItemColumns+` FROM schedule_items `+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query schedule items", err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ScheduleItem, error) {
		return scanScheduleItem(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect schedule item rows", err)
	}
	return items, nil
}

func (r *PgxScheduleItemRepository) FindScheduleItemByID(ctx context.Context, organizationID, itemID string) (*domain.ScheduleItem, error) {
	item, err := scanScheduleItem(r.Pool.QueryRow(ctx,
		`SELECT `+scheduleItemColumns+` FROM schedule_items WHERE organization_id = $1 AND item_id = $2`,
		organizationID, itemID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("schedule item " + itemID)
		}
		return nil, apperrors.NewAppError(500, "failed to find schedule item "+itemID, err)
	}
	return &item, nil
}

func (r *PgxScheduleItemRepository) ListScheduleItems(ctx context.Context, filter portsrepo.ScheduleItemFilter) ([]domain.ScheduleItem, error) {
	var sb strings.Builder
	args := []any{filter.OrganizationID, filter.From, filter.To}
	sb.WriteString(`WHERE organization_id = $1 AND item_date BETWEEN $2::date AND $3::date`)
	if filter.CrewID != nil {
		args = append(args, *filter.CrewID)
		sb.WriteString(` AND crew_id = $` + strconv.Itoa(len(args)))
	}
	if filter.DepotID != nil {
		args = append(args, *filter.DepotID)
		sb.WriteString(` AND depot_id = $` + strconv.Itoa(len(args)))
	}
	sb.WriteString(` ORDER BY item_date, crew_id, position, created_at`)

	return r.getItems(ctx, sb.String(), args...)
}

// ListPendingItems pages through pending items oldest first, using (item_date, created_at, item_id)
// as the cursor.
func (r *PgxScheduleItemRepository) ListPendingItems(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.ScheduleItem, *string, error) {
	limit = pagination.ClampLimit(limit)
	fetchLimit := limit + 1

	var items []domain.ScheduleItem
	var err error
	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationFailedError(decodeErr.Error())
		}
		items, err = r.getItems(ctx, `
			WHERE organization_id = $1 AND status = 'pending'
			  AND (item_date, created_at, item_id) > ($2::date, $3::timestamptz, $4::text)
			ORDER BY item_date, created_at, item_id
			LIMIT $5`,
			organizationID, cursor.Date, cursor.CreatedAt, cursor.ID, fetchLimit,
		)
	} else {
		items, err = r.getItems(ctx, `
			WHERE organization_id = $1 AND status = 'pending'
			ORDER BY item_date, created_at, item_id
			LIMIT $2`,
			organizationID, fetchLimit,
		)
	}
	if err != nil {
		return nil, nil, err
	}

	if len(items) <= limit {
		return items, nil, nil
	}
	last := items[limit-1]
	token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.ItemID})
	return items[:limit], &token, nil
}

func (r *PgxScheduleItemRepository) SaveScheduleItem(ctx context.Context, item domain.ScheduleItem) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO schedule_items (`+scheduleItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25, $26, $27);`,
		item.ItemID, item.OrganizationID, item.DepotID, item.CrewID, item.Type, item.Date, item.StartTime,
		item.Status, item.JobStatus, item.Duration, item.Position, item.Customer, item.Address, item.Description,
		item.EmployeeID, item.VehicleID, item.NoteContent,
		item.ApprovedBy, item.ApprovedAt, item.RejectedBy, item.RejectedAt, item.RejectionReason,
		item.CreatedAt, item.CreatedBy, item.LastUpdatedAt, item.LastUpdatedBy, item.Version,
	)
	if err != nil {
		return mapWriteError(err, "schedule item "+item.ItemID)
	}
	return nil
}

// UpdateScheduleItem writes the editable fields and bumps the version. Approval columns are not
// touched here.
func (r *PgxScheduleItemRepository) UpdateScheduleItem(ctx context.Context, item domain.ScheduleItem, expectedVersion int) (*domain.ScheduleItem, error) {
	updated, err := scanScheduleItem(r.Pool.QueryRow(ctx, `
		UPDATE schedule_items
		SET depot_id = $3, crew_id = $4, item_type = $5, item_date = $6, start_time = $7,
		    job_status = $8, duration = $9, position = $10, customer = $11, address = $12,
		    description = $13, employee_id = $14, vehicle_id = $15, note_content = $16,
		    last_updated_at = $17, last_updated_by = $18, version = version + 1
		WHERE organization_id = $1 AND item_id = $2 AND ($19 = 0 OR version = $19)
		RETURNING `+scheduleItemColumns,
		item.OrganizationID, item.ItemID, item.DepotID, item.CrewID, item.Type, item.Date, item.StartTime,
		item.JobStatus, item.Duration, item.Position, item.Customer, item.Address,
		item.Description, item.EmployeeID, item.VehicleID, item.NoteContent,
		item.LastUpdatedAt, item.LastUpdatedBy, expectedVersion,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("schedule item " + item.ItemID + " at the expected version")
		}
		return nil, mapWriteError(err, "schedule item "+item.ItemID)
	}
	return &updated, nil
}

func (r *PgxScheduleItemRepository) DeleteScheduleItem(ctx context.Context, organizationID, itemID string, expectedVersion int) error {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM schedule_items
		WHERE organization_id = $1 AND item_id = $2 AND ($3 = 0 OR version = $3);`,
		organizationID, itemID, expectedVersion,
	)
	if err != nil {
		return mapDeleteError(err, "schedule item "+itemID)
	}
	return expectOne(tag, "schedule item "+itemID)
}

// UpdateApprovalStatus moves a pending item to approved or rejected. The status predicate makes the
// transition a compare-and-set, so two concurrent decisions cannot both succeed.
func (r *PgxScheduleItemRepository) UpdateApprovalStatus(ctx context.Context, organizationID, itemID string, decision portsrepo.ApprovalDecision) (*domain.ScheduleItem, error) {
	var query string
	args := []any{organizationID, itemID, decision.Status, decision.DecidedBy, decision.DecidedAt}
	if decision.Status == domain.StatusRejected {
		query = `
			UPDATE schedule_items
			SET status = $3, rejected_by = $4, rejected_at = $5, rejection_reason = $6,
			    last_updated_at = $5, last_updated_by = $4, version = version + 1
			WHERE organization_id = $1 AND item_id = $2 AND status = 'pending'
			RETURNING ` + scheduleItemColumns
		args = append(args, decision.Reason)
	} else {
		query = `
			UPDATE schedule_items
			SET status = $3, approved_by = $4, approved_at = $5,
			    last_updated_at = $5, last_updated_by = $4, version = version + 1
			WHERE organization_id = $1 AND item_id = $2 AND status = 'pending'
			RETURNING ` + scheduleItemColumns
	}

	item, err := scanScheduleItem(r.Pool.QueryRow(ctx, query, args...))
	if err == nil {
		return &item, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapWriteError(err, "schedule item "+itemID)
	}

	var current domain.ApprovalStatus
	err = r.Pool.QueryRow(ctx, `SELECT status FROM schedule_items WHERE organization_id = $1 AND item_id = $2`, organizationID, itemID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("schedule item " + itemID)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read status of schedule item "+itemID, err)
	}
	return nil, errors.Join(apperrors.ErrInvalidTransition, errors.New("schedule item "+itemID+" is "+string(current)))
}

// UpdatePositions applies every position change or none.
func (r *PgxScheduleItemRepository) UpdatePositions(ctx context.Context, organizationID, userID string, updates []portsrepo.PositionUpdate) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, u := range updates {
			batch.Queue(`
				UPDATE schedule_items
				SET position = $3, last_updated_at = NOW(), last_updated_by = $4, version = version + 1
				WHERE organization_id = $1 AND item_id = $2;`,
				organizationID, u.ItemID, u.Position, userID,
			)
		}

		br := tx.SendBatch(ctx, batch)
		for _, u := range updates {
			tag, err := br.Exec()
			if err != nil {
				br.Close()
				return mapWriteError(err, "schedule item "+u.ItemID)
			}
			if tag.RowsAffected() == 0 {
				br.Close()
				return apperrors.NewNotFoundError("schedule item " + u.ItemID)
			}
		}
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to reorder schedule items", err)
		}
		return nil
	})
}
