package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// inTx runs fn in a transaction, committing only when fn succeeds.
func (r *BaseRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op after a successful commit

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// mapWriteError translates constraint violations on insert/update into application errors.
func mapWriteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewConflictError(what + " already exists")
		case pgForeignKeyViolation:
			return apperrors.NewValidationFailedError(what + " references a missing record")
		case pgCheckViolation:
			return apperrors.NewValidationFailedError(what + " violates " + pgErr.ConstraintName)
		}
	}
	return apperrors.NewAppError(500, "failed to write "+what, err)
}

// mapDeleteError reports a delete blocked by dependants as a conflict.
func mapDeleteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return apperrors.NewConflictError(what + " is still referenced by " + pgErr.TableName)
	}
	return apperrors.NewAppError(500, "failed to delete "+what, err)
}

// expectOne turns a write that matched no row into ErrNotFound.
func expectOne(tag pgconn.CommandTag, what string) error {
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(what)
	}
	return nil
}
