package pgsql

import (
	"errors"
	"net/http"
	"testing"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique", &pgconn.PgError{Code: pgUniqueViolation}, apperrors.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: pgForeignKeyViolation}, apperrors.ErrValidation},
		{"check", &pgconn.PgError{Code: pgCheckViolation, ConstraintName: "chk_schedule_items_not_placeholder"}, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapWriteError(tt.err, "schedule item"), tt.want)
		})
	}

	err := mapWriteError(errors.New("connection refused"), "schedule item")
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))
}

func TestMapDeleteError(t *testing.T) {
	err := mapDeleteError(&pgconn.PgError{Code: pgForeignKeyViolation, TableName: "crews"}, "depot")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "crews")

	err = mapDeleteError(errors.New("timeout"), "depot")
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))
}

func TestExpectOne(t *testing.T) {
	assert.ErrorIs(t, expectOne(pgconn.NewCommandTag("UPDATE 0"), "crew crew-1"), apperrors.ErrNotFound)
	assert.NoError(t, expectOne(pgconn.NewCommandTag("UPDATE 1"), "crew crew-1"))
}
