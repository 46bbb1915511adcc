package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDBError_Nil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, MapDBError(nil))
}

func TestMapDBError_ContextErrors(t *testing.T) {
	t.Parallel()

	assert.True(t, IsTimeout(MapDBError(context.DeadlineExceeded)))
	assert.True(t, IsCanceled(MapDBError(context.Canceled)))
}

func TestMapDBError_NoRows(t *testing.T) {
	t.Parallel()

	err := MapDBError(pgx.ErrNoRows)
	require.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{
		Code:   pgerrcode.UniqueViolation,
		Detail: "Key (tenant_id, job_number)=(t1, JOB-00042) already exists.",
	}
	err := MapDBError(pgErr)
	require.True(t, IsConflict(err))
	assert.Equal(t, "tenant_id, job_number", GetField(err))
}

func TestMapDBError_ForeignKeyViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{
		Code:      pgerrcode.ForeignKeyViolation,
		TableName: "customers",
	}
	err := MapDBError(pgErr)
	require.True(t, IsForeignKey(err))
	assert.Contains(t, err.Error(), "customer")
}

func TestMapDBError_CheckViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{
		Code:       pgerrcode.CheckViolation,
		ColumnName: "price_inc_vat",
	}
	err := MapDBError(pgErr)
	require.True(t, IsValidation(err))
	assert.Equal(t, "price_inc_vat", GetField(err))
}

func TestMapDBError_UnrecognizedPassthrough(t *testing.T) {
	t.Parallel()

	plain := errors.New("dial tcp: connection refused")
	assert.Equal(t, plain, MapDBError(plain))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "job_events_job_id_event_order_key",
	}
	assert.True(t, IsUniqueViolation(pgErr, ""))
	assert.True(t, IsUniqueViolation(pgErr, "job_events_job_id_event_order_key"))
	assert.False(t, IsUniqueViolation(pgErr, "jobs_tenant_id_job_number_key"))
	assert.False(t, IsUniqueViolation(errors.New("plain"), ""))
}
