package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/skipflow/skipflow-go/internal/data/pgxutil"
	"github.com/skipflow/skipflow-go/internal/domain/model"
	apperrors "github.com/skipflow/skipflow-go/internal/errors"
)

const eventColumns = `id, job_id, tenant_id, event_type, status, event_order, notes, created_at`

// appendEventAttempts bounds retries when a concurrent append wins the same
// event_order slot.
const appendEventAttempts = 3

// JobEventRepo provides database operations for the append-only job timeline.
type JobEventRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobEventRepo creates a new JobEventRepo with real time provider.
func NewJobEventRepo(db *sql.DB) *JobEventRepo {
	return &JobEventRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewJobEventRepoWithTimeProvider creates a new JobEventRepo with a custom time provider (useful for tests).
func NewJobEventRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobEventRepo {
	return &JobEventRepo{DB: db, timeProvider: tp}
}

// Append inserts a timeline event with event_order = previous max + 1 for the
// job. A unique constraint on (job_id, event_order) rejects concurrent
// duplicates; losers retry with a fresh order.
func (r *JobEventRepo) Append(
	ctx context.Context,
	req model.AppendEventRequest,
) (*model.JobEvent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.JobEvent
	var lastErr error
	for attempt := 0; attempt < appendEventAttempts; attempt++ {
		err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
			ev, insErr := insertEvent(ctx, conn, req, now)
			if insErr != nil {
				return insErr
			}
			out = *ev
			return nil
		})
		if err == nil {
			return &out, nil
		}
		lastErr = err
		if !apperrors.IsUniqueViolation(err, "job_events_job_id_event_order_key") {
			return nil, err
		}
	}
	return nil, fmt.Errorf("append event: retries exhausted: %w", lastErr)
}

// queryRower is satisfied by *pgx.Conn and pgx.Tx.
type queryRower interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// appendEventTx appends an event using the caller's transaction, so the event
// commits or rolls back with the job mutation it records.
func appendEventTx(
	ctx context.Context,
	tx pgx.Tx,
	req model.AppendEventRequest,
	now time.Time,
) (*model.JobEvent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return insertEvent(ctx, tx, req, now)
}

func insertEvent(
	ctx context.Context,
	q queryRower,
	req model.AppendEventRequest,
	now time.Time,
) (*model.JobEvent, error) {
	rows, err := q.Query(ctx, `
		INSERT INTO job_events (job_id, tenant_id, event_type, status, event_order, notes, created_at)
		SELECT $1, $2, $3, $4, COALESCE(MAX(event_order), 0) + 1, $5, $6
		FROM job_events
		WHERE job_id = $1
		RETURNING `+eventColumns,
		req.JobID, req.TenantID, req.EventType, req.Status, req.Notes, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.JobEvent])
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByJob returns a job's events ordered by event_order ascending.
func (r *JobEventRepo) ListByJob(
	ctx context.Context,
	tenantID, jobID string,
) ([]*model.JobEvent, error) {
	var rowsOut []model.JobEvent
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			SELECT `+eventColumns+`
			FROM job_events
			WHERE tenant_id = $1 AND job_id = $2
			ORDER BY event_order ASC
		`, tenantID, jobID)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		rowsOut, qErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.JobEvent])
		return qErr
	}); err != nil {
		return nil, fmt.Errorf("failed to list job events: %w", err)
	}

	res := make([]*model.JobEvent, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Last returns the event with the maximum event_order for the job, ties broken
// by later creation timestamp.
func (r *JobEventRepo) Last(
	ctx context.Context,
	tenantID, jobID string,
) (*model.JobEvent, error) {
	var out model.JobEvent
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			SELECT `+eventColumns+`
			FROM job_events
			WHERE tenant_id = $1 AND job_id = $2
			ORDER BY event_order DESC, created_at DESC
			LIMIT 1
		`, tenantID, jobID)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.JobEvent])
		return qErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last job event: %w", err)
	}
	return &out, nil
}
