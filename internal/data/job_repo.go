package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/skipflow/skipflow-go/internal/core"
	"github.com/skipflow/skipflow-go/internal/data/database"
	"github.com/skipflow/skipflow-go/internal/data/pgxutil"
	"github.com/skipflow/skipflow-go/internal/domain/model"
)

// jobColumns is the canonical column list for jobs queries and RETURNING
// clauses. Order matches the model.Job db tags.
const jobColumns = `id, tenant_id, job_number, customer_id, skip_type_id,
	site_address1, site_address2, site_town, site_postcode,
	scheduled_date, collection_date, delivered_at, collected_at,
	status, payment_type, price_inc_vat, driver_id, notes,
	swap_group_id, swap_role, driver_run_group, driver_sort_key,
	xero_invoice_id, xero_invoice_number, xero_invoice_status, xero_payment_id,
	paid_at, paid_method, paid_reference, paid_by_user_id,
	created_at, updated_at`

// JobRepo provides database operations for jobs. All methods are tenant-scoped.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a new JobRepo with real time provider.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewJobRepoWithTimeProvider creates a new JobRepo with a custom time provider (useful for tests).
func NewJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobRepo {
	return &JobRepo{DB: db, timeProvider: tp}
}

// Create allocates the next job number for the tenant, inserts the job, and
// appends its scheduled delivery event in one transaction.
func (r *JobRepo) Create(
	ctx context.Context,
	tenantID string,
	req *model.CreateJobRequest,
) (*model.Job, error) {
	if req == nil {
		return nil, errors.New("create job request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	scheduled, err := model.ParseDate(req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("scheduled_date: %w", err)
	}

	now := r.timeProvider.Now().UTC()
	var out model.Job
	if err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		seq, seqErr := nextCounterValue(ctx, tx, tenantID, counterScopeJobNumber)
		if seqErr != nil {
			return seqErr
		}
		rows, qErr := tx.Query(ctx, `
			INSERT INTO jobs (
				tenant_id, job_number, customer_id, skip_type_id,
				site_address1, site_address2, site_town, site_postcode,
				scheduled_date, status, payment_type, price_inc_vat,
				driver_id, notes, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15
			) RETURNING `+jobColumns,
			tenantID,
			formatJobNumber(seq),
			req.CustomerID,
			req.SkipTypeID,
			req.SiteAddress1,
			req.SiteAddress2,
			req.SiteTown,
			req.SitePostcode,
			scheduled,
			model.JobStatusBooked,
			req.PaymentType,
			req.PriceIncVAT,
			req.DriverID,
			req.Notes,
			now,
		)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		if qErr != nil {
			return qErr
		}

		_, evErr := appendEventTx(ctx, tx, model.AppendEventRequest{
			JobID:     out.ID,
			TenantID:  tenantID,
			EventType: model.EventTypeDelivery,
			Status:    model.EventStatusScheduled,
		}, now)
		return evErr
	}}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByID retrieves a job by id within the tenant.
func (r *JobRepo) GetByID(ctx context.Context, tenantID, id string) (*model.Job, error) {
	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx,
			`SELECT `+jobColumns+` FROM jobs WHERE tenant_id = $1 AND id = $2`,
			tenantID, id,
		)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return qErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job by ID: %w", err)
	}
	return &out, nil
}

// List retrieves jobs for a tenant with optional filters and pagination, most
// recently created first.
func (r *JobRepo) List(
	ctx context.Context,
	tenantID string,
	opts model.JobListOptions,
) ([]*model.Job, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	conds := []database.Condition{
		database.WhereCond("tenant_id", database.Equal, tenantID),
	}
	if opts.Status != nil {
		conds = append(conds, database.WhereCond("status", database.Equal, *opts.Status))
	}
	if opts.DriverID != nil {
		conds = append(conds, database.WhereCond("driver_id", database.Equal, *opts.DriverID))
	}
	if opts.Date != nil {
		conds = append(conds, database.WhereRawCond(
			"(scheduled_date = $1 OR collection_date = $1)", *opts.Date,
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("jobs",
		database.WithConditions(conds...),
		database.WithOrderBy("created_at", "DESC"),
		database.WithLimit(limit),
		database.WithOffset(offset),
	))

	var rowsOut []model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, query, args...)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		rowsOut, qErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return qErr
	}); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return toJobPtrs(rowsOut), nil
}

// ListForRun returns the driver's outstanding stops for a date: undelivered
// jobs scheduled for delivery that day plus uncollected jobs scheduled for
// collection that day. Swap pairs stay adjacent via their shared run group.
func (r *JobRepo) ListForRun(
	ctx context.Context,
	tenantID string,
	params core.RunQueryParams,
) ([]*model.Job, error) {
	var rowsOut []model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			SELECT `+jobColumns+`
			FROM jobs
			WHERE tenant_id = $1 AND driver_id = $2
			  AND status NOT IN ('cancelled', 'collected')
			  AND (
			    (scheduled_date = $3 AND delivered_at IS NULL)
			    OR (collection_date = $3 AND collected_at IS NULL)
			  )
			ORDER BY driver_run_group ASC NULLS LAST, driver_sort_key ASC NULLS LAST, created_at ASC
		`, tenantID, params.DriverID, params.Date)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		rowsOut, qErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return qErr
	}); err != nil {
		return nil, fmt.Errorf("failed to list run jobs: %w", err)
	}
	return toJobPtrs(rowsOut), nil
}

// SetDelivered records the delivery timestamp, transitions the job to
// delivered, and appends the completed delivery event, all in one transaction.
func (r *JobRepo) SetDelivered(
	ctx context.Context,
	tenantID, id string,
	at time.Time,
) (*model.Job, error) {
	now := r.timeProvider.Now().UTC()
	var out model.Job
	if err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		job, lockErr := lockJob(ctx, tx, tenantID, id)
		if lockErr != nil {
			return lockErr
		}
		if job.DeliveredAt != nil {
			return ErrAlreadyDelivered
		}
		if !job.Status.CanTransition(model.JobStatusDelivered) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, job.Status, model.JobStatusDelivered)
		}

		rows, qErr := tx.Query(ctx, `
			UPDATE jobs
			SET delivered_at = $3, status = $4, updated_at = $5
			WHERE tenant_id = $1 AND id = $2
			RETURNING `+jobColumns,
			tenantID, id, at.UTC(), model.JobStatusDelivered, now,
		)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		if qErr != nil {
			return qErr
		}

		_, evErr := appendEventTx(ctx, tx, model.AppendEventRequest{
			JobID:     id,
			TenantID:  tenantID,
			EventType: model.EventTypeDelivery,
			Status:    model.EventStatusCompleted,
		}, now)
		return evErr
	}}); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetCollected records the collection timestamp, transitions the job to
// collected, and appends the completed collection event, all in one
// transaction. A job whose collection is already recorded is rejected so a
// replayed completion cannot overwrite the original timestamp.
func (r *JobRepo) SetCollected(
	ctx context.Context,
	tenantID, id string,
	at time.Time,
) (*model.Job, error) {
	now := r.timeProvider.Now().UTC()
	var out model.Job
	if err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		job, lockErr := lockJob(ctx, tx, tenantID, id)
		if lockErr != nil {
			return lockErr
		}
		if job.CollectedAt != nil {
			return ErrAlreadyCollected
		}
		if !job.Status.CanTransition(model.JobStatusCollected) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, job.Status, model.JobStatusCollected)
		}

		rows, qErr := tx.Query(ctx, `
			UPDATE jobs
			SET collected_at = $3, status = $4, updated_at = $5
			WHERE tenant_id = $1 AND id = $2
			RETURNING `+jobColumns,
			tenantID, id, at.UTC(), model.JobStatusCollected, now,
		)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		if qErr != nil {
			return qErr
		}

		_, evErr := appendEventTx(ctx, tx, model.AppendEventRequest{
			JobID:     id,
			TenantID:  tenantID,
			EventType: model.EventTypeCollection,
			Status:    model.EventStatusCompleted,
		}, now)
		return evErr
	}}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel transitions a non-terminal job to cancelled and appends a note event
// recording the cancellation.
func (r *JobRepo) Cancel(ctx context.Context, tenantID, id string, reason *string) (*model.Job, error) {
	now := r.timeProvider.Now().UTC()
	var out model.Job
	if err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		job, lockErr := lockJob(ctx, tx, tenantID, id)
		if lockErr != nil {
			return lockErr
		}
		if !job.Status.CanTransition(model.JobStatusCancelled) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, job.Status, model.JobStatusCancelled)
		}

		rows, qErr := tx.Query(ctx, `
			UPDATE jobs
			SET status = $3, updated_at = $4
			WHERE tenant_id = $1 AND id = $2
			RETURNING `+jobColumns,
			tenantID, id, model.JobStatusCancelled, now,
		)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		if qErr != nil {
			return qErr
		}

		_, evErr := appendEventTx(ctx, tx, model.AppendEventRequest{
			JobID:     id,
			TenantID:  tenantID,
			EventType: model.EventTypeNote,
			Status:    model.EventStatusCompleted,
			Notes:     reason,
		}, now)
		return evErr
	}}); err != nil {
		return nil, err
	}
	return &out, nil
}

// lockJob selects a job row FOR UPDATE so status checks and the following
// write see a consistent row under concurrency.
func lockJob(ctx context.Context, tx pgx.Tx, tenantID, id string) (*model.Job, error) {
	rows, err := tx.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE tenant_id = $1 AND id = $2 FOR UPDATE`,
		tenantID, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	job, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func toJobPtrs(rowsOut []model.Job) []*model.Job {
	res := make([]*model.Job, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res
}
