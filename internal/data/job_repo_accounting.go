package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/skipflow/skipflow-go/internal/core"
	"github.com/skipflow/skipflow-go/internal/data/pgxutil"
	"github.com/skipflow/skipflow-go/internal/domain/model"
)

// SetAccountingLink writes the external invoice reference fields back onto the job.
func (r *JobRepo) SetAccountingLink(
	ctx context.Context,
	tenantID, id string,
	link core.AccountingLink,
) (*model.Job, error) {
	return r.updateReturning(ctx, `
		UPDATE jobs
		SET xero_invoice_id = $3, xero_invoice_number = $4, xero_invoice_status = $5, updated_at = $6
		WHERE tenant_id = $1 AND id = $2
		RETURNING `+jobColumns,
		tenantID, id, link.InvoiceID, link.InvoiceNumber, link.InvoiceStatus,
		r.timeProvider.Now().UTC(),
	)
}

// SetExternalPayment records the external payment id and the refreshed invoice
// status on the job.
func (r *JobRepo) SetExternalPayment(
	ctx context.Context,
	tenantID, id string,
	link core.PaymentLink,
) (*model.Job, error) {
	return r.updateReturning(ctx, `
		UPDATE jobs
		SET xero_payment_id = $3, xero_invoice_status = $4, xero_invoice_number = $5, updated_at = $6
		WHERE tenant_id = $1 AND id = $2
		RETURNING `+jobColumns,
		tenantID, id, link.PaymentID, link.InvoiceStatus, link.InvoiceNumber,
		r.timeProvider.Now().UTC(),
	)
}

// SetPaid writes the internal paid-fields group as a unit.
func (r *JobRepo) SetPaid(
	ctx context.Context,
	tenantID, id string,
	rec model.PaidRecord,
) (*model.Job, error) {
	return r.updateReturning(ctx, `
		UPDATE jobs
		SET paid_at = $3, paid_method = $4, paid_reference = $5, paid_by_user_id = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2
		RETURNING `+jobColumns,
		tenantID, id, rec.PaidAt.UTC(), rec.PaidMethod, rec.PaidReference, rec.PaidByUserID,
		r.timeProvider.Now().UTC(),
	)
}

// ClearPaid nulls the whole paid-fields group.
func (r *JobRepo) ClearPaid(ctx context.Context, tenantID, id string) (*model.Job, error) {
	return r.updateReturning(ctx, `
		UPDATE jobs
		SET paid_at = NULL, paid_method = NULL, paid_reference = NULL, paid_by_user_id = NULL, updated_at = $3
		WHERE tenant_id = $1 AND id = $2
		RETURNING `+jobColumns,
		tenantID, id, r.timeProvider.Now().UTC(),
	)
}

// updateReturning runs a single-row UPDATE ... RETURNING and maps the no-row
// case to ErrJobNotFound.
func (r *JobRepo) updateReturning(
	ctx context.Context,
	query string,
	args ...any,
) (*model.Job, error) {
	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, query, args...)
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
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return &out, nil
}
