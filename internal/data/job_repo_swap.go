package data

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/skipflow/skipflow-go/internal/core"
	"github.com/skipflow/skipflow-go/internal/data/pgxutil"
	"github.com/skipflow/skipflow-go/internal/domain/model"
)

// Sort keys within a swap run group: the driver collects the old skip before
// delivering the replacement.
const (
	swapSortCollect = 1
	swapSortDeliver = 2
)

// ExecuteSwap performs the swap write path in a single transaction: locks and
// re-validates the collect leg, allocates a shared run group for the date,
// schedules the collection on the old job, inserts the deliver leg copying the
// old job's customer, site, and driver, and appends the new job's scheduled
// delivery event. Either both legs are persisted or neither is.
func (r *JobRepo) ExecuteSwap(
	ctx context.Context,
	tenantID string,
	params core.SwapParams,
) (*core.SwapRecord, error) {
	now := r.timeProvider.Now().UTC()
	var rec core.SwapRecord
	if err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		oldJob, lockErr := lockJob(ctx, tx, tenantID, params.OldJobID)
		if lockErr != nil {
			return lockErr
		}
		if !oldJob.EligibleForSwap() {
			return fmt.Errorf("%w: status %s", ErrNotSwappable, oldJob.Status)
		}

		group, grpErr := nextCounterValue(ctx, tx, tenantID,
			counterScopeRunGroupPrefix+params.SwapDate.String())
		if grpErr != nil {
			return grpErr
		}
		runGroup := int(group)

		rows, qErr := tx.Query(ctx, `
			UPDATE jobs
			SET collection_date = $3, status = $4,
			    swap_group_id = $5, swap_role = $6,
			    driver_run_group = $7, driver_sort_key = $8,
			    updated_at = $9
			WHERE tenant_id = $1 AND id = $2
			RETURNING `+jobColumns,
			tenantID, params.OldJobID,
			params.SwapDate, model.JobStatusAwaitingCollection,
			params.SwapGroupID, model.SwapRoleCollect,
			runGroup, swapSortCollect,
			now,
		)
		if qErr != nil {
			return qErr
		}
		updatedOld, collErr := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		rows.Close()
		if collErr != nil {
			return collErr
		}

		seq, seqErr := nextCounterValue(ctx, tx, tenantID, counterScopeJobNumber)
		if seqErr != nil {
			return seqErr
		}

		rows, qErr = tx.Query(ctx, `
			INSERT INTO jobs (
				tenant_id, job_number, customer_id, skip_type_id,
				site_address1, site_address2, site_town, site_postcode,
				scheduled_date, status, payment_type, price_inc_vat,
				driver_id, notes,
				swap_group_id, swap_role, driver_run_group, driver_sort_key,
				created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
				$13, $14, $15, $16, $17, $18, $19, $19
			) RETURNING `+jobColumns,
			tenantID,
			formatJobNumber(seq),
			updatedOld.CustomerID,
			params.NewSkipTypeID,
			updatedOld.SiteAddress1,
			updatedOld.SiteAddress2,
			updatedOld.SiteTown,
			updatedOld.SitePostcode,
			params.SwapDate,
			model.JobStatusBooked,
			params.PaymentType,
			params.PriceIncVAT,
			updatedOld.DriverID,
			params.Notes,
			params.SwapGroupID,
			model.SwapRoleDeliver,
			runGroup,
			swapSortDeliver,
			now,
		)
		if qErr != nil {
			return qErr
		}
		newJob, collErr := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		rows.Close()
		if collErr != nil {
			return collErr
		}

		if _, evErr := appendEventTx(ctx, tx, model.AppendEventRequest{
			JobID:     newJob.ID,
			TenantID:  tenantID,
			EventType: model.EventTypeDelivery,
			Status:    model.EventStatusScheduled,
			Notes:     params.Notes,
		}, now); evErr != nil {
			return evErr
		}

		rec = core.SwapRecord{
			OldJob:         &updatedOld,
			NewJob:         &newJob,
			DriverRunGroup: runGroup,
		}
		return nil
	}}); err != nil {
		return nil, err
	}
	return &rec, nil
}
