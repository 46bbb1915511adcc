package data

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Counter scopes. Run-group counters are suffixed with the run date so each
// tenant-day gets its own sequence.
const (
	counterScopeJobNumber      = "job_number"
	counterScopeRunGroupPrefix = "run_group:"
)

// nextCounterValue atomically increments and returns the named per-tenant
// counter. The upsert takes a row lock, so concurrent callers serialize and
// never observe the same value.
func nextCounterValue(ctx context.Context, tx pgx.Tx, tenantID, scope string) (int64, error) {
	var value int64
	err := tx.QueryRow(ctx, `
		INSERT INTO tenant_counters (tenant_id, scope, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, scope)
		DO UPDATE SET last_value = tenant_counters.last_value + 1
		RETURNING last_value
	`, tenantID, scope).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("increment counter %s: %w", scope, err)
	}
	return value, nil
}

// formatJobNumber renders a counter value as a human-facing job number.
func formatJobNumber(n int64) string {
	return fmt.Sprintf("JOB-%05d", n)
}
