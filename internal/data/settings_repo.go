package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/skipflow/skipflow-go/internal/data/pgxutil"
	"github.com/skipflow/skipflow-go/internal/domain/model"
)

// SettingsRepo stores per-tenant invoicing settings.
type SettingsRepo struct {
	DB *sql.DB
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{DB: db}
}

// Get retrieves a tenant's invoice settings.
func (r *SettingsRepo) Get(ctx context.Context, tenantID string) (*model.InvoiceSettings, error) {
	var out model.InvoiceSettings
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			SELECT tenant_id, card_clearing_code, bank_account_code, sales_account_code,
			       fallback_to_defaults, updated_at
			FROM invoice_settings
			WHERE tenant_id = $1
		`, tenantID)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.InvoiceSettings])
		return qErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get invoice settings: %w", err)
	}
	return &out, nil
}
