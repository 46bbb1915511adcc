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

// TenantRepo provides database operations for the tenant directory.
type TenantRepo struct {
	DB *sql.DB
}

// NewTenantRepo creates a new TenantRepo.
func NewTenantRepo(db *sql.DB) *TenantRepo {
	return &TenantRepo{DB: db}
}

// GetByID retrieves a tenant by id.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	var out model.Tenant
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			SELECT id, name, created_at FROM tenants WHERE id = $1
		`, id)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Tenant])
		return qErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return &out, nil
}

// ResolveSubject maps an authenticated caller to their tenant via the
// membership table.
func (r *TenantRepo) ResolveSubject(ctx context.Context, subject string) (*model.Tenant, error) {
	var out model.Tenant
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			SELECT t.id, t.name, t.created_at
			FROM tenants t
			JOIN tenant_members m ON m.tenant_id = t.id
			WHERE m.subject = $1
		`, subject)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Tenant])
		return qErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to resolve subject: %w", err)
	}
	return &out, nil
}

// GetCustomer retrieves a customer within the tenant.
func (r *TenantRepo) GetCustomer(
	ctx context.Context,
	tenantID, customerID string,
) (*model.Customer, error) {
	var out model.Customer
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			SELECT id, tenant_id, name, account_number, email, created_at
			FROM customers
			WHERE tenant_id = $1 AND id = $2
		`, tenantID, customerID)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Customer])
		return qErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &out, nil
}
