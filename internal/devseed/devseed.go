// Package devseed populates a development database with a demo tenant and a
// realistic week of skip-hire work. It is idempotent per tenant name and must
// never run against production data.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skipflow/skipflow-go/internal/data"
	"github.com/skipflow/skipflow-go/internal/domain/model"
)

const demoTenantName = "Milltown Skips (demo)"

// Seed creates the demo tenant with customers, drivers, skip types, and a
// handful of jobs in various lifecycle states. Running it twice is a no-op.
func Seed(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	tenantID, created, err := ensureTenant(ctx, db)
	if err != nil {
		return err
	}
	if !created {
		logger.InfoContext(ctx, "demo tenant already seeded", "tenant_id", tenantID)
		return nil
	}

	if err := seedMember(ctx, db, tenantID, "dev-user"); err != nil {
		return err
	}

	customers, err := seedCustomers(ctx, db, tenantID)
	if err != nil {
		return err
	}
	drivers, err := seedDrivers(ctx, db, tenantID)
	if err != nil {
		return err
	}
	skipTypes, err := seedSkipTypes(ctx, db, tenantID)
	if err != nil {
		return err
	}

	if err := seedJobs(ctx, db, tenantID, customers, drivers, skipTypes); err != nil {
		return err
	}

	logger.InfoContext(ctx, "demo tenant seeded",
		"tenant_id", tenantID,
		"customers", len(customers),
		"drivers", len(drivers),
		"skip_types", len(skipTypes))
	return nil
}

func ensureTenant(ctx context.Context, db *sql.DB) (string, bool, error) {
	var id string
	err := db.QueryRowContext(ctx,
		`SELECT id FROM tenants WHERE name = $1`, demoTenantName).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != sql.ErrNoRows {
		return "", false, fmt.Errorf("look up demo tenant: %w", err)
	}

	err = db.QueryRowContext(ctx,
		`INSERT INTO tenants (name) VALUES ($1) RETURNING id`, demoTenantName).Scan(&id)
	if err != nil {
		return "", false, fmt.Errorf("create demo tenant: %w", err)
	}
	return id, true, nil
}

func seedMember(ctx context.Context, db *sql.DB, tenantID, subject string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO tenant_members (subject, tenant_id)
		VALUES ($1, $2)
		ON CONFLICT (subject) DO NOTHING`, subject, tenantID)
	if err != nil {
		return fmt.Errorf("seed tenant member: %w", err)
	}
	return nil
}

func seedCustomers(ctx context.Context, db *sql.DB, tenantID string) ([]string, error) {
	rows := []struct {
		name    string
		account string
		email   string
	}{
		{"Builder Bros Ltd", "ACC-100", "billing@builderbros.test"},
		{"Greenfield Landscaping", "ACC-101", "accounts@greenfield.test"},
		{"Mrs Patel", "", "priya.patel@example.test"},
	}
	ids := make([]string, 0, len(rows))
	for _, c := range rows {
		var id string
		var account, email *string
		if c.account != "" {
			account = &c.account
		}
		if c.email != "" {
			email = &c.email
		}
		err := db.QueryRowContext(ctx, `
			INSERT INTO customers (tenant_id, name, account_number, email)
			VALUES ($1, $2, $3, $4) RETURNING id`,
			tenantID, c.name, account, email).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("seed customer %s: %w", c.name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedDrivers(ctx context.Context, db *sql.DB, tenantID string) ([]string, error) {
	names := []string{"Dave Hollis", "Sam Okafor"}
	ids := make([]string, 0, len(names))
	for _, name := range names {
		var id string
		err := db.QueryRowContext(ctx, `
			INSERT INTO drivers (tenant_id, name) VALUES ($1, $2) RETURNING id`,
			tenantID, name).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("seed driver %s: %w", name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedSkipTypes(ctx context.Context, db *sql.DB, tenantID string) ([]string, error) {
	names := []string{"4 yard mini", "8 yard builders", "12 yard maxi"}
	ids := make([]string, 0, len(names))
	for _, name := range names {
		var id string
		err := db.QueryRowContext(ctx, `
			INSERT INTO skip_types (tenant_id, name) VALUES ($1, $2) RETURNING id`,
			tenantID, name).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("seed skip type %s: %w", name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedJobs(
	ctx context.Context,
	db *sql.DB,
	tenantID string,
	customers, drivers, skipTypes []string,
) error {
	repo := data.NewJobRepo(db)
	today := time.Now().UTC()
	dateStr := func(offset int) string {
		return today.AddDate(0, 0, offset).Format("2006-01-02")
	}

	bookings := []struct {
		customer  int
		skipType  int
		driver    int
		offset    int
		payment   model.PaymentType
		price     string
		address   string
		town      string
		postcode  string
		delivered bool
	}{
		{0, 1, 0, 0, model.PaymentTypeAccount, "240.00", "1 Quarry Lane", "Milltown", "MT1 2AB", true},
		{0, 2, 0, 1, model.PaymentTypeAccount, "320.00", "Unit 4, Trade Park", "Milltown", "MT2 4CD", false},
		{1, 1, 1, 0, model.PaymentTypeCard, "250.00", "Greenfield Yard", "Ashworth", "AS3 6EF", true},
		{2, 0, 1, 2, model.PaymentTypeCash, "180.00", "14 Orchard Close", "Milltown", "MT1 8GH", false},
	}

	for _, b := range bookings {
		job, err := repo.Create(ctx, tenantID, &model.CreateJobRequest{
			CustomerID:    customers[b.customer],
			SkipTypeID:    skipTypes[b.skipType],
			DriverID:      &drivers[b.driver],
			SiteAddress1:  b.address,
			SiteTown:      b.town,
			SitePostcode:  b.postcode,
			ScheduledDate: dateStr(b.offset),
			PaymentType:   b.payment,
			PriceIncVAT:   decimal.RequireFromString(b.price),
		})
		if err != nil {
			return fmt.Errorf("seed job at %s: %w", b.address, err)
		}
		if b.delivered {
			if _, err := repo.SetDelivered(ctx, tenantID, job.ID, today); err != nil {
				return fmt.Errorf("mark seeded job delivered: %w", err)
			}
		}
	}
	return nil
}
