package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skipflow/skipflow-go/internal/domain/model"
)

// Directory holds the ids of a seeded tenant and its reference rows, enough to
// create jobs against a real schema.
type Directory struct {
	TenantID   string
	CustomerID string
	DriverID   string
	SkipTypeID string
}

// SeedDirectory inserts a tenant with one customer, driver, and skip type and
// returns their ids.
func SeedDirectory(t TestingTB, db *sql.DB) Directory {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var d Directory
	if err := db.QueryRowContext(ctx,
		`INSERT INTO tenants (name) VALUES ('Acme Skips') RETURNING id`,
	).Scan(&d.TenantID); err != nil {
		t.Fatal("failed to seed tenant:", err)
	}
	if err := db.QueryRowContext(ctx,
		`INSERT INTO customers (tenant_id, name, account_number, email)
		 VALUES ($1, 'Builder Bros', 'ACC-100', 'billing@builderbros.test') RETURNING id`,
		d.TenantID,
	).Scan(&d.CustomerID); err != nil {
		t.Fatal("failed to seed customer:", err)
	}
	if err := db.QueryRowContext(ctx,
		`INSERT INTO drivers (tenant_id, name) VALUES ($1, 'Dana') RETURNING id`,
		d.TenantID,
	).Scan(&d.DriverID); err != nil {
		t.Fatal("failed to seed driver:", err)
	}
	if err := db.QueryRowContext(ctx,
		`INSERT INTO skip_types (tenant_id, name) VALUES ($1, '8yd') RETURNING id`,
		d.TenantID,
	).Scan(&d.SkipTypeID); err != nil {
		t.Fatal("failed to seed skip type:", err)
	}
	return d
}

// SeedMember links an identity-provider subject to the tenant.
func SeedMember(t TestingTB, db *sql.DB, tenantID, subject string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx,
		`INSERT INTO tenant_members (subject, tenant_id) VALUES ($1, $2)`,
		subject, tenantID,
	); err != nil {
		t.Fatal("failed to seed tenant member:", err)
	}
}

// JobRequestBuilder provides a fluent interface for building CreateJobRequest objects for testing.
type JobRequestBuilder struct {
	req *model.CreateJobRequest
}

// NewJobRequest creates a new JobRequestBuilder with sensible defaults.
func NewJobRequest(d Directory) *JobRequestBuilder {
	return &JobRequestBuilder{
		req: &model.CreateJobRequest{
			CustomerID:    d.CustomerID,
			SkipTypeID:    d.SkipTypeID,
			SiteAddress1:  "1 Quarry Lane",
			SiteTown:      "Milltown",
			SitePostcode:  "MT1 2AB",
			ScheduledDate: "2026-03-02",
			PaymentType:   model.PaymentTypeCash,
			PriceIncVAT:   decimal.NewFromInt(240),
			DriverID:      &d.DriverID,
		},
	}
}

// WithPaymentType sets the payment type.
func (b *JobRequestBuilder) WithPaymentType(pt model.PaymentType) *JobRequestBuilder {
	b.req.PaymentType = pt
	return b
}

// WithScheduledDate sets the scheduled delivery date.
func (b *JobRequestBuilder) WithScheduledDate(date string) *JobRequestBuilder {
	b.req.ScheduledDate = date
	return b
}

// WithPrice sets the job price.
func (b *JobRequestBuilder) WithPrice(price decimal.Decimal) *JobRequestBuilder {
	b.req.PriceIncVAT = price
	return b
}

// WithDriver sets the driver id.
func (b *JobRequestBuilder) WithDriver(driverID string) *JobRequestBuilder {
	b.req.DriverID = &driverID
	return b
}

// WithoutDriver clears the driver assignment.
func (b *JobRequestBuilder) WithoutDriver() *JobRequestBuilder {
	b.req.DriverID = nil
	return b
}

// WithoutInvoice disables booking-time invoicing.
func (b *JobRequestBuilder) WithoutInvoice() *JobRequestBuilder {
	f := false
	b.req.CreateInvoice = &f
	return b
}

// WithNotes sets free-text notes.
func (b *JobRequestBuilder) WithNotes(notes string) *JobRequestBuilder {
	b.req.Notes = &notes
	return b
}

// Build returns the constructed CreateJobRequest.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	return b.req
}
