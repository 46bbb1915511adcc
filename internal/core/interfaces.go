package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skipflow/skipflow-go/internal/domain/model"
)

// This file contains repository and client interface definitions (ports in
// hexagonal architecture). These interfaces define the contracts between the
// service layer and the data/adapter layers. Services depend on these
// interfaces, not concrete implementations.

// JobRepository defines the interface for job data operations. Every method is
// tenant-scoped: rows belonging to other tenants are invisible.
type JobRepository interface {
	Create(ctx context.Context, tenantID string, req *model.CreateJobRequest) (*model.Job, error)
	GetByID(ctx context.Context, tenantID, id string) (*model.Job, error)
	List(ctx context.Context, tenantID string, opts model.JobListOptions) ([]*model.Job, error)
	// ListForRun returns jobs with outstanding work for a driver on a date,
	// ordered by driver_run_group then driver_sort_key.
	ListForRun(ctx context.Context, tenantID string, params RunQueryParams) ([]*model.Job, error)

	// SetDelivered records the actual delivery timestamp, transitions the job to
	// delivered, and appends a delivery event, all in one transaction.
	SetDelivered(ctx context.Context, tenantID, id string, at time.Time) (*model.Job, error)
	// SetCollected records the actual collection timestamp, transitions the job
	// to collected, and appends a collection event, all in one transaction.
	// Jobs whose collection is already recorded are rejected.
	SetCollected(ctx context.Context, tenantID, id string, at time.Time) (*model.Job, error)
	// Cancel transitions a non-terminal job to cancelled.
	Cancel(ctx context.Context, tenantID, id string, reason *string) (*model.Job, error)

	// ExecuteSwap performs the one multi-record write path: updates the collect
	// leg, allocates a shared driver run group, inserts the deliver leg, and
	// appends its delivery event, all inside a single transaction. Both legs
	// exist afterwards or neither does.
	ExecuteSwap(ctx context.Context, tenantID string, params SwapParams) (*SwapRecord, error)

	// SetAccountingLink writes the external invoice reference fields back onto
	// the job.
	SetAccountingLink(ctx context.Context, tenantID, id string, link AccountingLink) (*model.Job, error)
	// SetExternalPayment records the external payment id and refreshed invoice
	// status on the job.
	SetExternalPayment(ctx context.Context, tenantID, id string, link PaymentLink) (*model.Job, error)

	// SetPaid writes the internal paid-fields group.
	SetPaid(ctx context.Context, tenantID, id string, rec model.PaidRecord) (*model.Job, error)
	// ClearPaid nulls all paid fields unconditionally.
	ClearPaid(ctx context.Context, tenantID, id string) (*model.Job, error)
}

// RunQueryParams selects a driver run.
type RunQueryParams struct {
	DriverID string
	Date     model.Date
}

// SwapParams carries the validated inputs of a swap into the data layer. Site
// and customer fields for the deliver leg are copied from the collect leg
// inside the transaction.
type SwapParams struct {
	OldJobID      string
	SwapGroupID   string
	SwapDate      model.Date
	NewSkipTypeID string
	PriceIncVAT   decimal.Decimal
	PaymentType   model.PaymentType
	Notes         *string
}

// AccountingLink groups the external invoice reference fields.
type AccountingLink struct {
	InvoiceID     string
	InvoiceNumber string
	InvoiceStatus string
}

// PaymentLink groups the external payment reference fields written after a
// successful payment application.
type PaymentLink struct {
	PaymentID     string
	InvoiceStatus string
	InvoiceNumber string
}

// SwapRecord is the data layer's result of a swap transaction.
type SwapRecord struct {
	OldJob         *model.Job
	NewJob         *model.Job
	DriverRunGroup int
}

// JobEventRepository defines the interface for the append-only job timeline.
type JobEventRepository interface {
	// Append inserts a timeline event with event_order = previous max + 1 for
	// the job.
	Append(ctx context.Context, req model.AppendEventRequest) (*model.JobEvent, error)
	// ListByJob returns a job's events ordered by event_order ascending.
	ListByJob(ctx context.Context, tenantID, jobID string) ([]*model.JobEvent, error)
	// Last returns the event with the maximum event_order for the job, ties
	// broken by later creation timestamp.
	Last(ctx context.Context, tenantID, jobID string) (*model.JobEvent, error)
}

// TenantRepository defines the interface for tenant directory data.
type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*model.Tenant, error)
	// ResolveSubject maps an authenticated caller (IdP subject) to their tenant.
	ResolveSubject(ctx context.Context, subject string) (*model.Tenant, error)
	GetCustomer(ctx context.Context, tenantID, customerID string) (*model.Customer, error)
}

// ConnectionRepository stores per-tenant external accounting credentials.
// Implementations encrypt token values at rest.
type ConnectionRepository interface {
	Get(ctx context.Context, tenantID string) (*model.AccountingConnection, error)
	// Save persists the connection (tokens encrypted) before the new credentials
	// are used.
	Save(ctx context.Context, conn *model.AccountingConnection) error
}

// SettingsRepository stores per-tenant invoicing settings.
type SettingsRepository interface {
	Get(ctx context.Context, tenantID string) (*model.InvoiceSettings, error)
}

// AccountingClient is the outbound port to the external accounting system. All
// calls are tenant-scoped: the implementation resolves the tenant's credentials
// and organization id.
type AccountingClient interface {
	// FindContactsByAccountNumber returns contacts whose account number matches
	// exactly.
	FindContactsByAccountNumber(ctx context.Context, tenantID, accountNumber string) ([]model.Contact, error)
	CreateContact(ctx context.Context, tenantID string, params model.CreateContactParams) (*model.Contact, error)

	CreateInvoice(ctx context.Context, tenantID string, params model.CreateInvoiceParams) (*model.Invoice, error)
	GetInvoice(ctx context.Context, tenantID, invoiceID string) (*model.Invoice, error)
	// FindInvoicesByReference returns accounts-receivable invoices whose
	// reference matches exactly.
	FindInvoicesByReference(ctx context.Context, tenantID, reference string) ([]model.Invoice, error)
	// AddInvoiceLine appends a line item to an existing draft invoice.
	AddInvoiceLine(ctx context.Context, tenantID, invoiceID string, line model.InvoiceLine) (*model.Invoice, error)
	EmailInvoice(ctx context.Context, tenantID, invoiceID string) error

	CreatePayment(ctx context.Context, tenantID string, params model.CreatePaymentParams) (*model.ExternalPayment, error)
	GetAccountByCode(ctx context.Context, tenantID, code string) (*model.Account, error)
}

// TenantCache caches tenant-directory resolutions for a short TTL.
type TenantCache interface {
	Get(ctx context.Context, subject string) (*model.Tenant, error)
	Set(ctx context.Context, subject string, tenant *model.Tenant, ttl time.Duration) error
}
