package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/skipflow/skipflow-go/internal/core"
	"github.com/skipflow/skipflow-go/internal/data"
	"github.com/skipflow/skipflow-go/internal/domain/model"
	apperrors "github.com/skipflow/skipflow-go/internal/errors"
)

// AccountCodeDefaults are the platform-wide fallback account codes, used when a
// tenant's invoice settings allow falling back.
type AccountCodeDefaults struct {
	CardClearingCode string
	BankAccountCode  string
	SalesAccountCode string
}

// AccountingRepos groups the repositories the accounting bridge reads and writes.
type AccountingRepos struct {
	Jobs     core.JobRepository
	Tenants  core.TenantRepository
	Settings core.SettingsRepository
}

// AccountingServiceOptions groups dependencies for AccountingService.
type AccountingServiceOptions struct {
	Repos    AccountingRepos
	Client   core.AccountingClient
	Defaults AccountCodeDefaults
}

// AccountingService is the bridge between jobs and the external accounting
// system: it ensures each job has the invoice its payment type calls for and
// keeps the job's external-reference fields synchronized.
type AccountingService struct {
	jobs     core.JobRepository
	tenants  core.TenantRepository
	settings core.SettingsRepository
	client   core.AccountingClient
	defaults AccountCodeDefaults

	logger       *slog.Logger
	timeProvider data.TimeProvider
}

// NewAccountingService constructs a new AccountingService.
func NewAccountingService(opts AccountingServiceOptions) *AccountingService {
	return &AccountingService{
		jobs:         opts.Repos.Jobs,
		tenants:      opts.Repos.Tenants,
		settings:     opts.Repos.Settings,
		client:       opts.Client,
		defaults:     opts.Defaults,
		logger:       slog.Default().With("component", "accounting_service"),
		timeProvider: data.RealTimeProvider{},
	}
}

// WithTimeProvider overrides the time source. Useful for tests.
func (s *AccountingService) WithTimeProvider(tp data.TimeProvider) *AccountingService {
	s.timeProvider = tp
	return s
}

// EnsureInvoiceRequest controls the ensure-invoice operation.
type EnsureInvoiceRequest struct {
	// SendEmail asks the accounting system to email the invoice to its contact
	// once it exists.
	SendEmail bool `json:"send_email,omitempty"`
}

// EnsureInvoice loads the job and runs the bridge for it.
func (s *AccountingService) EnsureInvoice(
	ctx context.Context,
	tenantID, jobID string,
	req EnsureInvoiceRequest,
) (*model.InvoiceOutcome, error) {
	job, err := s.getJob(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	outcome, err := s.EnsureInvoiceForJob(ctx, tenantID, job)
	if err != nil {
		return nil, err
	}
	if req.SendEmail && outcome.InvoiceID != nil {
		if emailErr := s.client.EmailInvoice(ctx, tenantID, *outcome.InvoiceID); emailErr != nil {
			return nil, fmt.Errorf("email invoice: %w", emailErr)
		}
	}
	return outcome, nil
}

// EnsureInvoiceForJob makes sure the external invoice a job's payment type calls
// for exists, creating or extending one as needed, and writes the external
// references back onto the job. A job that already carries an invoice id is
// never invoiced twice.
func (s *AccountingService) EnsureInvoiceForJob(
	ctx context.Context,
	tenantID string,
	job *model.Job,
) (*model.InvoiceOutcome, error) {
	if job.XeroInvoiceID != nil {
		reason := "job already has a linked invoice"
		return &model.InvoiceOutcome{
			Status:        model.InvoiceOutcomeSkipped,
			InvoiceID:     job.XeroInvoiceID,
			InvoiceNumber: job.XeroInvoiceNumber,
			InvoiceStatus: job.XeroInvoiceStatus,
			Reason:        &reason,
		}, nil
	}

	customer, err := s.tenants.GetCustomer(ctx, tenantID, job.CustomerID)
	if err != nil {
		if errors.Is(err, data.ErrCustomerNotFound) {
			return nil, apperrors.NotFoundf("customer %s not found", job.CustomerID)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	contact, err := s.resolveContact(ctx, tenantID, customer)
	if err != nil {
		return nil, err
	}

	codes, err := s.accountCodes(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	switch job.PaymentType {
	case model.PaymentTypeCard:
		return s.invoiceCardJob(ctx, tenantID, job, contact, codes)
	case model.PaymentTypeCash:
		return s.invoiceCashJob(ctx, tenantID, job, contact, codes)
	case model.PaymentTypeAccount:
		return s.invoiceAccountJob(ctx, tenantID, job, customer, contact, codes)
	default:
		return nil, apperrors.Validationf("unknown payment type %q", job.PaymentType)
	}
}

// invoiceCardJob raises an authorised invoice and immediately pays it into the
// card clearing account.
func (s *AccountingService) invoiceCardJob(
	ctx context.Context,
	tenantID string,
	job *model.Job,
	contact *model.Contact,
	codes invoiceCodes,
) (*model.InvoiceOutcome, error) {
	invoice, err := s.createJobInvoice(ctx, tenantID, job, contact, codes, model.InvoiceStatusAuthorised)
	if err != nil {
		return nil, err
	}

	payment, err := s.client.CreatePayment(ctx, tenantID, model.CreatePaymentParams{
		InvoiceID:   invoice.ID,
		AccountCode: codes.cardClearing,
		Amount:      invoice.AmountDue,
		Date:        model.DateOf(s.timeProvider.Now()),
	})
	if err != nil {
		return nil, fmt.Errorf("create clearing payment: %w", err)
	}

	// Re-fetch so the mirrored status reflects the payment.
	paid, err := s.client.GetInvoice(ctx, tenantID, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("refresh invoice after payment: %w", err)
	}
	if _, err := s.jobs.SetExternalPayment(ctx, tenantID, job.ID, core.PaymentLink{
		PaymentID:     payment.ID,
		InvoiceStatus: paid.Status,
		InvoiceNumber: paid.Number,
	}); err != nil {
		return nil, fmt.Errorf("record payment link: %w", err)
	}

	s.logger.InfoContext(ctx, "card job invoiced and paid",
		"tenant_id", tenantID, "job_id", job.ID, "invoice_id", paid.ID, "payment_id", payment.ID)
	return invoiceOutcome(model.InvoiceOutcomeCreated, paid), nil
}

func (s *AccountingService) invoiceCashJob(
	ctx context.Context,
	tenantID string,
	job *model.Job,
	contact *model.Contact,
	codes invoiceCodes,
) (*model.InvoiceOutcome, error) {
	invoice, err := s.createJobInvoice(ctx, tenantID, job, contact, codes, model.InvoiceStatusAuthorised)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "cash job invoiced",
		"tenant_id", tenantID, "job_id", job.ID, "invoice_id", invoice.ID)
	return invoiceOutcome(model.InvoiceOutcomeCreated, invoice), nil
}

// invoiceAccountJob accumulates the job onto the customer's monthly draft
// invoice, creating the draft on first use.
func (s *AccountingService) invoiceAccountJob(
	ctx context.Context,
	tenantID string,
	job *model.Job,
	customer *model.Customer,
	contact *model.Contact,
	codes invoiceCodes,
) (*model.InvoiceOutcome, error) {
	reference := model.MonthlyReference(customer.ID, s.timeProvider.Now())

	existing, err := s.client.FindInvoicesByReference(ctx, tenantID, reference)
	if err != nil {
		return nil, fmt.Errorf("find monthly invoice: %w", err)
	}

	switch len(existing) {
	case 0:
		invoice, createErr := s.client.CreateInvoice(ctx, tenantID, model.CreateInvoiceParams{
			ContactID: contact.ID,
			Status:    model.InvoiceStatusDraft,
			Reference: reference,
			Date:      model.DateOf(s.timeProvider.Now()),
			Lines:     []model.InvoiceLine{jobInvoiceLine(job, codes.sales)},
		})
		if createErr != nil {
			return nil, fmt.Errorf("create monthly invoice: %w", createErr)
		}
		if _, linkErr := s.linkInvoice(ctx, tenantID, job.ID, invoice); linkErr != nil {
			return nil, linkErr
		}
		return invoiceOutcome(model.InvoiceOutcomeCreated, invoice), nil
	case 1:
		invoice, lineErr := s.client.AddInvoiceLine(ctx, tenantID, existing[0].ID, jobInvoiceLine(job, codes.sales))
		if lineErr != nil {
			return nil, fmt.Errorf("append monthly invoice line: %w", lineErr)
		}
		if _, linkErr := s.linkInvoice(ctx, tenantID, job.ID, invoice); linkErr != nil {
			return nil, linkErr
		}
		return invoiceOutcome(model.InvoiceOutcomeUpdated, invoice), nil
	default:
		return nil, apperrors.Ambiguousf("%d invoices share reference %s, expected one", len(existing), reference)
	}
}

// ReconcileInvoiceLink locates the external invoice whose reference is the
// job's number and writes the link back onto the job. It refuses to pick among
// multiple matches.
func (s *AccountingService) ReconcileInvoiceLink(ctx context.Context, tenantID, jobID string) (*model.Job, error) {
	job, err := s.getJob(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}

	matches, err := s.client.FindInvoicesByReference(ctx, tenantID, job.JobNumber)
	if err != nil {
		return nil, fmt.Errorf("find invoice by reference: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, apperrors.NotFoundf("no invoice references job number %s", job.JobNumber)
	case 1:
		return s.linkInvoice(ctx, tenantID, job.ID, &matches[0])
	default:
		return nil, apperrors.Ambiguousf("%d invoices reference job number %s, expected one", len(matches), job.JobNumber)
	}
}

// EmailInvoice asks the accounting system to email the job's linked invoice.
func (s *AccountingService) EmailInvoice(ctx context.Context, tenantID, jobID string) error {
	job, err := s.getJob(ctx, tenantID, jobID)
	if err != nil {
		return err
	}
	if job.XeroInvoiceID == nil {
		return apperrors.Validation("job has no linked invoice")
	}
	return s.client.EmailInvoice(ctx, tenantID, *job.XeroInvoiceID)
}

// resolveContact finds the external contact for a customer by exact
// account-number match. Zero matches creates a contact; multiple matches are
// refused rather than guessed at.
func (s *AccountingService) resolveContact(
	ctx context.Context,
	tenantID string,
	customer *model.Customer,
) (*model.Contact, error) {
	if customer.AccountNumber != nil && *customer.AccountNumber != "" {
		matches, err := s.client.FindContactsByAccountNumber(ctx, tenantID, *customer.AccountNumber)
		if err != nil {
			return nil, fmt.Errorf("find contacts: %w", err)
		}
		switch len(matches) {
		case 0:
			// Fall through to create below.
		case 1:
			return &matches[0], nil
		default:
			return nil, apperrors.Ambiguousf(
				"%d contacts share account number %s, expected one", len(matches), *customer.AccountNumber)
		}
	}

	if customer.Email == nil || *customer.Email == "" {
		return nil, apperrors.Validationf("customer %s has no email address, cannot create accounting contact", customer.ID)
	}
	contact, err := s.client.CreateContact(ctx, tenantID, model.CreateContactParams{
		Name:          customer.Name,
		AccountNumber: customer.AccountNumber,
		Email:         *customer.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

func (s *AccountingService) createJobInvoice(
	ctx context.Context,
	tenantID string,
	job *model.Job,
	contact *model.Contact,
	codes invoiceCodes,
	status string,
) (*model.Invoice, error) {
	invoice, err := s.client.CreateInvoice(ctx, tenantID, model.CreateInvoiceParams{
		ContactID: contact.ID,
		Status:    status,
		Reference: job.JobNumber,
		Date:      model.DateOf(s.timeProvider.Now()),
		Lines:     []model.InvoiceLine{jobInvoiceLine(job, codes.sales)},
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	if _, linkErr := s.linkInvoice(ctx, tenantID, job.ID, invoice); linkErr != nil {
		return nil, linkErr
	}
	return invoice, nil
}

func (s *AccountingService) linkInvoice(
	ctx context.Context,
	tenantID, jobID string,
	invoice *model.Invoice,
) (*model.Job, error) {
	job, err := s.jobs.SetAccountingLink(ctx, tenantID, jobID, core.AccountingLink{
		InvoiceID:     invoice.ID,
		InvoiceNumber: invoice.Number,
		InvoiceStatus: invoice.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("link invoice: %w", err)
	}
	return job, nil
}

// invoiceCodes are the resolved per-tenant account codes for one bridge call.
type invoiceCodes struct {
	cardClearing string
	bank         string
	sales        string
}

// accountCodes resolves the tenant's account codes for one bridge call.
func (s *AccountingService) accountCodes(ctx context.Context, tenantID string) (invoiceCodes, error) {
	return resolveAccountCodes(ctx, s.settings, s.defaults, tenantID)
}

// resolveAccountCodes loads the tenant's invoice settings and applies platform
// defaults where the settings allow falling back. A missing settings row
// behaves as empty settings with fallback enabled.
func resolveAccountCodes(
	ctx context.Context,
	repo core.SettingsRepository,
	defaults AccountCodeDefaults,
	tenantID string,
) (invoiceCodes, error) {
	settings, err := repo.Get(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, data.ErrSettingsNotFound) {
			return invoiceCodes{}, fmt.Errorf("get invoice settings: %w", err)
		}
		settings = &model.InvoiceSettings{TenantID: tenantID, FallbackToDefaults: true}
	}

	codes := invoiceCodes{}
	if codes.cardClearing, err = resolveCode("card clearing", settings.CardClearingCode,
		defaults.CardClearingCode, settings.FallbackToDefaults); err != nil {
		return invoiceCodes{}, err
	}
	if codes.bank, err = resolveCode("bank account", settings.BankAccountCode,
		defaults.BankAccountCode, settings.FallbackToDefaults); err != nil {
		return invoiceCodes{}, err
	}
	if codes.sales, err = resolveCode("sales account", settings.SalesAccountCode,
		defaults.SalesAccountCode, settings.FallbackToDefaults); err != nil {
		return invoiceCodes{}, err
	}
	return codes, nil
}

func resolveCode(name, configured, fallback string, allowFallback bool) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if allowFallback && fallback != "" {
		return fallback, nil
	}
	return "", apperrors.Configurationf("missing %s code for tenant", name)
}

func (s *AccountingService) getJob(ctx context.Context, tenantID, jobID string) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, tenantID, jobID)
	if err != nil {
		if errors.Is(err, data.ErrJobNotFound) {
			return nil, apperrors.NotFoundf("job %s not found", jobID)
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// jobInvoiceLine builds the single VAT-inclusive line a job contributes to an
// invoice.
func jobInvoiceLine(job *model.Job, salesCode string) model.InvoiceLine {
	return model.InvoiceLine{
		Description: fmt.Sprintf("Skip hire %s, %s %s", job.JobNumber, job.SiteAddress1, job.SitePostcode),
		Quantity:    decimal.NewFromInt(1),
		UnitAmount:  job.PriceIncVAT,
		AccountCode: salesCode,
	}
}

func invoiceOutcome(status model.InvoiceOutcomeStatus, invoice *model.Invoice) *model.InvoiceOutcome {
	return &model.InvoiceOutcome{
		Status:        status,
		InvoiceID:     &invoice.ID,
		InvoiceNumber: &invoice.Number,
		InvoiceStatus: &invoice.Status,
	}
}
