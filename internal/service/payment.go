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

// PaymentRepos groups the repositories payment reconciliation reads and writes.
type PaymentRepos struct {
	Jobs     core.JobRepository
	Settings core.SettingsRepository
}

// PaymentServiceOptions groups dependencies for PaymentService.
type PaymentServiceOptions struct {
	Repos    PaymentRepos
	Client   core.AccountingClient
	Defaults AccountCodeDefaults
}

// PaymentService reconciles payments: marking jobs paid internally, and
// applying payments against their external invoices with an idempotency guard.
type PaymentService struct {
	jobs     core.JobRepository
	settings core.SettingsRepository
	client   core.AccountingClient
	defaults AccountCodeDefaults

	logger       *slog.Logger
	timeProvider data.TimeProvider
}

// NewPaymentService constructs a new PaymentService.
func NewPaymentService(opts PaymentServiceOptions) *PaymentService {
	return &PaymentService{
		jobs:         opts.Repos.Jobs,
		settings:     opts.Repos.Settings,
		client:       opts.Client,
		defaults:     opts.Defaults,
		logger:       slog.Default().With("component", "payment_service"),
		timeProvider: data.RealTimeProvider{},
	}
}

// WithTimeProvider overrides the time source. Useful for tests.
func (s *PaymentService) WithTimeProvider(tp data.TimeProvider) *PaymentService {
	s.timeProvider = tp
	return s
}

// MarkPaid records the internal paid fields on a job. An existing paid record
// is only overwritten with the force flag; the clear flag nulls all paid
// fields unconditionally.
func (s *PaymentService) MarkPaid(
	ctx context.Context,
	tenantID, jobID string,
	req model.MarkPaidRequest,
	userID *string,
) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if req.Clear {
		job, err := s.jobs.ClearPaid(ctx, tenantID, jobID)
		if err != nil {
			return nil, s.translateJobErr(jobID, err)
		}
		return job, nil
	}

	job, err := s.jobs.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, s.translateJobErr(jobID, err)
	}
	if job.IsPaid() && !req.Force {
		return nil, apperrors.Conflictf("job %s is already marked paid", job.JobNumber)
	}

	paidAt := s.timeProvider.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	updated, err := s.jobs.SetPaid(ctx, tenantID, jobID, model.PaidRecord{
		PaidAt:        paidAt,
		PaidMethod:    model.ParsePaymentMethod(req.PaidMethod),
		PaidReference: req.PaidReference,
		PaidByUserID:  userID,
	})
	if err != nil {
		return nil, s.translateJobErr(jobID, err)
	}
	return updated, nil
}

// ApplyPayment applies a payment against the job's external invoice. Account
// jobs are never directly payable; a job already carrying an external payment
// id returns the prior result instead of creating a second payment.
func (s *PaymentService) ApplyPayment(
	ctx context.Context,
	tenantID, jobID string,
	req model.ApplyPaymentRequest,
	userID *string,
) (*model.ApplyPaymentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	job, err := s.jobs.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, s.translateJobErr(jobID, err)
	}

	if job.PaymentType == model.PaymentTypeAccount {
		return nil, apperrors.InvalidState(
			"account jobs accumulate onto a monthly invoice and never receive direct payments")
	}
	if job.XeroInvoiceID == nil {
		return nil, apperrors.Validationf("job %s has no linked invoice", job.JobNumber)
	}

	if job.XeroPaymentID != nil {
		return s.priorResult(ctx, tenantID, job)
	}

	invoice, err := s.client.GetInvoice(ctx, tenantID, *job.XeroInvoiceID)
	if err != nil {
		return nil, fmt.Errorf("fetch invoice: %w", err)
	}

	amount, err := resolvePaymentAmount(req.Amount, invoice)
	if err != nil {
		return nil, err
	}

	method := model.ParsePaymentMethod(req.PaidMethod)
	accountCode, err := s.resolveTargetAccount(ctx, tenantID, method)
	if err != nil {
		return nil, err
	}

	payment, err := s.client.CreatePayment(ctx, tenantID, model.CreatePaymentParams{
		InvoiceID:   invoice.ID,
		AccountCode: accountCode,
		Amount:      amount,
		Date:        model.DateOf(s.timeProvider.Now()),
	})
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	refreshed, err := s.client.GetInvoice(ctx, tenantID, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("refresh invoice after payment: %w", err)
	}

	updated, err := s.jobs.SetExternalPayment(ctx, tenantID, job.ID, core.PaymentLink{
		PaymentID:     payment.ID,
		InvoiceStatus: refreshed.Status,
		InvoiceNumber: refreshed.Number,
	})
	if err != nil {
		return nil, fmt.Errorf("record payment link: %w", err)
	}

	// Applying an external payment also marks the job paid internally unless a
	// paid record already exists.
	if !updated.IsPaid() {
		if _, paidErr := s.jobs.SetPaid(ctx, tenantID, job.ID, model.PaidRecord{
			PaidAt:        s.timeProvider.Now(),
			PaidMethod:    method,
			PaidReference: &payment.ID,
			PaidByUserID:  userID,
		}); paidErr != nil {
			return nil, fmt.Errorf("record paid fields: %w", paidErr)
		}
	}

	s.logger.InfoContext(ctx, "payment applied",
		"tenant_id", tenantID, "job_id", job.ID, "invoice_id", invoice.ID,
		"payment_id", payment.ID, "account_code", accountCode, "amount", amount)

	return &model.ApplyPaymentResult{
		PaymentID:      payment.ID,
		AccountCode:    accountCode,
		Amount:         amount,
		InvoiceID:      refreshed.ID,
		InvoiceNumber:  refreshed.Number,
		InvoiceStatus:  refreshed.Status,
		AmountDueAfter: refreshed.AmountDue,
	}, nil
}

// priorResult rebuilds the success payload for a payment that was already
// applied, without creating any new external write.
func (s *PaymentService) priorResult(
	ctx context.Context,
	tenantID string,
	job *model.Job,
) (*model.ApplyPaymentResult, error) {
	invoice, err := s.client.GetInvoice(ctx, tenantID, *job.XeroInvoiceID)
	if err != nil {
		return nil, fmt.Errorf("fetch invoice: %w", err)
	}
	return &model.ApplyPaymentResult{
		PaymentID:      *job.XeroPaymentID,
		InvoiceID:      invoice.ID,
		InvoiceNumber:  invoice.Number,
		InvoiceStatus:  invoice.Status,
		AmountDueAfter: invoice.AmountDue,
		AlreadyApplied: true,
	}, nil
}

// resolveTargetAccount maps the payment method to an account code and verifies
// the code exists in the external chart of accounts. The cash path additionally
// requires a bank-type account; the external system would reject the posting
// anyway, but pre-validation gives an actionable error.
func (s *PaymentService) resolveTargetAccount(
	ctx context.Context,
	tenantID string,
	method model.PaymentMethod,
) (string, error) {
	codes, err := resolveAccountCodes(ctx, s.settings, s.defaults, tenantID)
	if err != nil {
		return "", err
	}

	var code string
	switch method {
	case model.PaymentMethodCash:
		code = codes.bank
	case model.PaymentMethodCard:
		code = codes.cardClearing
	}

	account, err := s.client.GetAccountByCode(ctx, tenantID, code)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", apperrors.Validationf("account code %s does not exist in the chart of accounts", code)
		}
		return "", fmt.Errorf("validate account code: %w", err)
	}
	if method == model.PaymentMethodCash && !account.IsBank() {
		return "", apperrors.Validationf("account %s is type %s, cash payments require a bank account",
			account.Code, account.Type)
	}
	return account.Code, nil
}

// resolvePaymentAmount picks the explicit override when given, otherwise the
// invoice's outstanding amount-due.
func resolvePaymentAmount(override *decimal.Decimal, invoice *model.Invoice) (decimal.Decimal, error) {
	if override != nil {
		return *override, nil
	}
	if !invoice.AmountDue.IsPositive() {
		return decimal.Decimal{}, apperrors.Validationf(
			"invoice %s has nothing to pay and no amount was supplied", invoice.Number)
	}
	return invoice.AmountDue, nil
}

func (s *PaymentService) translateJobErr(jobID string, err error) error {
	if errors.Is(err, data.ErrJobNotFound) {
		return apperrors.NotFoundf("job %s not found", jobID)
	}
	return err
}
