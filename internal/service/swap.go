package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/skipflow/skipflow-go/internal/core"
	"github.com/skipflow/skipflow-go/internal/data"
	"github.com/skipflow/skipflow-go/internal/domain/model"
	apperrors "github.com/skipflow/skipflow-go/internal/errors"
)

// SwapServiceOptions groups dependencies for SwapService.
type SwapServiceOptions struct {
	Jobs     core.JobRepository
	Invoicer invoicer // Optional: accounting bridge for the new leg's invoice
}

// SwapService orchestrates skip exchanges: the on-site job becomes the collect
// leg, a new deliver leg is created, and both share a swap group and driver run
// group. The two-record write is transactional; invoicing the new leg is not,
// and its failure surfaces as a warning rather than voiding the swap.
type SwapService struct {
	jobs     core.JobRepository
	invoicer invoicer
	logger   *slog.Logger
}

// NewSwapService constructs a new SwapService.
func NewSwapService(opts SwapServiceOptions) *SwapService {
	return &SwapService{
		jobs:     opts.Jobs,
		invoicer: opts.Invoicer,
		logger:   slog.Default().With("component", "swap_service"),
	}
}

// CreateSwap validates the request, executes the transactional two-job write,
// and optionally invoices the new leg.
func (s *SwapService) CreateSwap(
	ctx context.Context,
	tenantID string,
	req *model.CreateSwapRequest,
) (*model.SwapResult, error) {
	if req == nil {
		return nil, apperrors.Validation("request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	swapDate, err := model.ParseDate(req.SwapDate)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	oldJob, err := s.jobs.GetByID(ctx, tenantID, req.OldJobID)
	if err != nil {
		if errors.Is(err, data.ErrJobNotFound) {
			return nil, apperrors.NotFoundf("job %s not found", req.OldJobID)
		}
		return nil, fmt.Errorf("get old job: %w", err)
	}
	if !oldJob.EligibleForSwap() {
		return nil, apperrors.InvalidStatef(
			"job %s is %s and cannot be swapped, the skip must be on site and uncollected",
			oldJob.JobNumber, oldJob.Status)
	}

	paymentType := oldJob.PaymentType
	if req.PaymentType != nil {
		paymentType = *req.PaymentType
	}

	record, err := s.jobs.ExecuteSwap(ctx, tenantID, core.SwapParams{
		OldJobID:      req.OldJobID,
		SwapGroupID:   uuid.NewString(),
		SwapDate:      swapDate,
		NewSkipTypeID: req.NewSkipTypeID,
		PriceIncVAT:   req.PriceIncVAT,
		PaymentType:   paymentType,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, data.ErrJobNotFound):
			return nil, apperrors.NotFoundf("job %s not found", req.OldJobID)
		case errors.Is(err, data.ErrNotSwappable):
			return nil, apperrors.InvalidStatef("job %s is no longer eligible for swap", req.OldJobID)
		default:
			return nil, fmt.Errorf("execute swap: %w", err)
		}
	}

	result := &model.SwapResult{
		SwapGroupID:    *record.NewJob.SwapGroupID,
		DriverRunGroup: record.DriverRunGroup,
		OldJob:         record.OldJob,
		NewJob:         record.NewJob,
	}
	s.logger.InfoContext(ctx, "swap created",
		"tenant_id", tenantID, "old_job_id", record.OldJob.ID, "new_job_id", record.NewJob.ID,
		"swap_group_id", result.SwapGroupID, "driver_run_group", result.DriverRunGroup)

	if !req.WantInvoice() || s.invoicer == nil {
		return result, nil
	}

	outcome, invErr := s.invoicer.EnsureInvoiceForJob(ctx, tenantID, record.NewJob)
	if invErr != nil {
		// The swap itself stands; the invoice can be raised later with
		// ensure-invoice.
		warning := invErr.Error()
		s.logger.WarnContext(ctx, "swap invoice failed",
			"tenant_id", tenantID, "new_job_id", record.NewJob.ID, "error", invErr)
		result.Invoice = &model.InvoiceOutcome{Status: model.InvoiceOutcomeFailed, Reason: &warning}
		result.InvoiceWarning = &warning
		return result, nil
	}
	result.Invoice = outcome

	if linked, getErr := s.jobs.GetByID(ctx, tenantID, record.NewJob.ID); getErr == nil {
		result.NewJob = linked
	}
	return result, nil
}
