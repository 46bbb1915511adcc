package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/skipflow/skipflow-go/internal/core"
	"github.com/skipflow/skipflow-go/internal/data"
	"github.com/skipflow/skipflow-go/internal/domain/model"
	apperrors "github.com/skipflow/skipflow-go/internal/errors"
)

// invoicer is the slice of the accounting bridge that booking and swapping
// need. Optional: services run without it when accounting is not wired.
type invoicer interface {
	EnsureInvoiceForJob(ctx context.Context, tenantID string, job *model.Job) (*model.InvoiceOutcome, error)
}

// JobRepos groups the repositories the job service reads and writes.
type JobRepos struct {
	Jobs   core.JobRepository
	Events core.JobEventRepository
}

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Repos    JobRepos
	Invoicer invoicer // Optional: accounting bridge for booking invoices
}

// JobService owns the job lifecycle: booking, delivery and collection
// completion, and timeline reads.
type JobService struct {
	jobs     core.JobRepository
	events   core.JobEventRepository
	invoicer invoicer

	logger       *slog.Logger
	timeProvider data.TimeProvider
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) *JobService {
	return &JobService{
		jobs:         opts.Repos.Jobs,
		events:       opts.Repos.Events,
		invoicer:     opts.Invoicer,
		logger:       slog.Default().With("component", "job_service"),
		timeProvider: data.RealTimeProvider{},
	}
}

// WithTimeProvider overrides the time source. Useful for tests.
func (s *JobService) WithTimeProvider(tp data.TimeProvider) *JobService {
	s.timeProvider = tp
	return s
}

// BookingResult is the output of a booking. Invoice failure does not void the
// booking: the job exists and the failure surfaces as a warning.
type BookingResult struct {
	Job            *model.Job            `json:"job"`
	Invoice        *model.InvoiceOutcome `json:"invoice,omitempty"`
	InvoiceWarning *string               `json:"invoice_warning,omitempty"`
}

// Book creates a job and, unless disabled, runs the accounting bridge for it.
// Card bookings come back invoiced and paid; cash bookings invoiced and unpaid;
// account bookings accumulated onto the customer's monthly draft.
func (s *JobService) Book(ctx context.Context, tenantID string, req *model.CreateJobRequest) (*BookingResult, error) {
	if req == nil {
		return nil, apperrors.Validation("request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	job, err := s.jobs.Create(ctx, tenantID, req)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	result := &BookingResult{Job: job}

	if !req.WantInvoice() || s.invoicer == nil {
		return result, nil
	}

	outcome, invErr := s.invoicer.EnsureInvoiceForJob(ctx, tenantID, job)
	if invErr != nil {
		warning := invErr.Error()
		s.logger.WarnContext(ctx, "booking invoice failed",
			"tenant_id", tenantID, "job_id", job.ID, "error", invErr)
		result.Invoice = &model.InvoiceOutcome{Status: model.InvoiceOutcomeFailed, Reason: &warning}
		result.InvoiceWarning = &warning
		return result, nil
	}
	result.Invoice = outcome

	// Re-read so the returned job carries the accounting link fields.
	if linked, getErr := s.jobs.GetByID(ctx, tenantID, job.ID); getErr == nil {
		result.Job = linked
	}
	return result, nil
}

// JobWithTimeline is a job together with its ordered event history.
type JobWithTimeline struct {
	Job    *model.Job        `json:"job"`
	Events []*model.JobEvent `json:"events"`
}

// GetWithTimeline returns the job and its events ordered by event_order.
func (s *JobService) GetWithTimeline(ctx context.Context, tenantID, jobID string) (*JobWithTimeline, error) {
	job, err := s.jobs.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, s.translate(jobID, err)
	}
	events, err := s.events.ListByJob(ctx, tenantID, jobID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return &JobWithTimeline{Job: job, Events: events}, nil
}

// List returns jobs matching the filters, newest first.
func (s *JobService) List(ctx context.Context, tenantID string, opts model.JobListOptions) ([]*model.Job, error) {
	return s.jobs.List(ctx, tenantID, normalizeJobListOptions(opts))
}

// CompleteDelivery records the actual delivery. A nil timestamp means now.
func (s *JobService) CompleteDelivery(ctx context.Context, tenantID, jobID string, at *time.Time) (*model.Job, error) {
	when := s.timeProvider.Now()
	if at != nil {
		when = *at
	}
	job, err := s.jobs.SetDelivered(ctx, tenantID, jobID, when)
	if err != nil {
		return nil, s.translate(jobID, err)
	}
	s.logger.InfoContext(ctx, "delivery completed", "tenant_id", tenantID, "job_id", jobID)
	return job, nil
}

// CompleteCollection records the actual collection. A nil timestamp means now.
// Jobs whose collection is already recorded are rejected (replay safety).
func (s *JobService) CompleteCollection(ctx context.Context, tenantID, jobID string, at *time.Time) (*model.Job, error) {
	when := s.timeProvider.Now()
	if at != nil {
		when = *at
	}
	job, err := s.jobs.SetCollected(ctx, tenantID, jobID, when)
	if err != nil {
		return nil, s.translate(jobID, err)
	}
	s.logger.InfoContext(ctx, "collection completed", "tenant_id", tenantID, "job_id", jobID)
	return job, nil
}

// AppendNote appends a free-text note event to the job's timeline.
func (s *JobService) AppendNote(ctx context.Context, tenantID, jobID, note string) (*model.JobEvent, error) {
	if note == "" {
		return nil, apperrors.Validation("note text is required")
	}
	if _, err := s.jobs.GetByID(ctx, tenantID, jobID); err != nil {
		return nil, s.translate(jobID, err)
	}
	event, err := s.events.Append(ctx, model.AppendEventRequest{
		JobID:     jobID,
		TenantID:  tenantID,
		EventType: model.EventTypeNote,
		Status:    model.EventStatusCompleted,
		Notes:     &note,
	})
	if err != nil {
		return nil, fmt.Errorf("append note: %w", err)
	}
	return event, nil
}

func (s *JobService) translate(jobID string, err error) error {
	switch {
	case errors.Is(err, data.ErrJobNotFound):
		return apperrors.NotFoundf("job %s not found", jobID)
	case errors.Is(err, data.ErrAlreadyDelivered):
		return apperrors.InvalidState("delivery is already recorded for this job")
	case errors.Is(err, data.ErrAlreadyCollected):
		return apperrors.InvalidState("collection is already recorded for this job")
	case errors.Is(err, data.ErrInvalidTransition):
		return apperrors.InvalidState(err.Error())
	default:
		return err
	}
}

func normalizeJobListOptions(opts model.JobListOptions) model.JobListOptions {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}
