package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skipflow/skipflow-go/internal/data"
	"github.com/skipflow/skipflow-go/internal/domain/model"
	apperrors "github.com/skipflow/skipflow-go/internal/errors"
	"github.com/skipflow/skipflow-go/internal/mocks"
)

type jobServiceMocks struct {
	jobs   *mocks.MockJobRepository
	events *mocks.MockJobEventRepository
}

func newJobService(ctrl *gomock.Controller, inv invoicer) (*JobService, jobServiceMocks) {
	m := jobServiceMocks{
		jobs:   mocks.NewMockJobRepository(ctrl),
		events: mocks.NewMockJobEventRepository(ctrl),
	}
	svc := NewJobService(JobServiceOptions{
		Repos:    JobRepos{Jobs: m.jobs, Events: m.events},
		Invoicer: inv,
	}).WithTimeProvider(data.FixedTimeProvider{Fixed: svcNow})
	return svc, m
}

func validBookingRequest() *model.CreateJobRequest {
	return &model.CreateJobRequest{
		CustomerID:    "cust-1",
		SkipTypeID:    "skip-8yd",
		SiteAddress1:  "1 Quarry Lane",
		SiteTown:      "Milltown",
		SitePostcode:  "MT1 2AB",
		ScheduledDate: "2026-03-02",
		PaymentType:   model.PaymentTypeCash,
		PriceIncVAT:   decimal.RequireFromString("240"),
	}
}

func TestJobService_BookWithoutInvoicer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newJobService(ctrl, nil)
	m.jobs.EXPECT().Create(gomock.Any(), testTenantID, gomock.Any()).Return(testJob(), nil)

	result, err := svc.Book(context.Background(), testTenantID, validBookingRequest())
	require.NoError(t, err)
	assert.Equal(t, "job-1", result.Job.ID)
	assert.Nil(t, result.Invoice)
	assert.Nil(t, result.InvoiceWarning)
}

func TestJobService_BookRunsAccountingBridge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoiceID := "inv-1"
	inv := &fakeInvoicer{outcome: &model.InvoiceOutcome{Status: model.InvoiceOutcomeCreated, InvoiceID: &invoiceID}}
	svc, m := newJobService(ctrl, inv)
	linked := testJob(func(j *model.Job) { j.XeroInvoiceID = &invoiceID })

	m.jobs.EXPECT().Create(gomock.Any(), testTenantID, gomock.Any()).Return(testJob(), nil)
	m.jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(linked, nil)

	result, err := svc.Book(context.Background(), testTenantID, validBookingRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)
	require.NotNil(t, result.Invoice)
	assert.Equal(t, model.InvoiceOutcomeCreated, result.Invoice.Status)
	require.NotNil(t, result.Job.XeroInvoiceID)
	assert.Equal(t, invoiceID, *result.Job.XeroInvoiceID)
}

func TestJobService_BookSkipsInvoiceWhenDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inv := &fakeInvoicer{outcome: &model.InvoiceOutcome{Status: model.InvoiceOutcomeCreated}}
	svc, m := newJobService(ctrl, inv)
	noInvoice := false
	req := validBookingRequest()
	req.CreateInvoice = &noInvoice

	m.jobs.EXPECT().Create(gomock.Any(), testTenantID, gomock.Any()).Return(testJob(), nil)

	result, err := svc.Book(context.Background(), testTenantID, req)
	require.NoError(t, err)
	assert.Zero(t, inv.calls)
	assert.Nil(t, result.Invoice)
}

func TestJobService_BookInvoiceFailureIsAWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inv := &fakeInvoicer{err: errors.New("accounting unavailable")}
	svc, m := newJobService(ctrl, inv)

	m.jobs.EXPECT().Create(gomock.Any(), testTenantID, gomock.Any()).Return(testJob(), nil)

	result, err := svc.Book(context.Background(), testTenantID, validBookingRequest())
	require.NoError(t, err)
	assert.Equal(t, "job-1", result.Job.ID)
	require.NotNil(t, result.Invoice)
	assert.Equal(t, model.InvoiceOutcomeFailed, result.Invoice.Status)
	require.NotNil(t, result.InvoiceWarning)
	assert.Contains(t, *result.InvoiceWarning, "accounting unavailable")
}

func TestJobService_BookValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newJobService(ctrl, nil)

	_, err := svc.Book(context.Background(), testTenantID, nil)
	assert.True(t, apperrors.IsValidation(err))

	req := validBookingRequest()
	req.PaymentType = "cheque"
	_, err = svc.Book(context.Background(), testTenantID, req)
	assert.True(t, apperrors.IsValidation(err))
}

func TestJobService_CompleteDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newJobService(ctrl, nil)
	m.jobs.EXPECT().SetDelivered(gomock.Any(), testTenantID, "job-1", svcNow).
		Return(testJob(func(j *model.Job) { j.Status = model.JobStatusDelivered }), nil)

	job, err := svc.CompleteDelivery(context.Background(), testTenantID, "job-1", nil)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusDelivered, job.Status)
}

func TestJobService_CompleteDeliveryExplicitTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newJobService(ctrl, nil)
	at := svcNow.Add(-3 * time.Hour)
	m.jobs.EXPECT().SetDelivered(gomock.Any(), testTenantID, "job-1", at).Return(testJob(), nil)

	_, err := svc.CompleteDelivery(context.Background(), testTenantID, "job-1", &at)
	require.NoError(t, err)
}

func TestJobService_CompleteDeliveryTwiceRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newJobService(ctrl, nil)
	m.jobs.EXPECT().SetDelivered(gomock.Any(), testTenantID, "job-1", svcNow).
		Return(nil, data.ErrAlreadyDelivered)

	_, err := svc.CompleteDelivery(context.Background(), testTenantID, "job-1", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))
}

func TestJobService_CompleteCollectionTwiceRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newJobService(ctrl, nil)
	m.jobs.EXPECT().SetCollected(gomock.Any(), testTenantID, "job-1", svcNow).
		Return(nil, data.ErrAlreadyCollected)

	_, err := svc.CompleteCollection(context.Background(), testTenantID, "job-1", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))
}

func TestJobService_GetWithTimeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newJobService(ctrl, nil)
	events := []*model.JobEvent{
		{ID: "ev-1", JobID: "job-1", EventType: model.EventTypeDelivery, EventOrder: 1},
		{ID: "ev-2", JobID: "job-1", EventType: model.EventTypeNote, EventOrder: 2},
	}
	m.jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(testJob(), nil)
	m.events.EXPECT().ListByJob(gomock.Any(), testTenantID, "job-1").Return(events, nil)

	got, err := svc.GetWithTimeline(context.Background(), testTenantID, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", got.Job.ID)
	require.Len(t, got.Events, 2)
	assert.Equal(t, 1, got.Events[0].EventOrder)
}

func TestJobService_GetWithTimelineNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newJobService(ctrl, nil)
	m.jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "missing").Return(nil, data.ErrJobNotFound)

	_, err := svc.GetWithTimeline(context.Background(), testTenantID, "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestJobService_ListDefaultsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newJobService(ctrl, nil)
	m.jobs.EXPECT().List(gomock.Any(), testTenantID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, opts model.JobListOptions) ([]*model.Job, error) {
			assert.Equal(t, 50, opts.Limit)
			assert.Equal(t, 0, opts.Offset)
			return []*model.Job{testJob()}, nil
		})

	jobs, err := svc.List(context.Background(), testTenantID, model.JobListOptions{Offset: -3})
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestJobService_AppendNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newJobService(ctrl, nil)
	m.jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(testJob(), nil)
	m.events.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req model.AppendEventRequest) (*model.JobEvent, error) {
			assert.Equal(t, "job-1", req.JobID)
			assert.Equal(t, model.EventTypeNote, req.EventType)
			assert.Equal(t, model.EventStatusCompleted, req.Status)
			require.NotNil(t, req.Notes)
			assert.Equal(t, "gate code 4471", *req.Notes)
			return &model.JobEvent{ID: "ev-3", EventOrder: 3}, nil
		})

	event, err := svc.AppendNote(context.Background(), testTenantID, "job-1", "gate code 4471")
	require.NoError(t, err)
	assert.Equal(t, 3, event.EventOrder)
}

func TestJobService_AppendNoteRequiresText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newJobService(ctrl, nil)
	_, err := svc.AppendNote(context.Background(), testTenantID, "job-1", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
