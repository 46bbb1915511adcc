package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skipflow/skipflow-go/internal/core"
	"github.com/skipflow/skipflow-go/internal/data"
	"github.com/skipflow/skipflow-go/internal/domain/model"
	apperrors "github.com/skipflow/skipflow-go/internal/errors"
	"github.com/skipflow/skipflow-go/internal/mocks"
)

const testTenantID = "t1"

var svcNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func mustSvcDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func testJob(mut ...func(*model.Job)) *model.Job {
	d, _ := model.ParseDate("2026-03-02")
	j := &model.Job{
		ID:            "job-1",
		TenantID:      testTenantID,
		JobNumber:     "JOB-00001",
		CustomerID:    "cust-1",
		SkipTypeID:    "skip-8yd",
		SiteAddress1:  "1 Quarry Lane",
		SiteTown:      "Milltown",
		SitePostcode:  "MT1 2AB",
		ScheduledDate: d,
		Status:        model.JobStatusBooked,
		PaymentType:   model.PaymentTypeCash,
		PriceIncVAT:   decimal.RequireFromString("240"),
	}
	for _, m := range mut {
		m(j)
	}
	return j
}

func testCustomer() *model.Customer {
	acc := "ACC-100"
	email := "billing@builderbros.test"
	return &model.Customer{
		ID:            "cust-1",
		TenantID:      testTenantID,
		Name:          "Builder Bros",
		AccountNumber: &acc,
		Email:         &email,
	}
}

type accountingMocks struct {
	jobs     *mocks.MockJobRepository
	tenants  *mocks.MockTenantRepository
	settings *mocks.MockSettingsRepository
	client   *mocks.MockAccountingClient
}

func newAccountingService(ctrl *gomock.Controller) (*AccountingService, accountingMocks) {
	m := accountingMocks{
		jobs:     mocks.NewMockJobRepository(ctrl),
		tenants:  mocks.NewMockTenantRepository(ctrl),
		settings: mocks.NewMockSettingsRepository(ctrl),
		client:   mocks.NewMockAccountingClient(ctrl),
	}
	svc := NewAccountingService(AccountingServiceOptions{
		Repos:    AccountingRepos{Jobs: m.jobs, Tenants: m.tenants, Settings: m.settings},
		Client:   m.client,
		Defaults: AccountCodeDefaults{CardClearingCode: "090", BankAccountCode: "091", SalesAccountCode: "200"},
	}).WithTimeProvider(data.FixedTimeProvider{Fixed: svcNow})
	return svc, m
}

func expectTenantSettings(m accountingMocks) {
	m.tenants.EXPECT().GetCustomer(gomock.Any(), testTenantID, "cust-1").Return(testCustomer(), nil)
	m.settings.EXPECT().Get(gomock.Any(), testTenantID).Return(nil, data.ErrSettingsNotFound)
}

func expectSingleContact(m accountingMocks) {
	m.client.EXPECT().FindContactsByAccountNumber(gomock.Any(), testTenantID, "ACC-100").
		Return([]model.Contact{{ID: "contact-1", Name: "Builder Bros"}}, nil)
}

func TestAccountingService_SkipsAlreadyLinkedJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newAccountingService(ctrl)
	invoiceID := "inv-1"
	job := testJob(func(j *model.Job) { j.XeroInvoiceID = &invoiceID })

	outcome, err := svc.EnsureInvoiceForJob(context.Background(), testTenantID, job)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceOutcomeSkipped, outcome.Status)
	require.NotNil(t, outcome.InvoiceID)
	assert.Equal(t, invoiceID, *outcome.InvoiceID)
}

func TestAccountingService_CashJobInvoicedUnpaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAccountingService(ctrl)
	job := testJob()
	expectTenantSettings(m)
	expectSingleContact(m)

	m.client.EXPECT().CreateInvoice(gomock.Any(), testTenantID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, params model.CreateInvoiceParams) (*model.Invoice, error) {
			assert.Equal(t, "contact-1", params.ContactID)
			assert.Equal(t, model.InvoiceStatusAuthorised, params.Status)
			assert.Equal(t, "JOB-00001", params.Reference)
			require.Len(t, params.Lines, 1)
			assert.Equal(t, "200", params.Lines[0].AccountCode)
			assert.True(t, params.Lines[0].UnitAmount.Equal(job.PriceIncVAT))
			return &model.Invoice{
				ID: "inv-1", Number: "INV-0042", Status: model.InvoiceStatusAuthorised,
				AmountDue: job.PriceIncVAT,
			}, nil
		})
	m.jobs.EXPECT().SetAccountingLink(gomock.Any(), testTenantID, "job-1", core.AccountingLink{
		InvoiceID: "inv-1", InvoiceNumber: "INV-0042", InvoiceStatus: model.InvoiceStatusAuthorised,
	}).Return(job, nil)

	outcome, err := svc.EnsureInvoiceForJob(context.Background(), testTenantID, job)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceOutcomeCreated, outcome.Status)
	assert.Equal(t, "INV-0042", *outcome.InvoiceNumber)
}

func TestAccountingService_CardJobInvoicedAndPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAccountingService(ctrl)
	job := testJob(func(j *model.Job) { j.PaymentType = model.PaymentTypeCard })
	expectTenantSettings(m)
	expectSingleContact(m)

	m.client.EXPECT().CreateInvoice(gomock.Any(), testTenantID, gomock.Any()).
		Return(&model.Invoice{
			ID: "inv-1", Number: "INV-0042", Status: model.InvoiceStatusAuthorised,
			AmountDue: job.PriceIncVAT,
		}, nil)
	m.jobs.EXPECT().SetAccountingLink(gomock.Any(), testTenantID, "job-1", gomock.Any()).Return(job, nil)
	m.client.EXPECT().CreatePayment(gomock.Any(), testTenantID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, params model.CreatePaymentParams) (*model.ExternalPayment, error) {
			assert.Equal(t, "inv-1", params.InvoiceID)
			assert.Equal(t, "090", params.AccountCode)
			assert.True(t, params.Amount.Equal(job.PriceIncVAT))
			return &model.ExternalPayment{ID: "pay-1", InvoiceID: "inv-1"}, nil
		})
	m.client.EXPECT().GetInvoice(gomock.Any(), testTenantID, "inv-1").
		Return(&model.Invoice{
			ID: "inv-1", Number: "INV-0042", Status: model.InvoiceStatusPaid,
			AmountDue: decimal.Zero,
		}, nil)
	m.jobs.EXPECT().SetExternalPayment(gomock.Any(), testTenantID, "job-1", core.PaymentLink{
		PaymentID: "pay-1", InvoiceStatus: model.InvoiceStatusPaid, InvoiceNumber: "INV-0042",
	}).Return(job, nil)

	outcome, err := svc.EnsureInvoiceForJob(context.Background(), testTenantID, job)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceOutcomeCreated, outcome.Status)
	assert.Equal(t, model.InvoiceStatusPaid, *outcome.InvoiceStatus)
}

func TestAccountingService_AccountJobAppendsToExistingDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAccountingService(ctrl)
	job := testJob(func(j *model.Job) { j.PaymentType = model.PaymentTypeAccount })
	expectTenantSettings(m)
	expectSingleContact(m)

	reference := model.MonthlyReference("cust-1", svcNow)
	m.client.EXPECT().FindInvoicesByReference(gomock.Any(), testTenantID, reference).
		Return([]model.Invoice{{ID: "inv-m", Number: "INV-0100", Status: model.InvoiceStatusDraft}}, nil)
	m.client.EXPECT().AddInvoiceLine(gomock.Any(), testTenantID, "inv-m", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, line model.InvoiceLine) (*model.Invoice, error) {
			assert.Contains(t, line.Description, "JOB-00001")
			assert.True(t, line.UnitAmount.Equal(job.PriceIncVAT))
			return &model.Invoice{ID: "inv-m", Number: "INV-0100", Status: model.InvoiceStatusDraft}, nil
		})
	m.jobs.EXPECT().SetAccountingLink(gomock.Any(), testTenantID, "job-1", core.AccountingLink{
		InvoiceID: "inv-m", InvoiceNumber: "INV-0100", InvoiceStatus: model.InvoiceStatusDraft,
	}).Return(job, nil)

	outcome, err := svc.EnsureInvoiceForJob(context.Background(), testTenantID, job)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceOutcomeUpdated, outcome.Status)
}

func TestAccountingService_AccountJobCreatesMonthlyDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAccountingService(ctrl)
	job := testJob(func(j *model.Job) { j.PaymentType = model.PaymentTypeAccount })
	expectTenantSettings(m)
	expectSingleContact(m)

	reference := model.MonthlyReference("cust-1", svcNow)
	m.client.EXPECT().FindInvoicesByReference(gomock.Any(), testTenantID, reference).
		Return(nil, nil)
	m.client.EXPECT().CreateInvoice(gomock.Any(), testTenantID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, params model.CreateInvoiceParams) (*model.Invoice, error) {
			assert.Equal(t, model.InvoiceStatusDraft, params.Status)
			assert.Equal(t, reference, params.Reference)
			return &model.Invoice{ID: "inv-m", Number: "INV-0100", Status: model.InvoiceStatusDraft}, nil
		})
	m.jobs.EXPECT().SetAccountingLink(gomock.Any(), testTenantID, "job-1", gomock.Any()).Return(job, nil)

	outcome, err := svc.EnsureInvoiceForJob(context.Background(), testTenantID, job)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceOutcomeCreated, outcome.Status)
}

func TestAccountingService_AccountJobAmbiguousMonthlyDrafts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAccountingService(ctrl)
	job := testJob(func(j *model.Job) { j.PaymentType = model.PaymentTypeAccount })
	expectTenantSettings(m)
	expectSingleContact(m)

	m.client.EXPECT().FindInvoicesByReference(gomock.Any(), testTenantID, gomock.Any()).
		Return([]model.Invoice{{ID: "inv-a"}, {ID: "inv-b"}}, nil)

	_, err := svc.EnsureInvoiceForJob(context.Background(), testTenantID, job)
	require.Error(t, err)
	assert.True(t, apperrors.IsAmbiguous(err))
}

func TestAccountingService_AmbiguousContactsRefused(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAccountingService(ctrl)
	job := testJob()
	m.tenants.EXPECT().GetCustomer(gomock.Any(), testTenantID, "cust-1").Return(testCustomer(), nil)
	m.client.EXPECT().FindContactsByAccountNumber(gomock.Any(), testTenantID, "ACC-100").
		Return([]model.Contact{{ID: "contact-1"}, {ID: "contact-2"}}, nil)
	// No CreateContact, no CreateInvoice: nothing is created on ambiguity.

	_, err := svc.EnsureInvoiceForJob(context.Background(), testTenantID, job)
	require.Error(t, err)
	assert.True(t, apperrors.IsAmbiguous(err))
}

func TestAccountingService_CreatesContactWhenUnmatched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAccountingService(ctrl)
	job := testJob()
	expectTenantSettings(m)
	m.client.EXPECT().FindContactsByAccountNumber(gomock.Any(), testTenantID, "ACC-100").Return(nil, nil)
	m.client.EXPECT().CreateContact(gomock.Any(), testTenantID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, params model.CreateContactParams) (*model.Contact, error) {
			assert.Equal(t, "Builder Bros", params.Name)
			assert.Equal(t, "billing@builderbros.test", params.Email)
			return &model.Contact{ID: "contact-new"}, nil
		})
	m.client.EXPECT().CreateInvoice(gomock.Any(), testTenantID, gomock.Any()).
		Return(&model.Invoice{ID: "inv-1", Number: "INV-0042", Status: model.InvoiceStatusAuthorised}, nil)
	m.jobs.EXPECT().SetAccountingLink(gomock.Any(), testTenantID, "job-1", gomock.Any()).Return(job, nil)

	_, err := svc.EnsureInvoiceForJob(context.Background(), testTenantID, job)
	require.NoError(t, err)
}

func TestAccountingService_ContactCreationNeedsEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAccountingService(ctrl)
	job := testJob()
	customer := testCustomer()
	customer.Email = nil
	m.tenants.EXPECT().GetCustomer(gomock.Any(), testTenantID, "cust-1").Return(customer, nil)
	m.client.EXPECT().FindContactsByAccountNumber(gomock.Any(), testTenantID, "ACC-100").Return(nil, nil)

	_, err := svc.EnsureInvoiceForJob(context.Background(), testTenantID, job)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "email")
}

func TestAccountingService_MissingCodeWithoutFallbackFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAccountingService(ctrl)
	job := testJob()
	m.tenants.EXPECT().GetCustomer(gomock.Any(), testTenantID, "cust-1").Return(testCustomer(), nil)
	expectSingleContact(m)
	m.settings.EXPECT().Get(gomock.Any(), testTenantID).Return(&model.InvoiceSettings{
		TenantID:           testTenantID,
		FallbackToDefaults: false,
	}, nil)

	_, err := svc.EnsureInvoiceForJob(context.Background(), testTenantID, job)
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestAccountingService_ReconcileInvoiceLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAccountingService(ctrl)
	job := testJob()
	m.jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(job, nil)
	m.client.EXPECT().FindInvoicesByReference(gomock.Any(), testTenantID, "JOB-00001").
		Return([]model.Invoice{{ID: "inv-7", Number: "INV-0007", Status: model.InvoiceStatusAuthorised}}, nil)
	m.jobs.EXPECT().SetAccountingLink(gomock.Any(), testTenantID, "job-1", core.AccountingLink{
		InvoiceID: "inv-7", InvoiceNumber: "INV-0007", InvoiceStatus: model.InvoiceStatusAuthorised,
	}).Return(job, nil)

	got, err := svc.ReconcileInvoiceLink(context.Background(), testTenantID, "job-1")
	require.NoError(t, err)
	assert.Equal(t, job, got)
}

func TestAccountingService_ReconcileZeroMatchesIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAccountingService(ctrl)
	m.jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(testJob(), nil)
	m.client.EXPECT().FindInvoicesByReference(gomock.Any(), testTenantID, "JOB-00001").Return(nil, nil)

	_, err := svc.ReconcileInvoiceLink(context.Background(), testTenantID, "job-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAccountingService_ReconcileManyMatchesIsAmbiguous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAccountingService(ctrl)
	m.jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(testJob(), nil)
	m.client.EXPECT().FindInvoicesByReference(gomock.Any(), testTenantID, "JOB-00001").
		Return([]model.Invoice{{ID: "inv-a"}, {ID: "inv-b"}}, nil)

	_, err := svc.ReconcileInvoiceLink(context.Background(), testTenantID, "job-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsAmbiguous(err))
}

func TestAccountingService_EnsureInvoiceEmailsWhenAsked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAccountingService(ctrl)
	job := testJob()
	m.jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(job, nil)
	expectTenantSettings(m)
	expectSingleContact(m)
	m.client.EXPECT().CreateInvoice(gomock.Any(), testTenantID, gomock.Any()).
		Return(&model.Invoice{ID: "inv-1", Number: "INV-0042", Status: model.InvoiceStatusAuthorised}, nil)
	m.jobs.EXPECT().SetAccountingLink(gomock.Any(), testTenantID, "job-1", gomock.Any()).Return(job, nil)
	m.client.EXPECT().EmailInvoice(gomock.Any(), testTenantID, "inv-1").Return(nil)

	_, err := svc.EnsureInvoice(context.Background(), testTenantID, "job-1", EnsureInvoiceRequest{SendEmail: true})
	require.NoError(t, err)
}
