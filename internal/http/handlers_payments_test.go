package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skipflow/skipflow-go/internal/data"
	"github.com/skipflow/skipflow-go/internal/domain/model"
	"github.com/skipflow/skipflow-go/internal/mocks"
	"github.com/skipflow/skipflow-go/internal/service"
)

type paymentHandlerMocks struct {
	jobs     *mocks.MockJobRepository
	settings *mocks.MockSettingsRepository
	client   *mocks.MockAccountingClient
}

func newPaymentHandlers(t *testing.T) (*PaymentHandlers, paymentHandlerMocks, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := paymentHandlerMocks{
		jobs:     mocks.NewMockJobRepository(ctrl),
		settings: mocks.NewMockSettingsRepository(ctrl),
		client:   mocks.NewMockAccountingClient(ctrl),
	}
	svc := service.NewPaymentService(service.PaymentServiceOptions{
		Repos:    service.PaymentRepos{Jobs: m.jobs, Settings: m.settings},
		Client:   m.client,
		Defaults: service.AccountCodeDefaults{CardClearingCode: "090", BankAccountCode: "091", SalesAccountCode: "200"},
	})
	return &PaymentHandlers{Svc: svc}, m, ctrl
}

func TestMarkPaid_Success(t *testing.T) {
	h, m, ctrl := newPaymentHandlers(t)
	defer ctrl.Finish()

	m.jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(sampleJob(), nil)
	m.jobs.EXPECT().SetPaid(gomock.Any(), testTenantID, "job-1", gomock.Any()).Return(sampleJob(), nil)

	r := tenantRequest(http.MethodPost, "/api/jobs/job-1/mark-paid", []byte(`{"paid_method":"cash"}`))
	r.SetPathValue("id", "job-1")
	w := httptest.NewRecorder()

	h.MarkPaid(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMarkPaid_AlreadyPaidConflicts(t *testing.T) {
	h, m, ctrl := newPaymentHandlers(t)
	defer ctrl.Finish()

	paidAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	paid := sampleJob()
	paid.PaidAt = &paidAt
	m.jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(paid, nil)

	r := tenantRequest(http.MethodPost, "/api/jobs/job-1/mark-paid", []byte(`{"paid_method":"cash"}`))
	r.SetPathValue("id", "job-1")
	w := httptest.NewRecorder()

	h.MarkPaid(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "conflict", got["error"])
}

func TestMarkPaid_Clear(t *testing.T) {
	h, m, ctrl := newPaymentHandlers(t)
	defer ctrl.Finish()

	m.jobs.EXPECT().ClearPaid(gomock.Any(), testTenantID, "job-1").Return(sampleJob(), nil)

	r := tenantRequest(http.MethodPost, "/api/jobs/job-1/mark-paid", []byte(`{"clear":true}`))
	r.SetPathValue("id", "job-1")
	w := httptest.NewRecorder()

	h.MarkPaid(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestApplyPayment_AccountJobRejected(t *testing.T) {
	h, m, ctrl := newPaymentHandlers(t)
	defer ctrl.Finish()

	account := sampleJob()
	account.PaymentType = model.PaymentTypeAccount
	m.jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(account, nil)

	r := tenantRequest(http.MethodPost, "/api/jobs/job-1/apply-payment", nil)
	r.SetPathValue("id", "job-1")
	w := httptest.NewRecorder()

	h.ApplyPayment(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "invalid_state", got["error"])
}

func TestApplyPayment_Success(t *testing.T) {
	h, m, ctrl := newPaymentHandlers(t)
	defer ctrl.Finish()

	invoiceID := "inv-1"
	job := sampleJob()
	job.PaymentType = model.PaymentTypeCard
	job.XeroInvoiceID = &invoiceID
	amountDue := decimal.RequireFromString("240")

	m.jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(job, nil)
	m.client.EXPECT().GetInvoice(gomock.Any(), testTenantID, "inv-1").
		Return(&model.Invoice{ID: "inv-1", Number: "INV-0042", Status: "AUTHORISED", AmountDue: amountDue}, nil)
	m.settings.EXPECT().Get(gomock.Any(), testTenantID).Return(nil, data.ErrSettingsNotFound)
	m.client.EXPECT().GetAccountByCode(gomock.Any(), testTenantID, "090").
		Return(&model.Account{Code: "090", Type: "CURRENT"}, nil)
	m.client.EXPECT().CreatePayment(gomock.Any(), testTenantID, gomock.Any()).
		Return(&model.ExternalPayment{ID: "pay-1", InvoiceID: "inv-1"}, nil)
	m.client.EXPECT().GetInvoice(gomock.Any(), testTenantID, "inv-1").
		Return(&model.Invoice{ID: "inv-1", Number: "INV-0042", Status: "PAID", AmountDue: decimal.Zero}, nil)
	m.jobs.EXPECT().SetExternalPayment(gomock.Any(), testTenantID, "job-1", gomock.Any()).Return(job, nil)
	m.jobs.EXPECT().SetPaid(gomock.Any(), testTenantID, "job-1", gomock.Any()).Return(job, nil)

	r := tenantRequest(http.MethodPost, "/api/jobs/job-1/apply-payment", nil)
	r.SetPathValue("id", "job-1")
	w := httptest.NewRecorder()

	h.ApplyPayment(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got model.ApplyPaymentResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "pay-1", got.PaymentID)
	assert.Equal(t, "PAID", got.InvoiceStatus)
}

func TestApplyPayment_MissingID(t *testing.T) {
	h, _, ctrl := newPaymentHandlers(t)
	defer ctrl.Finish()

	r := tenantRequest(http.MethodPost, "/api/jobs//apply-payment", nil)
	w := httptest.NewRecorder()

	h.ApplyPayment(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
