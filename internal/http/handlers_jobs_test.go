package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skipflow/skipflow-go/internal/data"
	"github.com/skipflow/skipflow-go/internal/domain/model"
	"github.com/skipflow/skipflow-go/internal/mocks"
	"github.com/skipflow/skipflow-go/internal/service"
)

const testTenantID = "t1"

// tenantRequest builds a request already scoped to the test tenant, the way
// RequireTenant would leave it.
func tenantRequest(method, target string, body []byte) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	ctx := SetTenantInContext(r.Context(), &model.Tenant{ID: testTenantID, Name: "Milltown Skips"})
	return r.WithContext(ctx)
}

func sampleJob() *model.Job {
	d, _ := model.ParseDate("2026-03-02")
	return &model.Job{
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
}

func newJobHandlers(t *testing.T) (*JobHandlers, *mocks.MockJobRepository, *mocks.MockJobEventRepository, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockJobRepository(ctrl)
	events := mocks.NewMockJobEventRepository(ctrl)
	svc := service.NewJobService(service.JobServiceOptions{
		Repos: service.JobRepos{Jobs: jobs, Events: events},
	})
	return &JobHandlers{Svc: svc}, jobs, events, ctrl
}

func TestCreateJob_Success(t *testing.T) {
	h, jobs, _, ctrl := newJobHandlers(t)
	defer ctrl.Finish()

	jobs.EXPECT().Create(gomock.Any(), testTenantID, gomock.Any()).Return(sampleJob(), nil)

	body, _ := json.Marshal(map[string]any{
		"customer_id":    "cust-1",
		"skip_type_id":   "skip-8yd",
		"site_address1":  "1 Quarry Lane",
		"site_town":      "Milltown",
		"site_postcode":  "MT1 2AB",
		"scheduled_date": "2026-03-02",
		"payment_type":   "cash",
		"price_inc_vat":  "240",
		"create_invoice": false,
	})
	r := tenantRequest(http.MethodPost, "/api/jobs", body)
	w := httptest.NewRecorder()

	h.Create(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got service.BookingResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "job-1", got.Job.ID)
	assert.Nil(t, got.Invoice)
}

func TestCreateJob_InvalidJSON(t *testing.T) {
	h, _, _, ctrl := newJobHandlers(t)
	defer ctrl.Finish()

	r := tenantRequest(http.MethodPost, "/api/jobs", []byte("{bad"))
	w := httptest.NewRecorder()

	h.Create(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateJob_ValidationError(t *testing.T) {
	h, _, _, ctrl := newJobHandlers(t)
	defer ctrl.Finish()

	body, _ := json.Marshal(map[string]any{"customer_id": "cust-1"})
	r := tenantRequest(http.MethodPost, "/api/jobs", body)
	w := httptest.NewRecorder()

	h.Create(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "validation", got["error"])
}

func TestGetJob_WithTimeline(t *testing.T) {
	h, jobs, events, ctrl := newJobHandlers(t)
	defer ctrl.Finish()

	jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(sampleJob(), nil)
	events.EXPECT().ListByJob(gomock.Any(), testTenantID, "job-1").Return([]*model.JobEvent{
		{ID: "ev-1", JobID: "job-1", EventType: model.EventTypeDelivery, EventOrder: 1},
	}, nil)

	r := tenantRequest(http.MethodGet, "/api/jobs/job-1", nil)
	r.SetPathValue("id", "job-1")
	w := httptest.NewRecorder()

	h.Get(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got service.JobWithTimeline
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "job-1", got.Job.ID)
	require.Len(t, got.Events, 1)
}

func TestGetJob_NotFound(t *testing.T) {
	h, jobs, _, ctrl := newJobHandlers(t)
	defer ctrl.Finish()

	jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "missing").Return(nil, data.ErrJobNotFound)

	r := tenantRequest(http.MethodGet, "/api/jobs/missing", nil)
	r.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	h.Get(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListJobs_Filters(t *testing.T) {
	h, jobs, _, ctrl := newJobHandlers(t)
	defer ctrl.Finish()

	jobs.EXPECT().List(gomock.Any(), testTenantID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, opts model.JobListOptions) ([]*model.Job, error) {
			require.NotNil(t, opts.Status)
			assert.Equal(t, model.JobStatusDelivered, *opts.Status)
			require.NotNil(t, opts.Date)
			assert.Equal(t, "2026-03-02", opts.Date.String())
			assert.Equal(t, 10, opts.Limit)
			return []*model.Job{sampleJob()}, nil
		})

	r := tenantRequest(http.MethodGet, "/api/jobs?status=delivered&date=2026-03-02&limit=10", nil)
	w := httptest.NewRecorder()

	h.List(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListJobs_BadStatus(t *testing.T) {
	h, _, _, ctrl := newJobHandlers(t)
	defer ctrl.Finish()

	r := tenantRequest(http.MethodGet, "/api/jobs?status=exploded", nil)
	w := httptest.NewRecorder()

	h.List(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCompleteDelivery_Success(t *testing.T) {
	h, jobs, _, ctrl := newJobHandlers(t)
	defer ctrl.Finish()

	delivered := sampleJob()
	delivered.Status = model.JobStatusDelivered
	jobs.EXPECT().SetDelivered(gomock.Any(), testTenantID, "job-1", gomock.Any()).Return(delivered, nil)

	r := tenantRequest(http.MethodPost, "/api/jobs/job-1/complete-delivery", nil)
	r.SetPathValue("id", "job-1")
	w := httptest.NewRecorder()

	h.CompleteDelivery(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got model.Job
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, model.JobStatusDelivered, got.Status)
}

func TestCompleteDelivery_AlreadyDelivered(t *testing.T) {
	h, jobs, _, ctrl := newJobHandlers(t)
	defer ctrl.Finish()

	jobs.EXPECT().SetDelivered(gomock.Any(), testTenantID, "job-1", gomock.Any()).
		Return(nil, data.ErrAlreadyDelivered)

	r := tenantRequest(http.MethodPost, "/api/jobs/job-1/complete-delivery", nil)
	r.SetPathValue("id", "job-1")
	w := httptest.NewRecorder()

	h.CompleteDelivery(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "invalid_state", got["error"])
}

func TestCompleteCollection_ExplicitTimestamp(t *testing.T) {
	h, jobs, _, ctrl := newJobHandlers(t)
	defer ctrl.Finish()

	collected := sampleJob()
	collected.Status = model.JobStatusCollected
	jobs.EXPECT().SetCollected(gomock.Any(), testTenantID, "job-1", gomock.Any()).Return(collected, nil)

	body := []byte(`{"at":"2026-03-04T09:30:00Z"}`)
	r := tenantRequest(http.MethodPost, "/api/jobs/job-1/complete-collection", body)
	r.SetPathValue("id", "job-1")
	w := httptest.NewRecorder()

	h.CompleteCollection(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAppendNote_Success(t *testing.T) {
	h, jobs, events, ctrl := newJobHandlers(t)
	defer ctrl.Finish()

	jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(sampleJob(), nil)
	events.EXPECT().Append(gomock.Any(), gomock.Any()).
		Return(&model.JobEvent{ID: "ev-9", JobID: "job-1", EventType: model.EventTypeNote, EventOrder: 4}, nil)

	body := []byte(`{"note":"gate code 4471"}`)
	r := tenantRequest(http.MethodPost, "/api/jobs/job-1/notes", body)
	r.SetPathValue("id", "job-1")
	w := httptest.NewRecorder()

	h.AppendNote(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestAppendNote_MissingID(t *testing.T) {
	h, _, _, ctrl := newJobHandlers(t)
	defer ctrl.Finish()

	r := tenantRequest(http.MethodPost, "/api/jobs//notes", []byte(`{"note":"x"}`))
	w := httptest.NewRecorder()

	h.AppendNote(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
