package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skipflow/skipflow-go/internal/core"
	"github.com/skipflow/skipflow-go/internal/domain/model"
	"github.com/skipflow/skipflow-go/internal/mocks"
	"github.com/skipflow/skipflow-go/internal/service"
)

func newSwapHandlers(t *testing.T) (*SwapHandlers, *mocks.MockJobRepository, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockJobRepository(ctrl)
	svc := service.NewSwapService(service.SwapServiceOptions{Jobs: jobs})
	return &SwapHandlers{Svc: svc}, jobs, ctrl
}

func TestCreateSwap_Success(t *testing.T) {
	h, jobs, ctrl := newSwapHandlers(t)
	defer ctrl.Finish()

	deliveredAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	onSite := sampleJob()
	onSite.Status = model.JobStatusDelivered
	onSite.DeliveredAt = &deliveredAt

	jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(onSite, nil)
	jobs.EXPECT().ExecuteSwap(gomock.Any(), testTenantID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, params core.SwapParams) (*core.SwapRecord, error) {
			assert.Equal(t, "job-1", params.OldJobID)
			assert.Equal(t, "skip-12yd", params.NewSkipTypeID)
			newJob := sampleJob()
			newJob.ID = "job-2"
			newJob.JobNumber = "JOB-00002"
			newJob.SwapGroupID = &params.SwapGroupID
			return &core.SwapRecord{OldJob: onSite, NewJob: newJob, DriverRunGroup: 7}, nil
		})

	body := []byte(`{"old_job_id":"job-1","new_skip_type_id":"skip-12yd","swap_date":"2026-03-05","price_inc_vat":"280","create_invoice":false}`)
	r := tenantRequest(http.MethodPost, "/api/swaps", body)
	w := httptest.NewRecorder()

	h.Create(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got model.SwapResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 7, got.DriverRunGroup)
	require.NotNil(t, got.NewJob)
	assert.Equal(t, "JOB-00002", got.NewJob.JobNumber)
}

func TestCreateSwap_IneligibleJob(t *testing.T) {
	h, jobs, ctrl := newSwapHandlers(t)
	defer ctrl.Finish()

	jobs.EXPECT().GetByID(gomock.Any(), testTenantID, "job-1").Return(sampleJob(), nil)

	body := []byte(`{"old_job_id":"job-1","new_skip_type_id":"skip-12yd","swap_date":"2026-03-05","price_inc_vat":"280"}`)
	r := tenantRequest(http.MethodPost, "/api/swaps", body)
	w := httptest.NewRecorder()

	h.Create(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "invalid_state", got["error"])
}

func TestCreateSwap_InvalidBody(t *testing.T) {
	h, _, ctrl := newSwapHandlers(t)
	defer ctrl.Finish()

	r := tenantRequest(http.MethodPost, "/api/swaps", []byte(`{"old_job_id":`))
	w := httptest.NewRecorder()

	h.Create(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
