// Package httpx provides HTTP handlers and utilities for the skipflow operations API.
package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/skipflow/skipflow-go/internal/domain/model"
	"github.com/skipflow/skipflow-go/internal/service"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// JobHandlers provides HTTP handlers for job lifecycle operations.
type JobHandlers struct {
	Svc *service.JobService
}

// Create handles HTTP requests to book a new job.
func (h *JobHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Book(r.Context(), TenantID(r.Context()), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, result)
}

// Get handles HTTP requests to fetch a job with its timeline.
func (h *JobHandlers) Get(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	result, err := h.Svc.GetWithTimeline(r.Context(), TenantID(r.Context()), jobID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// List handles HTTP requests to list jobs with filters.
func (h *JobHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts, err := parseJobListOptions(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
		return
	}

	jobs, err := h.Svc.List(r.Context(), TenantID(r.Context()), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// completionBody carries the optional actual timestamp of a delivery or
// collection. Absent means now.
type completionBody struct {
	At *time.Time `json:"at,omitempty"`
}

// CompleteDelivery handles HTTP requests to record a delivery.
func (h *JobHandlers) CompleteDelivery(w http.ResponseWriter, r *http.Request) {
	h.complete(w, r, h.Svc.CompleteDelivery)
}

// CompleteCollection handles HTTP requests to record a collection.
func (h *JobHandlers) CompleteCollection(w http.ResponseWriter, r *http.Request) {
	h.complete(w, r, h.Svc.CompleteCollection)
}

type completeFunc func(ctx context.Context, tenantID, jobID string, at *time.Time) (*model.Job, error)

func (h *JobHandlers) complete(w http.ResponseWriter, r *http.Request, fn completeFunc) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	body := completionBody{}
	if r.ContentLength > 0 {
		if !DecodeJSON(w, r, &body) {
			return
		}
	}

	job, err := fn(r.Context(), TenantID(r.Context()), jobID, body.At)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// AppendNote handles HTTP requests to append a note to a job's timeline.
func (h *JobHandlers) AppendNote(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	var body struct {
		Note string `json:"note"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	event, err := h.Svc.AppendNote(r.Context(), TenantID(r.Context()), jobID, body.Note)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, event)
}

// parseJobListOptions builds list filters from query parameters.
func parseJobListOptions(r *http.Request) (model.JobListOptions, error) {
	opts := model.JobListOptions{}
	opts.Limit, opts.Offset = ParseLimitOffset(r, defaultListLimit, maxListLimit)

	if raw := r.URL.Query().Get("status"); raw != "" {
		var status model.JobStatus
		if err := status.UnmarshalText([]byte(raw)); err != nil {
			return opts, err
		}
		opts.Status = &status
	}
	if raw := r.URL.Query().Get("driver_id"); raw != "" {
		opts.DriverID = &raw
	}
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := model.ParseDate(raw)
		if err != nil {
			return opts, err
		}
		opts.Date = &date
	}
	return opts, nil
}
