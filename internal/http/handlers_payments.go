package httpx

import (
	"errors"
	"net/http"

	"github.com/skipflow/skipflow-go/internal/domain/model"
	"github.com/skipflow/skipflow-go/internal/service"
)

// PaymentHandlers provides HTTP handlers for payment reconciliation.
type PaymentHandlers struct {
	Svc *service.PaymentService
}

// MarkPaid handles HTTP requests to record or clear the internal paid fields.
func (h *PaymentHandlers) MarkPaid(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	var req model.MarkPaidRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.MarkPaid(r.Context(), TenantID(r.Context()), jobID, req, CallerID(r.Context()))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// ApplyPayment handles HTTP requests to apply a payment against the job's
// external invoice.
func (h *PaymentHandlers) ApplyPayment(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	req := model.ApplyPaymentRequest{}
	if r.ContentLength > 0 {
		if !DecodeJSON(w, r, &req) {
			return
		}
	}

	result, err := h.Svc.ApplyPayment(r.Context(), TenantID(r.Context()), jobID, req, CallerID(r.Context()))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
