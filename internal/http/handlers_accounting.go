package httpx

import (
	"errors"
	"net/http"

	"github.com/skipflow/skipflow-go/internal/service"
)

// AccountingHandlers provides HTTP handlers for the accounting bridge.
type AccountingHandlers struct {
	Svc *service.AccountingService
}

// EnsureInvoice handles HTTP requests to raise the invoice a job's payment type
// calls for.
func (h *AccountingHandlers) EnsureInvoice(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	req := service.EnsureInvoiceRequest{}
	if r.ContentLength > 0 {
		if !DecodeJSON(w, r, &req) {
			return
		}
	}

	outcome, err := h.Svc.EnsureInvoice(r.Context(), TenantID(r.Context()), jobID, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, outcome)
}

// Reconcile handles HTTP requests to re-link a job to its external invoice by
// job number.
func (h *AccountingHandlers) Reconcile(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	job, err := h.Svc.ReconcileInvoiceLink(r.Context(), TenantID(r.Context()), jobID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// EmailInvoice handles HTTP requests to email a job's linked invoice to its
// contact.
func (h *AccountingHandlers) EmailInvoice(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	if err := h.Svc.EmailInvoice(r.Context(), TenantID(r.Context()), jobID); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
