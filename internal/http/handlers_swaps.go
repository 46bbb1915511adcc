package httpx

import (
	"net/http"

	"github.com/skipflow/skipflow-go/internal/domain/model"
	"github.com/skipflow/skipflow-go/internal/service"
)

// SwapHandlers provides HTTP handlers for skip exchanges.
type SwapHandlers struct {
	Svc *service.SwapService
}

// Create handles HTTP requests to swap an on-site skip.
func (h *SwapHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSwapRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.CreateSwap(r.Context(), TenantID(r.Context()), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, result)
}
