package httpx

import (
	"errors"
	"net/http"

	"github.com/skipflow/skipflow-go/internal/domain/model"
	"github.com/skipflow/skipflow-go/internal/service"
)

// DriverRunHandlers provides HTTP handlers for the driver run view.
type DriverRunHandlers struct {
	Svc *service.DriverRunService
}

// GetRun handles HTTP requests for a driver's stops on a date.
func (h *DriverRunHandlers) GetRun(w http.ResponseWriter, r *http.Request) {
	driverID := r.URL.Query().Get("driver_id")
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: errors.New("date is required")},
		)
		return
	}
	date, err := model.ParseDate(rawDate)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
		return
	}

	run, err := h.Svc.GetRun(r.Context(), TenantID(r.Context()), driverID, date)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, run)
}
