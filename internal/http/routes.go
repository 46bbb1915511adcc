package httpx

import (
	"log/slog"
	"net/http"

	"github.com/skipflow/skipflow-go/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Jobs       *service.JobService
	Swaps      *service.SwapService
	Payments   *service.PaymentService
	Accounting *service.AccountingService
	DriverRuns *service.DriverRunService

	// Optional: bearer-token auth. When both are set every /api route requires
	// a verified caller with a tenant membership.
	Verifier TokenVerifier
	Tenants  TenantResolver

	Logger *slog.Logger // Logger for request logging (optional)
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	jobHandlers := &JobHandlers{Svc: services.Jobs}
	swapHandlers := &SwapHandlers{Svc: services.Swaps}
	paymentHandlers := &PaymentHandlers{Svc: services.Payments}
	accountingHandlers := &AccountingHandlers{Svc: services.Accounting}
	runHandlers := &DriverRunHandlers{Svc: services.DriverRuns}

	api := http.NewServeMux()
	registerJobRoutes(api, jobHandlers)
	registerSwapRoutes(api, swapHandlers)
	registerPaymentRoutes(api, paymentHandlers)
	registerAccountingRoutes(api, accountingHandlers)
	registerDriverRunRoutes(api, runHandlers)

	var apiHandler http.Handler = api
	if services.Verifier != nil && services.Tenants != nil {
		apiHandler = RequireTenant(services.Verifier, services.Tenants)(apiHandler)
	}
	mux.Handle("/api/", apiHandler)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return Logging(logger)(Recover(logger)(mux))
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers) {
	mux.HandleFunc("POST /api/jobs", h.Create)
	mux.HandleFunc("GET /api/jobs", h.List)
	mux.HandleFunc("GET /api/jobs/{id}", h.Get)
	mux.HandleFunc("POST /api/jobs/{id}/complete-delivery", h.CompleteDelivery)
	mux.HandleFunc("POST /api/jobs/{id}/complete-collection", h.CompleteCollection)
	mux.HandleFunc("POST /api/jobs/{id}/notes", h.AppendNote)
}

func registerSwapRoutes(mux *http.ServeMux, h *SwapHandlers) {
	mux.HandleFunc("POST /api/swaps", h.Create)
}

func registerPaymentRoutes(mux *http.ServeMux, h *PaymentHandlers) {
	mux.HandleFunc("POST /api/jobs/{id}/mark-paid", h.MarkPaid)
	mux.HandleFunc("POST /api/jobs/{id}/apply-payment", h.ApplyPayment)
}

func registerAccountingRoutes(mux *http.ServeMux, h *AccountingHandlers) {
	mux.HandleFunc("POST /api/jobs/{id}/invoice", h.EnsureInvoice)
	mux.HandleFunc("POST /api/jobs/{id}/invoice/reconcile", h.Reconcile)
	mux.HandleFunc("POST /api/jobs/{id}/invoice/email", h.EmailInvoice)
}

func registerDriverRunRoutes(mux *http.ServeMux, h *DriverRunHandlers) {
	mux.HandleFunc("GET /api/driver-runs", h.GetRun)
}
