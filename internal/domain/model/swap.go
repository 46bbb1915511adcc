package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CreateSwapRequest asks for an on-site skip to be exchanged: the old job becomes
// the collect leg, a new job is created as the deliver leg, and both share a swap
// group and driver run group.
type CreateSwapRequest struct {
	OldJobID      string          `json:"old_job_id"`
	NewSkipTypeID string          `json:"new_skip_type_id"`
	SwapDate      string          `json:"swap_date"`
	PriceIncVAT   decimal.Decimal `json:"price_inc_vat"`
	Notes         *string         `json:"notes,omitempty"`
	// CreateInvoice controls whether the new job is invoiced immediately.
	// Defaults to true. Invoice failure does not roll back the swap.
	CreateInvoice *bool `json:"create_invoice,omitempty"`
	// PaymentType overrides the new job's payment type; when nil the old job's
	// payment type is inherited.
	PaymentType *PaymentType `json:"payment_type,omitempty"`
}

// Validate validates the CreateSwapRequest fields.
func (r *CreateSwapRequest) Validate() error {
	if strings.TrimSpace(r.OldJobID) == "" {
		return errors.New("old_job_id is required")
	}
	if strings.TrimSpace(r.NewSkipTypeID) == "" {
		return errors.New("new_skip_type_id is required")
	}
	if _, err := ParseDate(r.SwapDate); err != nil {
		return fmt.Errorf("swap_date: %w", err)
	}
	if !r.PriceIncVAT.IsPositive() {
		return errors.New("price_inc_vat must be greater than zero")
	}
	if r.PaymentType != nil && !r.PaymentType.Valid() {
		return fmt.Errorf("invalid payment_type %q", *r.PaymentType)
	}
	return nil
}

// WantInvoice reports whether the swap should raise an invoice (default true).
func (r *CreateSwapRequest) WantInvoice() bool {
	return r.CreateInvoice == nil || *r.CreateInvoice
}

// InvoiceOutcomeStatus classifies the result of an invoice attempt attached to a
// larger operation.
type InvoiceOutcomeStatus string

const (
	InvoiceOutcomeCreated InvoiceOutcomeStatus = "created"
	InvoiceOutcomeUpdated InvoiceOutcomeStatus = "updated"
	InvoiceOutcomeSkipped InvoiceOutcomeStatus = "skipped"
	InvoiceOutcomeFailed  InvoiceOutcomeStatus = "failed"
)

// InvoiceOutcome reports what happened to the invoicing step of an operation.
// It is never silently dropped: success, skipped-with-reason, and
// failed-with-detail all surface to the caller.
type InvoiceOutcome struct {
	Status        InvoiceOutcomeStatus `json:"status"`
	InvoiceID     *string              `json:"invoice_id,omitempty"`
	InvoiceNumber *string              `json:"invoice_number,omitempty"`
	InvoiceStatus *string              `json:"invoice_status,omitempty"`
	Reason        *string              `json:"reason,omitempty"`
}

// SwapResult is the output of a successful swap.
type SwapResult struct {
	SwapGroupID    string          `json:"swap_group_id"`
	DriverRunGroup int             `json:"driver_run_group"`
	OldJob         *Job            `json:"old_job"`
	NewJob         *Job            `json:"new_job"`
	Invoice        *InvoiceOutcome `json:"invoice,omitempty"`
	InvoiceWarning *string         `json:"invoice_warning,omitempty"`
}
