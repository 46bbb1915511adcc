package model

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MarkPaidRequest marks a job paid internally (no external side effects).
type MarkPaidRequest struct {
	PaidMethod    string     `json:"paid_method"`
	PaidReference *string    `json:"paid_reference,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	// Force permits overwriting an existing paid record.
	Force bool `json:"force,omitempty"`
	// Clear nulls all paid fields unconditionally (administrative correction).
	Clear bool `json:"clear,omitempty"`
}

// Validate validates the MarkPaidRequest fields.
func (r *MarkPaidRequest) Validate() error {
	if r.Clear {
		return nil
	}
	if strings.TrimSpace(r.PaidMethod) == "" {
		return errors.New("paid_method is required")
	}
	return nil
}

// PaidRecord is the all-or-nothing group of internal paid fields on a job.
type PaidRecord struct {
	PaidAt        time.Time
	PaidMethod    PaymentMethod
	PaidReference *string
	PaidByUserID  *string
}

// ApplyPaymentRequest applies a payment against a job's external invoice.
type ApplyPaymentRequest struct {
	// PaidMethod selects the target account: cash posts to the bank account,
	// everything else to the card clearing account. Optional; defaults to card.
	PaidMethod string `json:"paid_method,omitempty"`
	// Amount overrides the invoice's outstanding amount-due when set.
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// Validate validates the ApplyPaymentRequest fields.
func (r *ApplyPaymentRequest) Validate() error {
	if r.Amount != nil && !r.Amount.IsPositive() {
		return errors.New("amount must be greater than zero when supplied")
	}
	return nil
}

// ApplyPaymentResult is the full success payload of an external payment
// application.
type ApplyPaymentResult struct {
	PaymentID      string          `json:"payment_id"`
	AccountCode    string          `json:"account_code"`
	Amount         decimal.Decimal `json:"amount"`
	InvoiceID      string          `json:"invoice_id"`
	InvoiceNumber  string          `json:"invoice_number"`
	InvoiceStatus  string          `json:"invoice_status"`
	AmountDueAfter decimal.Decimal `json:"amount_due_after"`
	// AlreadyApplied is true when the job already carried an external payment id
	// and the prior result was returned instead of creating a second payment.
	AlreadyApplied bool `json:"already_applied,omitempty"`
}
