package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mirror types for the external accounting system. The external system is the
// source of truth for invoice status and amount-due; these values are re-fetched
// rather than cached long-term.

// External invoice statuses as reported by the accounting system.
const (
	InvoiceStatusDraft      = "DRAFT"
	InvoiceStatusAuthorised = "AUTHORISED"
	InvoiceStatusPaid       = "PAID"
	InvoiceStatusVoided     = "VOIDED"
)

// InvoiceTypeReceivable is the accounts-receivable invoice type. Reference
// lookups are restricted to this type.
const InvoiceTypeReceivable = "ACCREC"

// AccountTypeBank is the account class cash payments must post to.
const AccountTypeBank = "BANK"

// Contact mirrors an external accounting contact.
type Contact struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	AccountNumber *string `json:"account_number,omitempty"`
	Email         *string `json:"email,omitempty"`
}

// InvoiceLine is one line item on an external invoice. Amounts are VAT-inclusive.
type InvoiceLine struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitAmount  decimal.Decimal `json:"unit_amount"`
	AccountCode string          `json:"account_code"`
}

// Invoice mirrors an external accounting invoice.
type Invoice struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	Type      string          `json:"type"`
	Status    string          `json:"status"`
	Reference string          `json:"reference"`
	ContactID string          `json:"contact_id"`
	Total     decimal.Decimal `json:"total"`
	AmountDue decimal.Decimal `json:"amount_due"`
	Date      Date            `json:"date"`
	DueDate   *Date           `json:"due_date,omitempty"`
	Lines     []InvoiceLine   `json:"lines,omitempty"`
}

// ExternalPayment mirrors a payment recorded in the external accounting system.
type ExternalPayment struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	AccountCode string          `json:"account_code"`
	Amount      decimal.Decimal `json:"amount"`
	Date        Date            `json:"date"`
}

// Account mirrors an entry in the external chart of accounts.
type Account struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// IsBank reports whether the account can receive bank payments.
func (a Account) IsBank() bool {
	return a.Type == AccountTypeBank
}

// CreateInvoiceParams groups parameters for creating an external invoice.
type CreateInvoiceParams struct {
	ContactID string
	Status    string
	Reference string
	Date      Date
	Lines     []InvoiceLine
}

// CreatePaymentParams groups parameters for creating an external payment.
type CreatePaymentParams struct {
	InvoiceID   string
	AccountCode string
	Amount      decimal.Decimal
	Date        Date
}

// CreateContactParams groups parameters for creating an external contact.
type CreateContactParams struct {
	Name          string
	AccountNumber *string
	Email         string
}

// MonthlyReference builds the deterministic reference string identifying the
// single draft invoice an account customer accumulates onto for a calendar
// month.
func MonthlyReference(customerID string, at time.Time) string {
	return "ACC-" + customerID + "-" + at.UTC().Format("2006-01")
}
