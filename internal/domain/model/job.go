// Package model defines the core data types used throughout the skipflow platform.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// JobStatus represents the lifecycle state of a skip-hire job.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type JobStatus string

const (
	// JobStatusBooked indicates a job that is booked but not yet delivered.
	JobStatusBooked JobStatus = "booked"
	// JobStatusDelivered indicates the skip is on site.
	JobStatusDelivered JobStatus = "delivered"
	// JobStatusAwaitingCollection indicates collection is scheduled but not yet done
	// (set when a swap is booked for the job).
	JobStatusAwaitingCollection JobStatus = "awaiting_collection"
	// JobStatusCollected indicates the skip has been collected. Terminal.
	JobStatusCollected JobStatus = "collected"
	// JobStatusCancelled indicates the job was cancelled before completion. Terminal.
	JobStatusCancelled JobStatus = "cancelled"
)

// Valid returns true if the JobStatus is one of the known states.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusBooked, JobStatusDelivered, JobStatusAwaitingCollection,
		JobStatusCollected, JobStatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status permits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCollected || s == JobStatusCancelled
}

// CanTransition reports whether moving from s to next is a legal lifecycle step.
// Cancellation is reachable from any non-terminal state.
func (s JobStatus) CanTransition(next JobStatus) bool {
	if next == JobStatusCancelled {
		return !s.Terminal()
	}
	switch s {
	case JobStatusBooked:
		return next == JobStatusDelivered
	case JobStatusDelivered:
		return next == JobStatusAwaitingCollection || next == JobStatusCollected
	case JobStatusAwaitingCollection:
		return next == JobStatusCollected
	default:
		return false
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for JobStatus.
func (s *JobStatus) UnmarshalText(text []byte) error {
	v := JobStatus(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid job status: %q", string(text))
	}
	*s = v
	return nil
}

// PaymentType categorizes how a job is billed.
type PaymentType string

const (
	// PaymentTypeCard jobs are invoiced and paid immediately against the card
	// clearing account.
	PaymentTypeCard PaymentType = "card"
	// PaymentTypeCash jobs are invoiced and left unpaid until reconciled.
	PaymentTypeCash PaymentType = "cash"
	// PaymentTypeAccount jobs accumulate onto a monthly draft invoice per customer
	// and must never receive a direct per-job payment.
	PaymentTypeAccount PaymentType = "account"
)

// Valid returns true if the PaymentType is known.
func (p PaymentType) Valid() bool {
	return p == PaymentTypeCard || p == PaymentTypeCash || p == PaymentTypeAccount
}

// PaymentMethod is the closed set of methods a payment can be reconciled with.
// The method determines the target account: cash posts to the configured bank
// account, card posts to the configured card clearing account.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

// ParsePaymentMethod normalizes a free-text method into the closed enumeration.
// Anything that is not cash (including card_terminal, card_online and unknown
// values) resolves to the card path.
func ParsePaymentMethod(raw string) PaymentMethod {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == string(PaymentMethodCash) {
		return PaymentMethodCash
	}
	return PaymentMethodCard
}

// SwapRole identifies which leg of a swap pair a job is.
type SwapRole string

const (
	// SwapRoleCollect is the old on-site job whose skip is being collected.
	SwapRoleCollect SwapRole = "collect"
	// SwapRoleDeliver is the new job delivering the replacement skip.
	SwapRoleDeliver SwapRole = "deliver"
)

// Valid returns true if the SwapRole is known.
func (r SwapRole) Valid() bool {
	return r == SwapRoleCollect || r == SwapRoleDeliver
}

// Job represents one skip-hire engagement: a skip delivered to a site and later
// collected. Jobs are never hard-deleted; closure is a status transition.
type Job struct {
	ID         string `json:"id"          db:"id"`
	TenantID   string `json:"tenant_id"   db:"tenant_id"`
	JobNumber  string `json:"job_number"  db:"job_number"`
	CustomerID string `json:"customer_id" db:"customer_id"`
	SkipTypeID string `json:"skip_type_id" db:"skip_type_id"`

	SiteAddress1 string  `json:"site_address1"           db:"site_address1"`
	SiteAddress2 *string `json:"site_address2,omitempty" db:"site_address2"`
	SiteTown     string  `json:"site_town"               db:"site_town"`
	SitePostcode string  `json:"site_postcode"           db:"site_postcode"`

	ScheduledDate  Date       `json:"scheduled_date"            db:"scheduled_date"`
	CollectionDate *Date      `json:"collection_date,omitempty" db:"collection_date"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"    db:"delivered_at"`
	CollectedAt    *time.Time `json:"collected_at,omitempty"    db:"collected_at"`

	Status      JobStatus       `json:"status"        db:"status"`
	PaymentType PaymentType     `json:"payment_type"  db:"payment_type"`
	PriceIncVAT decimal.Decimal `json:"price_inc_vat" db:"price_inc_vat"`
	DriverID    *string         `json:"driver_id,omitempty" db:"driver_id"`
	Notes       *string         `json:"notes,omitempty"     db:"notes"`

	SwapGroupID    *string   `json:"swap_group_id,omitempty"    db:"swap_group_id"`
	SwapRole       *SwapRole `json:"swap_role,omitempty"        db:"swap_role"`
	DriverRunGroup *int      `json:"driver_run_group,omitempty" db:"driver_run_group"`
	DriverSortKey  *int      `json:"driver_sort_key,omitempty"  db:"driver_sort_key"`

	XeroInvoiceID     *string `json:"xero_invoice_id,omitempty"     db:"xero_invoice_id"`
	XeroInvoiceNumber *string `json:"xero_invoice_number,omitempty" db:"xero_invoice_number"`
	XeroInvoiceStatus *string `json:"xero_invoice_status,omitempty" db:"xero_invoice_status"`
	XeroPaymentID     *string `json:"xero_payment_id,omitempty"     db:"xero_payment_id"`

	PaidAt        *time.Time     `json:"paid_at,omitempty"         db:"paid_at"`
	PaidMethod    *PaymentMethod `json:"paid_method,omitempty"     db:"paid_method"`
	PaidReference *string        `json:"paid_reference,omitempty"  db:"paid_reference"`
	PaidByUserID  *string        `json:"paid_by_user_id,omitempty" db:"paid_by_user_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsPaid reports whether the internal paid record is set.
func (j *Job) IsPaid() bool {
	return j.PaidAt != nil
}

// EligibleForSwap reports whether the job can be the collect leg of a new swap:
// the skip must be on site (delivered or already awaiting collection) and not
// yet actually collected.
func (j *Job) EligibleForSwap() bool {
	if j.CollectedAt != nil {
		return false
	}
	return j.Status == JobStatusDelivered || j.Status == JobStatusAwaitingCollection
}

// CreateJobRequest represents a booking request for a new job.
type CreateJobRequest struct {
	CustomerID    string          `json:"customer_id"`
	SkipTypeID    string          `json:"skip_type_id"`
	SiteAddress1  string          `json:"site_address1"`
	SiteAddress2  *string         `json:"site_address2,omitempty"`
	SiteTown      string          `json:"site_town"`
	SitePostcode  string          `json:"site_postcode"`
	ScheduledDate string          `json:"scheduled_date"`
	PaymentType   PaymentType     `json:"payment_type"`
	PriceIncVAT   decimal.Decimal `json:"price_inc_vat"`
	DriverID      *string         `json:"driver_id,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	// CreateInvoice controls whether booking also raises an invoice in the external
	// accounting system. Defaults to true.
	CreateInvoice *bool `json:"create_invoice,omitempty"`
}

// Validate validates the CreateJobRequest fields.
func (r *CreateJobRequest) Validate() error {
	if strings.TrimSpace(r.CustomerID) == "" {
		return errors.New("customer_id is required")
	}
	if strings.TrimSpace(r.SkipTypeID) == "" {
		return errors.New("skip_type_id is required")
	}
	if strings.TrimSpace(r.SiteAddress1) == "" {
		return errors.New("site_address1 is required")
	}
	if strings.TrimSpace(r.SitePostcode) == "" {
		return errors.New("site_postcode is required")
	}
	if _, err := ParseDate(r.ScheduledDate); err != nil {
		return fmt.Errorf("scheduled_date: %w", err)
	}
	if !r.PaymentType.Valid() {
		return fmt.Errorf("invalid payment_type %q", r.PaymentType)
	}
	if !r.PriceIncVAT.IsPositive() {
		return errors.New("price_inc_vat must be greater than zero")
	}
	return nil
}

// WantInvoice reports whether the booking should raise an invoice (default true).
func (r *CreateJobRequest) WantInvoice() bool {
	return r.CreateInvoice == nil || *r.CreateInvoice
}

// JobListOptions controls filtering and paging for job listings.
// Filters match exactly; Date matches either the scheduled delivery date or the
// scheduled collection date.
type JobListOptions struct {
	Limit    int
	Offset   int
	Status   *JobStatus
	DriverID *string
	Date     *Date
}
