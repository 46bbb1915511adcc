package model

import "time"

// Tenant is one skip-hire company ("subscriber") using the platform. It is the
// isolation boundary: every job, event, customer and driver row is owned by
// exactly one tenant, and every query is scoped by its id.
type Tenant struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Customer is a tenant's customer. Account customers are invoiced monthly via a
// shared draft invoice rather than per job.
type Customer struct {
	ID       string `json:"id"        db:"id"`
	TenantID string `json:"tenant_id" db:"tenant_id"`
	Name     string `json:"name"      db:"name"`
	// AccountNumber is the exact-match key for contact resolution in the external
	// accounting system.
	AccountNumber *string   `json:"account_number,omitempty" db:"account_number"`
	Email         *string   `json:"email,omitempty"          db:"email"`
	CreatedAt     time.Time `json:"created_at"               db:"created_at"`
}

// Driver is a tenant's driver.
type Driver struct {
	ID        string    `json:"id"         db:"id"`
	TenantID  string    `json:"tenant_id"  db:"tenant_id"`
	Name      string    `json:"name"       db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SkipType is a size/class of skip a tenant offers.
type SkipType struct {
	ID        string    `json:"id"         db:"id"`
	TenantID  string    `json:"tenant_id"  db:"tenant_id"`
	Name      string    `json:"name"       db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AccountingConnection holds a tenant's credentials for the external accounting
// system. Token values are stored encrypted at rest; the fields here carry the
// decrypted values in memory only.
type AccountingConnection struct {
	TenantID     string    `json:"tenant_id"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	// OrgID is the accounting-side organization identifier sent as a header on
	// every call.
	OrgID     string    `json:"org_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceSettings holds a tenant's account-code mappings for invoicing.
type InvoiceSettings struct {
	TenantID string `json:"tenant_id" db:"tenant_id"`
	// CardClearingCode is the account payments for card jobs clear through.
	CardClearingCode string `json:"card_clearing_code" db:"card_clearing_code"`
	// BankAccountCode is the bank account cash payments post to.
	BankAccountCode string `json:"bank_account_code" db:"bank_account_code"`
	// SalesAccountCode is the revenue account invoice lines book to.
	SalesAccountCode string `json:"sales_account_code" db:"sales_account_code"`
	// FallbackToDefaults controls whether missing codes fall back to platform
	// defaults from the environment or hard-fail with a configuration error.
	FallbackToDefaults bool      `json:"fallback_to_defaults" db:"fallback_to_defaults"`
	UpdatedAt          time.Time `json:"updated_at"           db:"updated_at"`
}
