package config

import "time"

// AccountingConfig contains configuration for the external accounting
// integration. Per-tenant credentials live in the database; these are the
// app-level OAuth client settings and fallback account codes.
type AccountingConfig struct {
	// ClientID and ClientSecret identify this application to the accounting
	// provider's OAuth endpoint.
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`

	// TokenURL is the OAuth2 token endpoint used for refresh grants.
	TokenURL string `env:"TOKEN_URL" envDefault:"https://identity.xero.com/connect/token"`

	// BaseURL is the accounting API base URL.
	BaseURL string `env:"BASE_URL" envDefault:"https://api.xero.com/api.xro/2.0"`

	// RefreshMargin is how long before expiry an access token is refreshed.
	RefreshMargin time.Duration `env:"REFRESH_MARGIN" envDefault:"2m"`

	// EncryptionKey encrypts tenant refresh tokens at rest. Must be 16, 24, or
	// 32 bytes. Empty disables encryption (development only).
	EncryptionKey string `env:"TOKEN_ENCRYPTION_KEY"`

	// Codes are the fallback chart-of-accounts codes used when a tenant has no
	// invoice settings of its own.
	Codes AccountCodesConfig `envPrefix:"CODE_"`
}

// AccountCodesConfig holds the fallback chart-of-accounts codes.
type AccountCodesConfig struct {
	// CardClearing is the clearing account card payments are posted to.
	CardClearing string `env:"CARD_CLEARING" envDefault:"090"`
	// Bank is the bank account cash payments are posted to.
	Bank string `env:"BANK" envDefault:"091"`
	// Sales is the revenue account invoice lines are coded to.
	Sales string `env:"SALES" envDefault:"200"`
}

// Sanitize applies guardrails to accounting configuration values.
func (c *AccountingConfig) Sanitize() {
	if c.RefreshMargin <= 0 {
		c.RefreshMargin = 2 * time.Minute
	}
}
