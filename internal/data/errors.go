package data

import "errors"

// Shared sentinel errors for data-layer repositories. Services translate
// these into the API error taxonomy.
var (
	// Job repository sentinels.
	ErrJobNotFound       = errors.New("job not found")
	ErrAlreadyDelivered  = errors.New("job already delivered")
	ErrAlreadyCollected  = errors.New("job already collected")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotSwappable      = errors.New("job is not eligible for a swap")

	// Tenant directory sentinels.
	ErrTenantNotFound   = errors.New("tenant not found")
	ErrCustomerNotFound = errors.New("customer not found")

	// Accounting connection sentinels.
	ErrConnectionNotFound = errors.New("accounting connection not found")
	ErrSettingsNotFound   = errors.New("invoice settings not found")
)
