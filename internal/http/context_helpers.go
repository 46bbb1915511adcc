package httpx

import (
	"context"

	"github.com/skipflow/skipflow-go/internal/adapters/oidc"
	"github.com/skipflow/skipflow-go/internal/domain/model"
)

// tenantKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type tenantKey struct{}

type identityKey struct{}

// SetTenantInContext returns a child context that carries the resolved tenant.
// If tenant is nil, the original ctx is returned unchanged.
func SetTenantInContext(ctx context.Context, tenant *model.Tenant) context.Context {
	if tenant == nil {
		return ctx
	}
	return context.WithValue(ctx, tenantKey{}, tenant)
}

// GetTenantFromContext returns the tenant from context and a boolean indicating presence.
func GetTenantFromContext(ctx context.Context) (*model.Tenant, bool) {
	if tenant, ok := ctx.Value(tenantKey{}).(*model.Tenant); ok && tenant != nil {
		return tenant, true
	}
	return nil, false
}

// TenantID returns the resolved tenant id, or empty string when the request is
// unscoped.
func TenantID(ctx context.Context) string {
	if tenant, ok := GetTenantFromContext(ctx); ok {
		return tenant.ID
	}
	return ""
}

// SetIdentityInContext returns a child context that carries the verified caller
// identity.
func SetIdentityInContext(ctx context.Context, identity *oidc.Identity) context.Context {
	if identity == nil {
		return ctx
	}
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext returns the caller identity from context and a boolean
// indicating presence.
func GetIdentityFromContext(ctx context.Context) (*oidc.Identity, bool) {
	if identity, ok := ctx.Value(identityKey{}).(*oidc.Identity); ok && identity != nil {
		return identity, true
	}
	return nil, false
}

// CallerID returns the verified subject of the caller as a user id pointer, or
// nil when the request carries no identity.
func CallerID(ctx context.Context) *string {
	if identity, ok := GetIdentityFromContext(ctx); ok {
		return &identity.Subject
	}
	return nil
}
