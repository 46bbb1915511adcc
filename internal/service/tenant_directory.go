package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/skipflow/skipflow-go/internal/core"
	"github.com/skipflow/skipflow-go/internal/data"
	"github.com/skipflow/skipflow-go/internal/domain/model"
	apperrors "github.com/skipflow/skipflow-go/internal/errors"
)

// DefaultTenantCacheTTL bounds how stale a cached subject resolution can be.
const DefaultTenantCacheTTL = 5 * time.Minute

// TenantDirectoryOptions groups dependencies for TenantDirectory.
type TenantDirectoryOptions struct {
	Tenants  core.TenantRepository
	Cache    core.TenantCache // Optional: read-through cache
	CacheTTL time.Duration    // Optional: defaults to DefaultTenantCacheTTL
}

// TenantDirectory maps authenticated callers to their tenant scope. Every
// other component receives the resolved tenant id and filters by it.
type TenantDirectory struct {
	tenants  core.TenantRepository
	cache    core.TenantCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewTenantDirectory constructs a new TenantDirectory.
func NewTenantDirectory(opts TenantDirectoryOptions) *TenantDirectory {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultTenantCacheTTL
	}
	return &TenantDirectory{
		tenants:  opts.Tenants,
		cache:    opts.Cache,
		cacheTTL: ttl,
		logger:   slog.Default().With("component", "tenant_directory"),
	}
}

// ResolveSubject maps an IdP subject to its tenant, reading through the cache
// when one is wired. Cache failures degrade to a directory read, never to a
// request failure.
func (d *TenantDirectory) ResolveSubject(ctx context.Context, subject string) (*model.Tenant, error) {
	if subject == "" {
		return nil, apperrors.Validation("subject is required")
	}

	if d.cache != nil {
		if tenant, err := d.cache.Get(ctx, subject); err == nil && tenant != nil {
			return tenant, nil
		}
	}

	tenant, err := d.tenants.ResolveSubject(ctx, subject)
	if err != nil {
		if errors.Is(err, data.ErrTenantNotFound) {
			return nil, apperrors.NotFound("no tenant membership for caller")
		}
		return nil, fmt.Errorf("resolve subject: %w", err)
	}

	if d.cache != nil {
		if cacheErr := d.cache.Set(ctx, subject, tenant, d.cacheTTL); cacheErr != nil {
			d.logger.WarnContext(ctx, "tenant cache write failed", "error", cacheErr)
		}
	}
	return tenant, nil
}

// GetByID returns the tenant record.
func (d *TenantDirectory) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	tenant, err := d.tenants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrTenantNotFound) {
			return nil, apperrors.NotFoundf("tenant %s not found", id)
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return tenant, nil
}
