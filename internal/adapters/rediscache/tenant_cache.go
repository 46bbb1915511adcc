package rediscache

// Package rediscache provides Redis-backed caches for the skipflow system.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skipflow/skipflow-go/internal/domain/model"
)

// ErrMiss is returned when the cached value is absent or unreadable.
var ErrMiss error = missError{}

type missError struct{}

func (missError) Error() string { return "cache miss" }

// TenantCache caches subject-to-tenant resolutions. A miss is not an error
// condition for callers doing read-through; they fall back to the directory.
type TenantCache struct {
	client redis.UniversalClient
	prefix string
}

// NewTenantCache creates a TenantCache with the default key prefix.
func NewTenantCache(client redis.UniversalClient) *TenantCache {
	return &TenantCache{
		client: client,
		prefix: "tenant:subject:",
	}
}

// NewTenantCacheWithPrefix creates a TenantCache with a custom key prefix.
func NewTenantCacheWithPrefix(client redis.UniversalClient, prefix string) *TenantCache {
	return &TenantCache{
		client: client,
		prefix: prefix,
	}
}

// Get returns the cached tenant for the subject, or ErrMiss.
func (c *TenantCache) Get(ctx context.Context, subject string) (*model.Tenant, error) {
	if subject == "" {
		return nil, ErrMiss
	}

	data, err := c.client.Get(ctx, c.prefix+subject).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var tenant model.Tenant
	if unmarshalErr := json.Unmarshal([]byte(data), &tenant); unmarshalErr != nil {
		// A corrupt entry reads as a miss so the caller re-resolves and overwrites it.
		return nil, ErrMiss
	}
	return &tenant, nil
}

// Set caches the tenant for the subject with the given TTL.
func (c *TenantCache) Set(ctx context.Context, subject string, tenant *model.Tenant, ttl time.Duration) error {
	if subject == "" {
		return errors.New("subject cannot be empty")
	}
	if tenant == nil {
		return errors.New("tenant cannot be nil")
	}
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}

	data, err := json.Marshal(tenant)
	if err != nil {
		return fmt.Errorf("marshal tenant: %w", err)
	}
	return c.client.Set(ctx, c.prefix+subject, data, ttl).Err()
}
