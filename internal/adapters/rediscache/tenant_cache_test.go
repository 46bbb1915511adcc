package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skipflow/skipflow-go/internal/domain/model"
	"github.com/skipflow/skipflow-go/internal/testutil"
)

func TestTenantCache_SetAndGet(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewTenantCache(client)
	ctx := context.Background()

	tenant := &model.Tenant{
		ID:        "t1",
		Name:      "Acme Skips",
		CreatedAt: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
	}

	require.NoError(t, cache.Set(ctx, "auth0|driver-7", tenant, 5*time.Minute))

	got, err := cache.Get(ctx, "auth0|driver-7")
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, got.ID)
	assert.Equal(t, tenant.Name, got.Name)
	assert.True(t, tenant.CreatedAt.Equal(got.CreatedAt))
}

func TestTenantCache_GetMiss(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewTenantCache(client)

	_, err := cache.Get(context.Background(), "auth0|unknown")
	assert.Equal(t, ErrMiss, err)
}

func TestTenantCache_EmptySubject(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewTenantCache(client)
	ctx := context.Background()

	_, err := cache.Get(ctx, "")
	assert.Equal(t, ErrMiss, err)

	err = cache.Set(ctx, "", &model.Tenant{ID: "t1"}, time.Minute)
	assert.Error(t, err)
}

func TestTenantCache_TTLExpiration(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewTenantCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "auth0|short", &model.Tenant{ID: "t1"}, 100*time.Millisecond))

	_, err := cache.Get(ctx, "auth0|short")
	require.NoError(t, err)

	time.Sleep(200 * time.Millisecond)

	_, err = cache.Get(ctx, "auth0|short")
	assert.Equal(t, ErrMiss, err)
}

func TestTenantCache_RejectsInvalidSet(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewTenantCache(client)
	ctx := context.Background()

	assert.Error(t, cache.Set(ctx, "auth0|x", nil, time.Minute))
	assert.Error(t, cache.Set(ctx, "auth0|x", &model.Tenant{ID: "t1"}, 0))
}

func TestTenantCache_CustomPrefixIsolation(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	a := NewTenantCacheWithPrefix(client, "a:")
	b := NewTenantCacheWithPrefix(client, "b:")

	require.NoError(t, a.Set(ctx, "subject", &model.Tenant{ID: "t1"}, time.Minute))

	_, err := b.Get(ctx, "subject")
	assert.Equal(t, ErrMiss, err)
}
