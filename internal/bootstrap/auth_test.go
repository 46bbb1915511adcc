package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skipflow/skipflow-go/config"
)

func TestBuildVerifierMockMode(t *testing.T) {
	cfg := &config.AppConfig{
		IsDev: true,
		Auth: config.AuthConfig{
			Mode:    config.AuthModeMock,
			DevAuth: config.DevAuthConfig{Subject: "dev-user", Email: "dev@example.com"},
		},
	}

	verifier, err := BuildVerifier(context.Background(), cfg, nil)
	require.NoError(t, err)

	identity, err := verifier.Verify(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "dev-user", identity.Subject)
	assert.Equal(t, "dev@example.com", identity.Email)
}

func TestBuildVerifierMockModeRefusedOutsideDev(t *testing.T) {
	cfg := &config.AppConfig{
		IsDev: false,
		Auth:  config.AuthConfig{Mode: config.AuthModeMock},
	}

	_, err := BuildVerifier(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "development")
}

func TestBuildVerifierOIDCRequiresDiscoveryURL(t *testing.T) {
	cfg := &config.AppConfig{
		Auth: config.AuthConfig{Mode: config.AuthModeOIDC},
	}

	_, err := BuildVerifier(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCOVERY_URL")
}
