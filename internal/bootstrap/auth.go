package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skipflow/skipflow-go/config"
	"github.com/skipflow/skipflow-go/internal/adapters/oidc"
	httpx "github.com/skipflow/skipflow-go/internal/http"
)

// BuildVerifier constructs the bearer-token verifier for the configured auth
// mode. Mock mode accepts any token and yields a fixed dev identity; it is
// refused outside development.
//
//nolint:ireturn // the router only needs the TokenVerifier behavior.
func BuildVerifier(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (httpx.TokenVerifier, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		if !cfg.IsDev {
			return nil, errors.New("mock auth mode is only allowed in development")
		}
		if logger != nil {
			logger.Warn("mock auth enabled, all requests use the dev identity",
				"subject", cfg.Auth.DevAuth.Subject)
		}
		return &mockVerifier{
			subject: cfg.Auth.DevAuth.Subject,
			email:   cfg.Auth.DevAuth.Email,
		}, nil
	case config.AuthModeOIDC:
		if cfg.Auth.OIDC.DiscoveryURL == "" {
			return nil, errors.New("OIDC_DISCOVERY_URL is required for oidc auth mode")
		}
		verifier, err := oidc.NewVerifier(ctx, oidc.VerifierConfig{
			ClientID:     cfg.Auth.OIDC.ClientID,
			DiscoveryURL: cfg.Auth.OIDC.DiscoveryURL,
		})
		if err != nil {
			return nil, fmt.Errorf("build oidc verifier: %w", err)
		}
		return verifier, nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
}

// mockVerifier accepts every token and returns a fixed identity.
type mockVerifier struct {
	subject string
	email   string
}

func (v *mockVerifier) Verify(_ context.Context, _ string) (*oidc.Identity, error) {
	return &oidc.Identity{Subject: v.subject, Email: v.email}, nil
}
