package xero

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/skipflow/skipflow-go/internal/core"
	"github.com/skipflow/skipflow-go/internal/data"
	apperrors "github.com/skipflow/skipflow-go/internal/errors"
)

// DefaultExpiryMargin is how long before nominal expiry a token is treated as
// stale. Clock skew between us and the accounting system stays inside it.
const DefaultExpiryMargin = 2 * time.Minute

// Credentials is what a call to the accounting API needs: a live access token
// and the tenant's organization id.
type Credentials struct {
	AccessToken string
	OrgID       string
}

// TokenManagerOptions groups constructor parameters for TokenManager.
type TokenManagerOptions struct {
	Connections core.ConnectionRepository
	OAuth       *oauth2.Config
	Logger      *slog.Logger
}

// TokenManager hands out valid access tokens per tenant, refreshing through the
// OAuth token endpoint when within the expiry margin. Concurrent requests for
// the same tenant coalesce into one refresh, and refreshed credentials are
// persisted before they are returned.
type TokenManager struct {
	connections  core.ConnectionRepository
	oauth        *oauth2.Config
	logger       *slog.Logger
	margin       time.Duration
	timeProvider data.TimeProvider

	group singleflight.Group
}

// NewTokenManager creates a TokenManager with the default expiry margin.
func NewTokenManager(opts TokenManagerOptions) *TokenManager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenManager{
		connections:  opts.Connections,
		oauth:        opts.OAuth,
		logger:       logger.With("component", "xero_tokens"),
		margin:       DefaultExpiryMargin,
		timeProvider: data.RealTimeProvider{},
	}
}

// WithMargin overrides the expiry margin. Useful for tests.
func (m *TokenManager) WithMargin(margin time.Duration) *TokenManager {
	m.margin = margin
	return m
}

// WithTimeProvider overrides the time source. Useful for tests.
func (m *TokenManager) WithTimeProvider(tp data.TimeProvider) *TokenManager {
	m.timeProvider = tp
	return m
}

// Credentials returns a usable access token and org id for the tenant,
// refreshing first when the stored token is inside the expiry margin.
func (m *TokenManager) Credentials(ctx context.Context, tenantID string) (Credentials, error) {
	conn, err := m.connections.Get(ctx, tenantID)
	if err != nil {
		if errors.Is(err, data.ErrConnectionNotFound) {
			return Credentials{}, apperrors.Configuration("accounting is not connected for this tenant")
		}
		return Credentials{}, err
	}

	if m.fresh(conn.ExpiresAt) {
		return Credentials{AccessToken: conn.AccessToken, OrgID: conn.OrgID}, nil
	}

	// Coalesce concurrent refreshes per tenant into a single token-endpoint call.
	v, err, _ := m.group.Do(tenantID, func() (any, error) {
		return m.refresh(ctx, tenantID)
	})
	if err != nil {
		return Credentials{}, err
	}
	creds, ok := v.(Credentials)
	if !ok {
		return Credentials{}, apperrors.Internal("unexpected refresh result type")
	}
	return creds, nil
}

func (m *TokenManager) fresh(expiresAt time.Time) bool {
	return m.timeProvider.Now().Before(expiresAt.Add(-m.margin))
}

// refresh exchanges the stored refresh token for new credentials and persists
// them before returning. The provider rotates refresh tokens on use, so the
// save must succeed before anyone sees the new access token; a crash after the
// exchange but before the save would otherwise strand the connection.
func (m *TokenManager) refresh(ctx context.Context, tenantID string) (Credentials, error) {
	// Re-read inside the flight: a just-finished refresh may have landed.
	conn, err := m.connections.Get(ctx, tenantID)
	if err != nil {
		return Credentials{}, err
	}
	if m.fresh(conn.ExpiresAt) {
		return Credentials{AccessToken: conn.AccessToken, OrgID: conn.OrgID}, nil
	}

	tok, err := m.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: conn.RefreshToken}).Token()
	if err != nil {
		return Credentials{}, apperrors.External("accounting token refresh failed", err)
	}

	conn.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		conn.RefreshToken = tok.RefreshToken
	}
	conn.ExpiresAt = tok.Expiry.UTC()
	if saveErr := m.connections.Save(ctx, conn); saveErr != nil {
		return Credentials{}, fmt.Errorf("persist refreshed credentials: %w", saveErr)
	}

	m.logger.InfoContext(ctx, "refreshed accounting credentials",
		"tenant_id", tenantID, "expires_at", conn.ExpiresAt)
	return Credentials{AccessToken: conn.AccessToken, OrgID: conn.OrgID}, nil
}
