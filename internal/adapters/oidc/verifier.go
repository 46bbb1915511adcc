package oidc

// Package oidc verifies bearer ID tokens presented by API callers. Discovery
// and key management are delegated to go-oidc; callers only see the verified
// identity claims.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// Identity is the verified caller identity extracted from an ID token. Subject
// is the stable key used for tenant-membership resolution.
type Identity struct {
	Subject   string
	Email     string
	Name      string
	ExpiresAt time.Time
}

// VerifierConfig holds configuration for the token verifier.
type VerifierConfig struct {
	ClientID     string
	DiscoveryURL string
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// Verifier validates raw bearer tokens against the provider's signing keys.
type Verifier struct {
	verifier *gooidc.IDTokenVerifier
}

// NewVerifier creates a Verifier, fetching the provider's discovery document once.
func NewVerifier(ctx context.Context, config VerifierConfig) (*Verifier, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	op, err := gooidc.NewProvider(ctx, trimDiscoverySuffix(config.DiscoveryURL))
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	return &Verifier{
		verifier: op.Verifier(&gooidc.Config{ClientID: config.ClientID}),
	}, nil
}

// Verify validates the raw token's signature, issuer, audience, and expiry,
// then extracts the caller identity.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	if rawToken == "" {
		return nil, errors.New("token is required")
	}

	idTok, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("verify id_token: %w", err)
	}

	var claims idTokenClaims
	if claimsErr := idTok.Claims(&claims); claimsErr != nil {
		return nil, fmt.Errorf("parse id_token claims: %w", claimsErr)
	}

	identity := mapIdentity(claims, idTok.Expiry)
	return &identity, nil
}

// idTokenClaims is a superset of the claim shapes seen across providers.
type idTokenClaims struct {
	Sub               string `json:"sub"`
	Email             string `json:"email"`
	Mail              string `json:"mail"`
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
}

// mapIdentity maps raw claims into an Identity using precedence rules.
func mapIdentity(c idTokenClaims, expiry time.Time) Identity {
	return Identity{
		Subject:   c.Sub,
		Email:     firstNonEmpty(c.Email, c.Mail),
		Name:      firstNonEmpty(c.Name, c.PreferredUsername),
		ExpiresAt: expiry,
	}
}

// trimDiscoverySuffix normalizes a discovery URL down to the bare issuer.
func trimDiscoverySuffix(u string) string {
	issuer := strings.TrimSuffix(u, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	return issuer
}

// firstNonEmpty returns the first non-empty string from vals, or empty string if none.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
