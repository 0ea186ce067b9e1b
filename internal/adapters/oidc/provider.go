// Package oidc implements a direct authorization-code login flow for
// deployments that front the backend with a standard OIDC identity provider
// instead of the hosted page. The verified raw ID token becomes the session
// identifier presented to the backend exchange endpoint.
package oidc

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/paisawise/pw-mobile-go/internal/ports"
)

// Provider implements ports.LoginProvider using OIDC/OAuth2.
type Provider struct {
	config   *oauth2.Config
	verifier *gooidc.IDTokenVerifier

	// One login flow is in flight at a time; state, nonce, and the callback
	// from Begin are used again in Complete.
	mu       sync.Mutex
	state    string
	nonce    string
	callback string
}

var _ ports.LoginProvider = (*Provider)(nil)

// ProviderConfig holds configuration for the OIDC provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	Scope        string
	DiscoveryURL string
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// NewProvider creates a new OIDC provider via discovery.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(cfg.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       strings.Fields(cfg.Scope),
			Endpoint:     op.Endpoint(),
		},
		verifier: op.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// Begin returns the provider authorization URL with fresh state and nonce.
func (p *Provider) Begin(_ context.Context, in ports.BeginInput) (string, error) {
	if in.CallbackURL == "" {
		return "", errors.New("callback URL is required")
	}

	state, err := randomString(32)
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomString(32)
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	p.mu.Lock()
	p.state, p.nonce, p.callback = state, nonce, in.CallbackURL
	p.mu.Unlock()

	authURL := p.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("redirect_uri", in.CallbackURL),
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
	return authURL, nil
}

// Complete exchanges the authorization code carried by the redirect URL and
// returns the verified raw ID token as the session identifier. A redirect
// without a code parameter stands down with ok=false.
func (p *Provider) Complete(ctx context.Context, redirectURL string) (string, bool, error) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return "", false, nil
	}
	code := u.Query().Get("code")
	if code == "" {
		return "", false, nil
	}

	p.mu.Lock()
	state, nonce, callback := p.state, p.nonce, p.callback
	p.mu.Unlock()

	if state == "" || u.Query().Get("state") != state {
		return "", true, errors.New("state mismatch on redirect")
	}

	// The token request must repeat the redirect_uri that was sent on the
	// authorization request (RFC 6749 section 4.1.3).
	token, err := p.config.Exchange(ctx, code,
		oauth2.SetAuthURLParam("redirect_uri", callback),
	)
	if err != nil {
		return "", true, fmt.Errorf("exchange code for token: %w", err)
	}

	rawID, ok := token.Extra("id_token").(string)
	if !ok || rawID == "" {
		return "", true, errors.New("missing id_token in token response")
	}
	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return "", true, fmt.Errorf("verify id_token: %w", err)
	}
	if idTok.Nonce != nonce {
		return "", true, errors.New("invalid nonce")
	}

	return rawID, true, nil
}

// randomString generates a cryptographically secure URL-safe random string of
// exact length.
func randomString(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	nBytes := (length*3 + 3) / 4
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	for len(s) < length {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:length], nil
}
