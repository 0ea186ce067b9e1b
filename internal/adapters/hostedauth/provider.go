package hostedauth

// Package hostedauth implements the hosted-page login flow: the user is sent
// to the provider's login page with a redirect target, and the provider
// returns a short-lived session_id in the redirect URL.

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	domainauth "github.com/paisawise/pw-mobile-go/internal/domain/auth"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

// Provider implements ports.LoginProvider against the hosted login page.
type Provider struct {
	loginURL *url.URL
}

var _ ports.LoginProvider = (*Provider)(nil)

// Config holds configuration for the hosted provider.
type Config struct {
	// LoginURL is the identity-provider page, e.g. "https://auth.paisawise.app/".
	LoginURL string
}

// NewProvider constructs a hosted login provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.LoginURL == "" {
		return nil, errors.New("login URL is required")
	}
	u, err := url.Parse(cfg.LoginURL)
	if err != nil {
		return nil, fmt.Errorf("parse login URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("login URL %q is not absolute", cfg.LoginURL)
	}
	return &Provider{loginURL: u}, nil
}

// Begin builds the provider page URL with the callback target. A uuid state
// parameter rides along so the page can correlate the round trip; the session
// identifier itself is the only credential the redirect carries back.
func (p *Provider) Begin(_ context.Context, in ports.BeginInput) (string, error) {
	if in.CallbackURL == "" {
		return "", errors.New("callback URL is required")
	}

	u := *p.loginURL
	q := u.Query()
	q.Set("redirect", in.CallbackURL)
	q.Set("state", uuid.NewString())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Complete extracts the session identifier from the redirect URL. A URL
// without the marker is not an error; the caller stands down.
func (p *Provider) Complete(_ context.Context, redirectURL string) (string, bool, error) {
	id, ok := domainauth.ExtractSessionID(redirectURL)
	if !ok {
		return "", false, nil
	}
	return id, true, nil
}
