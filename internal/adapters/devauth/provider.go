package devauth

// Package devauth provides a login provider for local development. It skips
// the identity-provider page entirely: Begin returns the app's own callback
// URL already carrying a session_id marker, so the normal redirect path runs
// against a backend started in dev mode (which accepts dev session ids).

import (
	"context"
	"errors"

	domainauth "github.com/paisawise/pw-mobile-go/internal/domain/auth"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

// Provider implements ports.LoginProvider for local development.
type Provider struct {
	sessionID string
}

var _ ports.LoginProvider = (*Provider)(nil)

// Config controls the dev provider behavior.
type Config struct {
	// SessionID is the identifier handed to the backend exchange.
	// Defaults to "dev-session".
	SessionID string
}

// NewProvider constructs a dev login provider.
func NewProvider(cfg Config) *Provider {
	id := cfg.SessionID
	if id == "" {
		id = "dev-session"
	}
	return &Provider{sessionID: id}
}

// Begin short-circuits the provider page: the "auth URL" is the callback
// itself with the dev session id in the fragment.
func (p *Provider) Begin(_ context.Context, in ports.BeginInput) (string, error) {
	if in.CallbackURL == "" {
		return "", errors.New("callback URL is required")
	}
	return in.CallbackURL + "#" + domainauth.SessionIDParam + "=" + p.sessionID, nil
}

// Complete extracts the session id the same way the hosted provider does.
func (p *Provider) Complete(_ context.Context, redirectURL string) (string, bool, error) {
	id, ok := domainauth.ExtractSessionID(redirectURL)
	if !ok {
		return "", false, nil
	}
	return id, true, nil
}
