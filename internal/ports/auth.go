package ports

// Package ports defines interfaces (hexagonal ports) for the client core.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"
)

// ErrNoToken is returned by TokenStore.Load when no token is persisted.
// Callers treat it as "unauthenticated", not as a failure.
var ErrNoToken = errors.New("no session token stored")

// TokenStore persists the durable session token across restarts. There is
// exactly one token per install; no other component touches the storage.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// BeginInput carries inputs for initiating a login flow.
type BeginInput struct {
	// CallbackURL is the runtime-appropriate redirect target: a loopback URL
	// for a browser context, a custom-scheme URI for a native context.
	CallbackURL string
}

// LoginProvider initiates a login flow and turns a returning redirect URL
// into the short-lived session identifier the backend exchange accepts.
type LoginProvider interface {
	// Begin returns the identity-provider URL to navigate to.
	Begin(ctx context.Context, in BeginInput) (authURL string, err error)

	// Complete inspects a redirect URL delivered back to the app. ok=false
	// means the URL carries no credential for this provider; that is not an
	// error, the caller simply stands down.
	Complete(ctx context.Context, redirectURL string) (sessionID string, ok bool, err error)
}

// RedirectSource is a normalized stream of incoming redirect URLs. The two
// variants (loopback callback server, OS deep link) produce the same events
// consumed by one shared redirect handler.
type RedirectSource interface {
	// Start begins listening and returns the URL event channel. The channel
	// is closed when the source stops.
	Start(ctx context.Context) (<-chan string, error)

	// Close releases the source's resources.
	Close() error
}

// Navigator opens a URL in the user-facing browser context (system browser
// or a modal authentication session on native platforms).
type Navigator interface {
	Open(ctx context.Context, url string) error
}
