package config

import (
	"fmt"
	"strings"
)

// AuthMode represents the login flow the client uses.
type AuthMode string

const (
	// AuthModeHosted uses the hosted identity-provider page; the redirect
	// delivers a short-lived session_id that is exchanged at the backend.
	AuthModeHosted AuthMode = "hosted"
	// AuthModeOIDC runs a standard authorization-code flow directly against
	// an OIDC identity provider (self-hosted deployments without the hosted
	// page).
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock uses a local mock provider (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "hosted", "oidc", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: hosted, oidc, mock)", v)
	}
}

// RedirectMode selects how redirect URLs reach the client.
type RedirectMode string

const (
	// RedirectModeLoopback runs a localhost callback server (browser-location
	// style delivery).
	RedirectModeLoopback RedirectMode = "loopback"
	// RedirectModeDeepLink consumes URLs delivered out-of-band by the OS
	// (custom URI scheme).
	RedirectModeDeepLink RedirectMode = "deeplink"
)

// UnmarshalText implements encoding.TextUnmarshaler for RedirectMode.
func (r *RedirectMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "loopback", "deeplink":
		*r = RedirectMode(v)
		return nil
	default:
		return fmt.Errorf("invalid RedirectMode: %q (valid options: loopback, deeplink)", v)
	}
}

// HostedConfig contains hosted login page configuration.
type HostedConfig struct {
	// LoginURL is the identity-provider page the user is sent to.
	LoginURL string `env:"LOGIN_URL" envDefault:"https://auth.paisawise.app/"`
}

// OIDCConfig contains direct OIDC flow configuration (used when Mode=oidc).
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// MockAuthConfig controls the mock provider behavior.
// Used when AUTH_MODE=mock for development and testing.
type MockAuthConfig struct {
	// SessionID is handed to the backend exchange; a backend started in dev
	// mode accepts it and fabricates the dev identity server-side.
	SessionID string `env:"SESSION_ID" envDefault:"dev-session"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which login provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"hosted"`

	// Redirect determines how the post-login redirect reaches the client.
	Redirect RedirectMode `env:"AUTH_REDIRECT" envDefault:"loopback"`

	// CallbackPort is the loopback callback server port (0 picks a free port).
	CallbackPort int `env:"AUTH_CALLBACK_PORT" envDefault:"43117"`

	// CallbackScheme is the custom URI scheme registered for deep links.
	CallbackScheme string `env:"AUTH_CALLBACK_SCHEME" envDefault:"paisawise"`

	// AllowedOrigins lists callback origins whose registered domain is
	// accepted on incoming redirect URLs. Empty means loopback-only.
	AllowedOrigins []string `env:"AUTH_ALLOWED_ORIGINS" envSeparator:";"`

	// Hosted page configuration (used when Mode=hosted).
	Hosted HostedConfig `envPrefix:"AUTH_HOSTED_"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"AUTH_OIDC_"`

	// Mock configuration (used when Mode=mock).
	Mock MockAuthConfig `envPrefix:"AUTH_MOCK_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.CallbackPort < 0 || a.CallbackPort > 65535 {
		a.CallbackPort = 0
	}
	a.CallbackScheme = strings.TrimSuffix(strings.ToLower(a.CallbackScheme), "://")
}
