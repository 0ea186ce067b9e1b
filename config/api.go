package config

import "time"

// APIConfig contains backend REST API configuration.
type APIConfig struct {
	// BaseURL is the base URL of the backend (e.g., "https://api.paisawise.app").
	// All endpoint paths are resolved relative to it.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000"`

	// Timeout bounds every outbound backend call. A hung request must never
	// leave the auth state machine loading forever.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// UserAgent is sent on every request.
	UserAgent string `env:"USER_AGENT" envDefault:"pw-mobile-go/1.0"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	// Clamp timeout to a sane range; zero would disable the deadline.
	if a.Timeout < time.Second {
		a.Timeout = time.Second
	}
	if a.Timeout > 2*time.Minute {
		a.Timeout = 2 * time.Minute
	}
}
