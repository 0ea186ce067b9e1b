package auth

// Package auth contains domain-level types for the client authentication
// lifecycle. It is pure and free of transport/adapter concerns.

import "time"

// User represents the authenticated principal as the backend reports it.
// It is never persisted locally; it is reconstructed from the backend on
// every cold start via the stored token.
type User struct {
	ID        string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// IsZero reports whether the user carries no identity.
func (u User) IsZero() bool { return u.ID == "" && u.Email == "" }

// Session is the durable credential for the backend API. The token is opaque;
// validity is implied only by backend acceptance, so there is no client-side
// expiry field.
type Session struct {
	Token string `json:"session_token"`
}

// Status is the tri-state view of the authentication lifecycle.
type Status string

const (
	// StatusUnauthenticated means no valid session is held.
	StatusUnauthenticated Status = "unauthenticated"
	// StatusLoading means a restore or redirect exchange is in flight.
	StatusLoading Status = "loading"
	// StatusAuthenticated means a user and token are both present.
	StatusAuthenticated Status = "authenticated"
)

// State is an immutable snapshot of the lifecycle.
// Invariant: Status == StatusAuthenticated implies User and Session are set.
type State struct {
	Status  Status
	User    User
	Session Session
}

// Authenticated reports whether the snapshot holds a full identity.
func (s State) Authenticated() bool {
	return s.Status == StatusAuthenticated && !s.User.IsZero() && s.Session.Token != ""
}

// Unauthenticated returns the zero lifecycle state.
func Unauthenticated() State {
	return State{Status: StatusUnauthenticated}
}
