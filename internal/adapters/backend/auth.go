package backend

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/paisawise/pw-mobile-go/internal/domain/auth"
)

// sessionResponse is the exchange payload: identity plus the durable token.
type sessionResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Token   string `json:"session_token"`
}

// ExchangeSession trades a short-lived session identifier for a durable
// bearer token and the user behind it. The identifier travels in the
// X-Session-ID header; no bearer credential exists yet at this point.
func (c *Client) ExchangeSession(ctx context.Context, sessionID string) (domainauth.User, domainauth.Session, error) {
	if sessionID == "" {
		return domainauth.User{}, domainauth.Session{}, errors.New("session ID is required")
	}

	header := http.Header{}
	header.Set(headerSessionID, sessionID)

	var resp sessionResponse
	err := c.doRequest(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/session",
		header: header,
	}, &resp)
	if err != nil {
		return domainauth.User{}, domainauth.Session{}, err
	}
	if resp.Token == "" {
		return domainauth.User{}, domainauth.Session{}, errors.New("exchange response missing session token")
	}

	user := domainauth.User{
		ID:      resp.ID,
		Email:   resp.Email,
		Name:    resp.Name,
		Picture: resp.Picture,
	}
	return user, domainauth.Session{Token: resp.Token}, nil
}

// CurrentUser validates a stored token against /api/auth/me and returns the
// user it belongs to.
func (c *Client) CurrentUser(ctx context.Context, token string) (domainauth.User, error) {
	if token == "" {
		return domainauth.User{}, errors.New("token is required")
	}

	var user domainauth.User
	err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   "/api/auth/me",
		token:  token,
	}, &user)
	if err != nil {
		return domainauth.User{}, err
	}
	return user, nil
}

// Logout invalidates the server-side session for the token.
func (c *Client) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil // Nothing to invalidate
	}
	return c.doRequest(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/logout",
		token:  token,
	}, nil)
}
