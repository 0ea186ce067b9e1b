package devauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisawise/pw-mobile-go/internal/ports"
)

func TestProvider_Begin_DefaultsSessionID(t *testing.T) {
	p := NewProvider(Config{})

	authURL, err := p.Begin(context.Background(), ports.BeginInput{
		CallbackURL: "http://127.0.0.1:43117/auth/callback",
	})

	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:43117/auth/callback#session_id=dev-session", authURL)
}

func TestProvider_RoundTrip(t *testing.T) {
	p := NewProvider(Config{SessionID: "my-dev-id"})

	authURL, err := p.Begin(context.Background(), ports.BeginInput{
		CallbackURL: "paisawise://auth/callback",
	})
	require.NoError(t, err)

	// Begin's output is itself the redirect that comes back.
	id, ok, err := p.Complete(context.Background(), authURL)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "my-dev-id", id)
}

func TestProvider_Begin_RequiresCallback(t *testing.T) {
	p := NewProvider(Config{})
	_, err := p.Begin(context.Background(), ports.BeginInput{})
	require.Error(t, err)
}
