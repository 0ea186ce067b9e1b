package redis

// Package redis provides a Redis-backed token store for shared or headless
// deployments where several processes act as one client install.

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/paisawise/pw-mobile-go/internal/ports"
)

const defaultKey = "session_token"

// TokenStore keeps the durable session token under a single namespaced key.
// The token has no client-side expiry, so no TTL is set; logout deletes it.
type TokenStore struct {
	client redis.UniversalClient
	key    string
}

var _ ports.TokenStore = (*TokenStore)(nil)

// NewTokenStore creates a Redis-backed token store.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return NewTokenStoreWithPrefix(client, "pwmobile:")
}

// NewTokenStoreWithPrefix creates a token store with a custom key prefix.
func NewTokenStoreWithPrefix(client redis.UniversalClient, prefix string) *TokenStore {
	return &TokenStore{
		client: client,
		key:    prefix + defaultKey,
	}
}

func (s *TokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrNoToken
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	if token == "" {
		return "", ports.ErrNoToken
	}
	return token, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	return s.client.Set(ctx, s.key, token, 0).Err()
}

func (s *TokenStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
