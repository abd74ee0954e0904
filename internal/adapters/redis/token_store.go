package redis

// Package redis provides Redis-based adapters for the reports UI API.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medisys/reports-ui-api/internal/ports"
)

// TokenStore persists raw identity tokens keyed by opaque session id.
// It is a pure storage primitive: the session service decides when a token
// is expired or invalid and calls Clear; the TTL handed to Set only bounds
// how long Redis keeps an abandoned key around.
type TokenStore struct {
	client redis.UniversalClient
	prefix string
}

// NewTokenStore creates a Redis-backed token store with the default prefix.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return &TokenStore{
		client: client,
		prefix: "idtoken:",
	}
}

// NewTokenStoreWithPrefix creates a token store with a custom key prefix.
func NewTokenStoreWithPrefix(client redis.UniversalClient, prefix string) *TokenStore {
	return &TokenStore{
		client: client,
		prefix: prefix,
	}
}

// Get returns the raw token stored for the session id.
// Returns ports.ErrTokenNotFound when no token is stored.
func (s *TokenStore) Get(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ports.ErrTokenNotFound
	}

	raw, err := s.client.Get(ctx, s.prefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrTokenNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return raw, nil
}

// Set stores the raw token for the session id with the given TTL.
func (s *TokenStore) Set(ctx context.Context, sessionID, rawToken string, ttl time.Duration) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	if rawToken == "" {
		return errors.New("token cannot be empty")
	}
	if ttl <= 0 {
		// Token is already expired, don't store it
		return errors.New("token is expired")
	}

	return s.client.Set(ctx, s.prefix+sessionID, rawToken, ttl).Err()
}

// Clear removes the stored token for the session id. Clearing an absent
// session id is a no-op.
func (s *TokenStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+sessionID).Err()
}
