package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces portal keys inside a shared Redis.
const DefaultKeyPrefix = "kivusafe:"

// TokenStore persists the session token under a single key.
// Key format: <prefix><name>, e.g. kivusafe:token
type TokenStore struct {
	client redis.UniversalClient
	key    string
}

// NewTokenStore wraps client. An empty prefix falls back to DefaultKeyPrefix.
func NewTokenStore(client redis.UniversalClient, prefix, name string) *TokenStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &TokenStore{client: client, key: prefix + name}
}

// Load returns "" when no token is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return token, nil
}

// Save stores token without expiry; the remote API owns token lifetime.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *TokenStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.key, err)
	}
	return nil
}

func (s *TokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
