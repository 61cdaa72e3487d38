package store

import (
	"context"
	"fmt"
	"time"

	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/ports"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis revocation list. Each entry lives until its token
// would have expired anyway.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.RevocationList = (*RedisStore)(nil)

// NewRedisStore creates a new Redis store
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "campus:revoked:",
	}
}

// Revoke marks a token as revoked in Redis
func (s *RedisStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	return s.RevokeDigest(ctx, core.TokenDigest(token), expiresAt)
}

// RevokeDigest marks a token digest as revoked in Redis.
func (s *RedisStore) RevokeDigest(ctx context.Context, digest string, expiresAt time.Time) error {
	var ttl time.Duration
	if !expiresAt.IsZero() {
		ttl = time.Until(expiresAt)
		if ttl <= 0 {
			// Already expired, expiry validation rejects it on its own.
			return nil
		}
	}

	if err := s.client.Set(ctx, s.prefix+digest, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// IsRevoked checks if a token is revoked in Redis
func (s *RedisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	val, err := s.client.Exists(ctx, s.prefix+core.TokenDigest(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return val > 0, nil
}
