package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps change stream resume tokens in Redis. It satisfies the
// mongo feed's ResumeTokenStore.
type TokenStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewTokenStore stores tokens with the given expiry; zero keeps them forever.
func NewTokenStore(client redis.Cmdable, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

// Load returns nil, nil when key holds no token.
func (s *TokenStore) Load(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrTokenStore, err)
	}
	return b, nil
}

// Save overwrites the token at key.
func (s *TokenStore) Save(ctx context.Context, key string, token []byte) error {
	if err := s.client.Set(ctx, key, token, s.ttl).Err(); err != nil {
		return errors.Join(ErrTokenStore, err)
	}
	return nil
}
