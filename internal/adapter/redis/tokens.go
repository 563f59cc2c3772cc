package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/endocyclic/investor-portal/internal/domain"
)

const keyPrefix = "portal:"

// TokenStore keeps one serialized session token per browser session id
// under portal:<sid>:<storageKey>.
type TokenStore struct {
	client     goredis.Cmdable
	storageKey string
	ttl        time.Duration
}

// NewTokenStore creates a TokenStore. Entries expire after ttl; zero keeps
// them until deleted.
func NewTokenStore(client goredis.Cmdable, storageKey string, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, storageKey: storageKey, ttl: ttl}
}

func (s *TokenStore) key(sid string) string {
	return keyPrefix + sid + ":" + s.storageKey
}

// Load returns the stored token for sid, or domain.ErrNotFound.
func (s *TokenStore) Load(ctx context.Context, sid string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(sid)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("token %s: %w", sid, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load token %s: %w", sid, err)
	}
	return data, nil
}

// Save stores data for sid and resets its expiry.
func (s *TokenStore) Save(ctx context.Context, sid string, data []byte) error {
	if err := s.client.Set(ctx, s.key(sid), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save token %s: %w", sid, err)
	}
	return nil
}

// Delete removes the token for sid. Deleting a missing token is not an error.
func (s *TokenStore) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("delete token %s: %w", sid, err)
	}
	return nil
}
