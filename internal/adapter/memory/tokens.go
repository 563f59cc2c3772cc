// Package memory provides in-process stand-ins for the external stores,
// used when no Redis address is configured and in tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/endocyclic/investor-portal/internal/domain"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// TokenStore is a map-backed session token storage. It is safe for
// concurrent use but is not shared between processes.
type TokenStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewTokenStore creates an empty TokenStore. Entries expire after ttl; zero
// keeps them until deleted.
func NewTokenStore(ttl time.Duration) *TokenStore {
	return &TokenStore{entries: make(map[string]entry), ttl: ttl, now: time.Now}
}

// Load returns the stored token for sid, or domain.ErrNotFound.
func (s *TokenStore) Load(_ context.Context, sid string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sid]
	if !ok {
		return nil, fmt.Errorf("token %s: %w", sid, domain.ErrNotFound)
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.entries, sid)
		return nil, fmt.Errorf("token %s: %w", sid, domain.ErrNotFound)
	}
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, nil
}

// Save stores data for sid and resets its expiry.
func (s *TokenStore) Save(_ context.Context, sid string, data []byte) error {
	e := entry{data: append([]byte(nil), data...)}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[sid] = e
	s.mu.Unlock()
	return nil
}

// Delete removes the token for sid.
func (s *TokenStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	delete(s.entries, sid)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored tokens, expired ones included.
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
