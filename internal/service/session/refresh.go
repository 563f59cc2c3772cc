package session

import (
	"context"
	"fmt"
	"log/slog"
)

// EnsureFresh refreshes the session when its access token expires within
// the refresh leeway. The result is dropped when the session changed while
// the refresh was in flight. A failed refresh signs the store out.
func (s *Store) EnsureFresh(ctx context.Context) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	s.mu.Lock()
	sess := s.session
	gen := s.generation
	s.mu.Unlock()

	if sess == nil || !sess.ExpiresWithin(s.now(), s.leeway) {
		return nil
	}

	fresh, err := s.auth.RefreshSession(ctx, sess.RefreshToken)

	s.mu.Lock()
	if s.closed || s.generation != gen {
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		s.session = nil
		s.generation++
		s.mu.Unlock()

		s.log.InfoContext(ctx, "session refresh failed, signing out", slog.String("error", err.Error()))
		s.forget(ctx)
		s.publish(EventSignedOut, nil)
		return fmt.Errorf("session.EnsureFresh: %w", err)
	}
	if fresh.Identity == nil {
		fresh.Identity = sess.Identity
	}
	s.session = fresh
	s.generation++
	s.mu.Unlock()

	s.persist(ctx, fresh)
	s.publish(EventTokenRefreshed, fresh.Identity)
	return nil
}
