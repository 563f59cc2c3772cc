package session

import (
	"context"
	"fmt"
	"log/slog"
)

// SignOut clears the session locally, deletes the stored token and then
// revokes the session remotely. A remote failure is returned, but the local
// state is already cleared.
func (s *Store) SignOut(ctx context.Context) error {
	s.ops.Lock()
	defer s.ops.Unlock()
	return s.signOut(ctx)
}

func (s *Store) signOut(ctx context.Context) error {
	s.mu.Lock()
	sess := s.session
	s.session = nil
	if sess != nil {
		s.generation++
	}
	s.mu.Unlock()

	s.forget(ctx)
	if sess == nil {
		return nil
	}

	if sess.Identity != nil {
		s.log.InfoContext(ctx, "signed out", slog.String("user_id", sess.Identity.ID.String()))
	}
	s.publish(EventSignedOut, nil)

	if err := s.auth.SignOut(ctx, sess.AccessToken); err != nil {
		return fmt.Errorf("session.SignOut: %w", err)
	}
	return nil
}
