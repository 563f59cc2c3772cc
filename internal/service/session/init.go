package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// Init restores the persisted session, if any. A token that cannot be
// verified is refreshed; when that fails too the stored token is cleared
// and the store resolves to signed out. Init always publishes
// EventInitialSession unless the store was closed or changed meanwhile.
func (s *Store) Init(ctx context.Context) {
	s.ops.Lock()
	defer s.ops.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.loading = true
	gen := s.generation
	s.mu.Unlock()

	sess := s.restore(ctx)

	s.mu.Lock()
	s.loading = false
	if s.closed || s.generation != gen {
		s.mu.Unlock()
		return
	}
	s.session = sess
	s.generation++
	s.mu.Unlock()

	var identity *domain.Identity
	if sess != nil {
		identity = sess.Identity
	}
	s.publish(EventInitialSession, identity)
}

func (s *Store) restore(ctx context.Context) *domain.Session {
	tok, err := s.loadToken(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "discarding stored session", slog.String("error", err.Error()))
			s.forget(ctx)
		}
		return nil
	}

	if tok.AccessToken != "" && tok.ExpiresAt.After(s.now().Add(s.leeway)) {
		if _, err := s.auth.VerifyAccessToken(tok.AccessToken); err == nil {
			identity, err := s.auth.GetUser(ctx, tok.AccessToken)
			if err == nil {
				return &domain.Session{
					AccessToken:  tok.AccessToken,
					RefreshToken: tok.RefreshToken,
					ExpiresAt:    tok.ExpiresAt,
					Identity:     identity,
				}
			}
			s.log.InfoContext(ctx, "stored access token rejected", slog.String("error", err.Error()))
		}
	}

	if tok.RefreshToken == "" {
		s.forget(ctx)
		return nil
	}

	sess, err := s.auth.RefreshSession(ctx, tok.RefreshToken)
	if err != nil || sess.Identity == nil {
		if err != nil {
			s.log.InfoContext(ctx, "stored session could not be refreshed", slog.String("error", err.Error()))
		}
		s.forget(ctx)
		return nil
	}
	s.persist(ctx, sess)
	return sess
}
