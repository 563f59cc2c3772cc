package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// SignIn establishes a new session with email and password.
//
// A rejected registration blocks the sign-in before any credential check.
// An existing session is signed out first. Invalid credentials yield an
// AuthError with reason invalid_credentials.
func (s *Store) SignIn(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewAuthError(domain.AuthReasonInvalidCredentials)
	}

	reg, err := s.regs.LatestByEmail(ctx, email)
	switch {
	case err == nil && reg.Status == domain.StatusRejected:
		s.log.InfoContext(ctx, "sign-in blocked by rejected registration",
			slog.String("registration_id", reg.ID.String()))
		return nil, domain.NewAuthError(domain.AuthReasonRegistrationRejected)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, domain.NewLookupError("session.SignIn", err)
	}

	s.ops.Lock()
	defer s.ops.Unlock()

	if s.hasSession() {
		if err := s.signOut(ctx); err != nil {
			s.log.WarnContext(ctx, "revoke previous session failed", slog.String("error", err.Error()))
		}
	}

	sess, err := s.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			return nil, err
		}
		return nil, fmt.Errorf("session.SignIn: %w", err)
	}
	if sess.Identity == nil {
		return nil, fmt.Errorf("session.SignIn: backend returned a session without identity")
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		if err := s.auth.SignOut(context.WithoutCancel(ctx), sess.AccessToken); err != nil {
			s.log.WarnContext(ctx, "revoke session of closed store failed", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("session.SignIn: %w", domain.ErrUnauthorized)
	}
	s.session = sess
	s.generation++
	s.mu.Unlock()

	s.persist(ctx, sess)

	s.log.InfoContext(ctx, "signed in", slog.String("user_id", sess.Identity.ID.String()))
	s.publish(EventSignedIn, sess.Identity)
	return sess.Identity.Clone(), nil
}

func (s *Store) hasSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}
