package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// storedToken is the persisted form of a session.
type storedToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s *Store) persist(ctx context.Context, sess *domain.Session) {
	data, err := json.Marshal(storedToken{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresAt:    sess.ExpiresAt,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "encode session token", slog.String("error", err.Error()))
		return
	}
	if err := s.storage.Save(ctx, s.sid, data); err != nil {
		s.log.WarnContext(ctx, "persist session token failed", slog.String("error", err.Error()))
	}
}

func (s *Store) forget(ctx context.Context) {
	if err := s.storage.Delete(ctx, s.sid); err != nil {
		s.log.WarnContext(ctx, "delete session token failed", slog.String("error", err.Error()))
	}
}

func (s *Store) loadToken(ctx context.Context) (*storedToken, error) {
	data, err := s.storage.Load(ctx, s.sid)
	if err != nil {
		return nil, err
	}
	var tok storedToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decode session token: %w", err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, errors.New("decode session token: empty token")
	}
	return &tok, nil
}
