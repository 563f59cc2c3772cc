package gotrue

import (
	"time"

	"github.com/google/uuid"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// apiUser is the user object returned by GoTrue.
type apiUser struct {
	ID           uuid.UUID      `json:"id"`
	Aud          string         `json:"aud"`
	Role         string         `json:"role"`
	Email        string         `json:"email"`
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
	// Identities is an empty (non-nil) array on the obfuscated response
	// GoTrue returns when signing up an already registered, confirmed email.
	Identities   []apiIdentity `json:"identities"`
	CreatedAt    time.Time     `json:"created_at"`
	LastSignInAt *time.Time    `json:"last_sign_in_at"`
}

type apiIdentity struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
}

// apiSession is the token response of /token and (with autoconfirm) /signup.
type apiSession struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	ExpiresAt    int64    `json:"expires_at"`
	RefreshToken string   `json:"refresh_token"`
	User         *apiUser `json:"user"`
}

// apiSignUpResponse covers both shapes of /signup: a session (autoconfirm)
// or a bare user object (email confirmation pending).
type apiSignUpResponse struct {
	apiSession
	apiUser
}

// apiError covers both the OAuth-style and the newer error payloads:
//
//	{"error": "invalid_grant", "error_description": "Invalid login credentials"}
//	{"code": 422, "error_code": "user_already_exists", "msg": "User already registered"}
type apiError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Code             int    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshGrantRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type signUpRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

type adminCreateUserRequest struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	EmailConfirm bool           `json:"email_confirm"`
	AppMetadata  map[string]any `json:"app_metadata,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

type adminUpdateUserRequest struct {
	AppMetadata map[string]any `json:"app_metadata"`
}

func (u *apiUser) toIdentity() *domain.Identity {
	if u == nil {
		return nil
	}
	return &domain.Identity{
		ID:           u.ID,
		Email:        u.Email,
		AppMetadata:  orEmpty(u.AppMetadata),
		UserMetadata: orEmpty(u.UserMetadata),
		CreatedAt:    u.CreatedAt,
		LastSignInAt: u.LastSignInAt,
	}
}

func (s *apiSession) toSession(now time.Time) *domain.Session {
	expiresAt := now.Add(time.Duration(s.ExpiresIn) * time.Second)
	if s.ExpiresAt > 0 {
		expiresAt = time.Unix(s.ExpiresAt, 0)
	}
	return &domain.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    expiresAt,
		Identity:     s.User.toIdentity(),
	}
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
