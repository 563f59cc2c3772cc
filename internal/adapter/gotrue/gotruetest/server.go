// Package gotruetest provides an in-memory GoTrue server for tests.
package gotruetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/endocyclic/investor-portal/internal/auth"
)

const (
	JWTSecret  = "gotruetest-jwt-secret-with-at-least-32-chars"
	AnonKey    = "gotruetest-anon-key"
	ServiceKey = "gotruetest-service-role-key"
)

// User is the fake server's view of an identity.
type User struct {
	ID           uuid.UUID
	Email        string
	AppMetadata  map[string]any
	UserMetadata map[string]any
	CreatedAt    time.Time
	LastSignInAt *time.Time

	passwordHash []byte
}

// Server is an httptest server speaking the subset of the GoTrue API the
// portal uses. Sign-ups are auto-confirmed.
type Server struct {
	*httptest.Server
	JWT *auth.JWTManager

	mu       sync.Mutex
	users    map[uuid.UUID]*User
	byEmail  map[string]uuid.UUID
	refresh  map[string]uuid.UUID
	calls    map[string]int
	failures map[string]int
}

// NewServer starts a server and registers its shutdown with t.
func NewServer(t testing.TB) *Server {
	t.Helper()
	return NewServerWithTTL(t, time.Hour)
}

// NewServerWithTTL starts a server issuing access tokens valid for ttl.
func NewServerWithTTL(t testing.TB, ttl time.Duration) *Server {
	t.Helper()

	s := &Server{
		users:    make(map[uuid.UUID]*User),
		byEmail:  make(map[string]uuid.UUID),
		refresh:  make(map[string]uuid.UUID),
		calls:    make(map[string]int),
		failures: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/v1/signup", s.handleSignUp)
	mux.HandleFunc("POST /auth/v1/token", s.handleToken)
	mux.HandleFunc("POST /auth/v1/logout", s.handleLogout)
	mux.HandleFunc("GET /auth/v1/user", s.handleGetUser)
	mux.HandleFunc("POST /auth/v1/admin/users", s.handleAdminCreate)
	mux.HandleFunc("PUT /auth/v1/admin/users/{id}", s.handleAdminUpdate)
	mux.HandleFunc("DELETE /auth/v1/admin/users/{id}", s.handleAdminDelete)

	s.Server = httptest.NewServer(s.count(mux))
	s.JWT = auth.NewJWTManager(JWTSecret, s.AuthURL(), ttl)
	t.Cleanup(s.Close)
	return s
}

// AuthURL is the GoTrue base URL to configure clients with.
func (s *Server) AuthURL() string { return s.URL + "/auth/v1" }

// AddUser creates a confirmed identity directly.
func (s *Server) AddUser(email, password string, appMeta, userMeta map[string]any) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.addUserLocked(email, password, appMeta, userMeta)
	return u.ID
}

// User returns a copy of the identity with id.
func (s *Server) User(id uuid.UUID) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, false
	}
	cp := *u
	cp.AppMetadata = copyMeta(u.AppMetadata)
	cp.UserMetadata = copyMeta(u.UserMetadata)
	return cp, true
}

// UserByEmail returns a copy of the identity registered with email.
func (s *Server) UserByEmail(email string) (User, bool) {
	s.mu.Lock()
	id, ok := s.byEmail[strings.ToLower(email)]
	s.mu.Unlock()
	if !ok {
		return User{}, false
	}
	return s.User(id)
}

// Calls returns how many requests hit "METHOD /path" (path without query).
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// FailNext makes the next n requests to route answer 500.
func (s *Server) FailNext(route string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = n
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/auth/v1")
		s.mu.Lock()
		s.calls[route]++
		fail := s.failures[route] > 0
		if fail {
			s.failures[route]--
		}
		s.mu.Unlock()

		if fail {
			writeError(w, http.StatusInternalServerError, "unexpected_failure", "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) addUserLocked(email, password string, appMeta, userMeta map[string]any) *User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	if appMeta == nil {
		appMeta = map[string]any{}
	}
	if _, ok := appMeta["provider"]; !ok {
		appMeta["provider"] = "email"
	}
	u := &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(email),
		AppMetadata:  copyMeta(appMeta),
		UserMetadata: copyMeta(userMeta),
		CreatedAt:    time.Now().UTC(),
		passwordHash: hash,
	}
	s.users[u.ID] = u
	s.byEmail[u.Email] = u.ID
	return u
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("apikey") == "" {
		writeError(w, http.StatusUnauthorized, "no_api_key", "No API key found in request")
		return
	}
	var req struct {
		Email    string         `json:"email"`
		Password string         `json:"password"`
		Data     map[string]any `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	if len(req.Password) < 6 {
		writeError(w, http.StatusUnprocessableEntity, "weak_password", "Password should be at least 6 characters.")
		return
	}

	s.mu.Lock()
	if _, exists := s.byEmail[strings.ToLower(req.Email)]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusUnprocessableEntity, "user_already_exists", "User already registered")
		return
	}
	u := s.addUserLocked(req.Email, req.Password, nil, req.Data)
	resp := s.sessionLocked(u)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("grant_type") {
	case "password":
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json", err.Error())
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		id, ok := s.byEmail[strings.ToLower(req.Email)]
		if !ok || bcrypt.CompareHashAndPassword(s.users[id].passwordHash, []byte(req.Password)) != nil {
			writeError(w, http.StatusBadRequest, "invalid_credentials", "Invalid login credentials")
			return
		}
		u := s.users[id]
		now := time.Now().UTC()
		u.LastSignInAt = &now
		writeJSON(w, http.StatusOK, s.sessionLocked(u))

	case "refresh_token":
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json", err.Error())
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		hash := auth.HashToken(req.RefreshToken)
		id, ok := s.refresh[hash]
		if !ok {
			writeError(w, http.StatusBadRequest, "refresh_token_not_found", "Invalid Refresh Token: Refresh Token Not Found")
			return
		}
		delete(s.refresh, hash)
		u, ok := s.users[id]
		if !ok {
			writeError(w, http.StatusBadRequest, "user_not_found", "User not found")
			return
		}
		writeJSON(w, http.StatusOK, s.sessionLocked(u))

	default:
		writeError(w, http.StatusBadRequest, "unsupported_grant_type", "unsupported grant type")
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	id, ok := s.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "bad_jwt", "invalid JWT")
		return
	}

	s.mu.Lock()
	for hash, owner := range s.refresh {
		if owner == id {
			delete(s.refresh, hash)
		}
	}
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "bad_jwt", "invalid JWT")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		writeError(w, http.StatusUnauthorized, "user_not_found", "User from sub claim in JWT does not exist")
		return
	}
	writeJSON(w, http.StatusOK, userJSON(u))
}

func (s *Server) handleAdminCreate(w http.ResponseWriter, r *http.Request) {
	if !s.isService(r) {
		writeError(w, http.StatusForbidden, "not_admin", "User not allowed")
		return
	}
	var req struct {
		Email        string         `json:"email"`
		Password     string         `json:"password"`
		EmailConfirm bool           `json:"email_confirm"`
		AppMetadata  map[string]any `json:"app_metadata"`
		UserMetadata map[string]any `json:"user_metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[strings.ToLower(req.Email)]; exists {
		writeError(w, http.StatusUnprocessableEntity, "email_exists", "A user with this email address has already been registered")
		return
	}
	u := s.addUserLocked(req.Email, req.Password, req.AppMetadata, req.UserMetadata)
	writeJSON(w, http.StatusOK, userJSON(u))
}

func (s *Server) handleAdminUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.isService(r) {
		writeError(w, http.StatusForbidden, "not_admin", "User not allowed")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "user_not_found", "User not found")
		return
	}
	var req struct {
		AppMetadata map[string]any `json:"app_metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "User not found")
		return
	}
	for k, v := range req.AppMetadata {
		u.AppMetadata[k] = v
	}
	writeJSON(w, http.StatusOK, userJSON(u))
}

func (s *Server) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	if !s.isService(r) {
		writeError(w, http.StatusForbidden, "not_admin", "User not allowed")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "user_not_found", "User not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "User not found")
		return
	}
	delete(s.users, id)
	delete(s.byEmail, u.Email)
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (s *Server) authenticate(r *http.Request) (uuid.UUID, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	claims, err := s.JWT.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := claims.UserID()
	return id, err == nil
}

func (s *Server) isService(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+ServiceKey && r.Header.Get("apikey") == ServiceKey
}

func (s *Server) sessionLocked(u *User) map[string]any {
	access, expiresAt, err := s.JWT.GenerateAccessToken(u.ID, auth.AccessClaims{
		Email:        u.Email,
		AppMetadata:  copyMeta(u.AppMetadata),
		UserMetadata: copyMeta(u.UserMetadata),
	})
	if err != nil {
		panic(err)
	}
	raw, hash, err := s.JWT.GenerateRefreshToken()
	if err != nil {
		panic(err)
	}
	s.refresh[hash] = u.ID

	return map[string]any{
		"access_token":  access,
		"token_type":    "bearer",
		"expires_in":    int64(s.JWT.AccessTTL() / time.Second),
		"expires_at":    expiresAt.Unix(),
		"refresh_token": raw,
		"user":          userJSON(u),
	}
}

func userJSON(u *User) map[string]any {
	return map[string]any{
		"id":              u.ID,
		"aud":             auth.AuthenticatedAudience,
		"role":            auth.AuthenticatedAudience,
		"email":           u.Email,
		"app_metadata":    copyMeta(u.AppMetadata),
		"user_metadata":   copyMeta(u.UserMetadata),
		"identities":      []map[string]any{{"id": u.ID.String(), "provider": "email"}},
		"created_at":      u.CreatedAt,
		"last_sign_in_at": u.LastSignInAt,
	}
}

func copyMeta(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{"code": status, "error_code": code, "msg": msg})
}
