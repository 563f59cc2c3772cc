package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/endocyclic/investor-portal/internal/adapter/gotrue"
	"github.com/endocyclic/investor-portal/internal/adapter/gotrue/gotruetest"
	"github.com/endocyclic/investor-portal/internal/adapter/memory"
	"github.com/endocyclic/investor-portal/internal/config"
	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/portal"
	"github.com/endocyclic/investor-portal/internal/portal/portaltest"
	"github.com/endocyclic/investor-portal/internal/service/admin"
	"github.com/endocyclic/investor-portal/internal/transport/dataloader"
	"github.com/endocyclic/investor-portal/internal/transport/middleware"
)

const cookieName = "portal_sid"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAdmin keeps pending registrations and users in memory.
type fakeAdmin struct {
	mu      sync.Mutex
	pending []domain.Registration
	users   []domain.ManagedUser
	deleted []uuid.UUID
}

func (f *fakeAdmin) ListPending(ctx context.Context) ([]domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Registration(nil), f.pending...), nil
}

func (f *fakeAdmin) Decide(ctx context.Context, id uuid.UUID, approved bool) (*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.pending {
		if r.ID != id {
			continue
		}
		r.Status = domain.StatusRejected
		if approved {
			r.Status = domain.StatusApproved
		}
		now := time.Now()
		r.DecidedAt = &now
		f.pending = append(f.pending[:i], f.pending[i+1:]...)
		return &r, nil
	}
	return nil, fmt.Errorf("registration %s: %w", id, domain.ErrNotFound)
}

func (f *fakeAdmin) ListUsers(ctx context.Context) ([]domain.ManagedUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ManagedUser(nil), f.users...), nil
}

func (f *fakeAdmin) CreateUser(ctx context.Context, input admin.CreateUserInput) (*domain.Identity, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	role := input.Role
	if role == "" {
		role = domain.UserRoleUser
	}
	f.users = append(f.users, domain.ManagedUser{ID: id, Email: input.Email, Role: role, CreatedAt: time.Now()})
	return &domain.Identity{ID: id, Email: input.Email, AppMetadata: map[string]any{domain.MetaRole: string(role)}}, nil
}

func (f *fakeAdmin) DeleteUser(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

type testEnv struct {
	srv      *gotruetest.Server
	regs     *portaltest.Registrations
	docs     *portaltest.Documents
	admin    *fakeAdmin
	register *registrationServiceMock
	content  *contentServiceMock
	manager  *portal.Manager
	limits   config.RateLimitConfig
	handler  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithLimits(t, config.RateLimitConfig{})
}

func newTestEnvWithLimits(t *testing.T, limits config.RateLimitConfig) *testEnv {
	t.Helper()

	srv := gotruetest.NewServer(t)
	auth := gotrue.NewClient(gotrue.Options{
		BaseURL:        srv.AuthURL(),
		AnonKey:        gotruetest.AnonKey,
		ServiceRoleKey: gotruetest.ServiceKey,
		Timeout:        5 * time.Second,
	}, srv.JWT, discardLogger())

	e := &testEnv{
		srv:      srv,
		regs:     &portaltest.Registrations{},
		docs:     portaltest.NewDocuments(portaltest.SampleDocuments()...),
		admin:    &fakeAdmin{},
		register: &registrationServiceMock{},
		content:  &contentServiceMock{},
		limits:   limits,
	}
	e.manager = portal.NewManager(discardLogger(), portal.Deps{
		Auth:          auth,
		Tokens:        memory.NewTokenStore(time.Hour),
		Registrations: e.regs,
		Documents:     e.docs,
		Admin:         e.admin,
	}, portal.Options{
		IdleTimeout:        time.Hour,
		SweepInterval:      time.Minute,
		RefreshLeeway:      time.Minute,
		StatusStaleAfter:   10 * time.Minute,
		ResolveTimeout:     5 * time.Second,
		DeletionConfirmTTL: time.Minute,
	})
	t.Cleanup(e.manager.Close)

	limiter := middleware.NewRateLimiter()

	e.handler = NewRouter(RouterDeps{
		Logger:       discardLogger(),
		Portal:       e.manager,
		Health:       NewHealthHandler("test"),
		Registration: e.register,
		Content:      e.content,
		Loaders:      &dataloader.Repos{Registration: e.regs, Wait: 50 * time.Millisecond},
		Limiter:      limiter,
		PortalConfig: config.PortalConfig{
			CookieName:      cookieName,
			SessionTTL:      time.Hour,
			EventBufferSize: 16,
		},
		CORS:      config.CORSConfig{AllowedOrigins: "*"},
		RateLimit: limits,
	})
	return e
}

// browser is one cookie-identified client of the API.
type browser struct {
	t   *testing.T
	e   *testEnv
	sid string
}

func (e *testEnv) browser(t *testing.T) *browser {
	return &browser{t: t, e: e, sid: uuid.NewString()}
}

func (b *browser) do(method, path string, body any) *httptest.ResponseRecorder {
	b.t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(b.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.RemoteAddr = "10.0.0.1:5000"
	req.AddCookie(&http.Cookie{Name: cookieName, Value: b.sid})
	rec := httptest.NewRecorder()
	b.e.handler.ServeHTTP(rec, req)
	return rec
}

func (b *browser) signIn(email string) sessionResponse {
	b.t.Helper()
	rec := b.do(http.MethodPost, "/api/session/sign-in", signInRequest{Email: email, Password: "password1"})
	require.Equal(b.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[sessionResponse](b.t, rec)
}

// investor adds a user with a registration in status.
func (e *testEnv) investor(status domain.InvestorStatus) (uuid.UUID, string) {
	email := uuid.NewString()[:8] + "@example.com"
	userID := e.srv.AddUser(email, "password1", nil, nil)
	if status != domain.StatusNone {
		e.regs.Add(userID, email, status)
	}
	return userID, email
}

func (e *testEnv) adminUser() (uuid.UUID, string) {
	email := "admin-" + uuid.NewString()[:8] + "@example.com"
	id := e.srv.AddUser(email, "password1", map[string]any{domain.MetaRole: "admin"}, nil)
	return id, email
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
