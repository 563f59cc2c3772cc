package portal

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/endocyclic/investor-portal/internal/adapter/gotrue"
	"github.com/endocyclic/investor-portal/internal/adapter/gotrue/gotruetest"
	"github.com/endocyclic/investor-portal/internal/adapter/memory"
	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/portal/portaltest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type env struct {
	srv    *gotruetest.Server
	regs   *portaltest.Registrations
	docs   *portaltest.Documents
	tokens *memory.TokenStore
	deps   Deps
	opts   Options
}

func newEnv(t *testing.T) *env {
	t.Helper()

	srv := gotruetest.NewServer(t)
	client := gotrue.NewClient(gotrue.Options{
		BaseURL:        srv.AuthURL(),
		AnonKey:        gotruetest.AnonKey,
		ServiceRoleKey: gotruetest.ServiceKey,
		Timeout:        5 * time.Second,
	}, srv.JWT, discardLogger())

	e := &env{
		srv:    srv,
		regs:   &portaltest.Registrations{},
		docs:   portaltest.NewDocuments(portaltest.SampleDocuments()...),
		tokens: memory.NewTokenStore(time.Hour),
		opts: Options{
			IdleTimeout:        30 * time.Minute,
			SweepInterval:      time.Minute,
			RefreshLeeway:      time.Minute,
			StatusStaleAfter:   10 * time.Minute,
			ResolveTimeout:     5 * time.Second,
			DeletionConfirmTTL: 2 * time.Minute,
		},
	}
	e.deps = Deps{
		Auth:          client,
		Tokens:        e.tokens,
		Registrations: e.regs,
		Documents:     e.docs,
		Admin:         portaltest.AdminStub{},
	}
	return e
}

func (e *env) manager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(discardLogger(), e.deps, e.opts)
	t.Cleanup(m.Close)
	return m
}

func (e *env) investor(status domain.InvestorStatus) (uuid.UUID, uuid.UUID, string) {
	email := uuid.NewString()[:8] + "@example.com"
	userID := e.srv.AddUser(email, "password1", nil, nil)
	var regID uuid.UUID
	if status != domain.StatusNone {
		regID = e.regs.Add(userID, email, status)
	}
	return userID, regID, email
}

func mustClient(t *testing.T, m *Manager, sid string) *Client {
	t.Helper()
	c, err := m.Client(context.Background(), sid)
	require.NoError(t, err)
	return c
}
