package portal

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/endocyclic/investor-portal/internal/auth"
	"github.com/endocyclic/investor-portal/internal/config"
	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/service/admin"
)

// ErrClosed is returned by Manager.Client after Close.
var ErrClosed = errors.New("portal: manager closed")

// initTimeout bounds restoring a persisted session. It is detached from the
// request that triggered it.
const initTimeout = 15 * time.Second

// authBackend is the identity provider shared by every client.
type authBackend interface {
	VerifyAccessToken(token string) (*auth.AccessClaims, error)
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*domain.Identity, error)
	AdminUpdateAppMetadata(ctx context.Context, userID uuid.UUID, patch map[string]any) (*domain.Identity, error)
}

// tokenStorage persists session tokens per browser.
type tokenStorage interface {
	Load(ctx context.Context, sid string) ([]byte, error)
	Save(ctx context.Context, sid string, data []byte) error
	Delete(ctx context.Context, sid string) error
}

// registrationLookup finds registrations for the session store and the
// status resolver.
type registrationLookup interface {
	LatestByEmail(ctx context.Context, email string) (*domain.Registration, error)
	LatestForUser(ctx context.Context, userID uuid.UUID, email string) (*domain.Registration, error)
}

// documentSource lists the document library.
type documentSource interface {
	ListAll(ctx context.Context) ([]domain.Document, error)
}

// adminOperations backs the admin dashboard of each client.
type adminOperations interface {
	ListPending(ctx context.Context) ([]domain.Registration, error)
	Decide(ctx context.Context, id uuid.UUID, approved bool) (*domain.Registration, error)
	ListUsers(ctx context.Context) ([]domain.ManagedUser, error)
	CreateUser(ctx context.Context, input admin.CreateUserInput) (*domain.Identity, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// Deps are the collaborators shared by every client.
type Deps struct {
	Auth          authBackend
	Tokens        tokenStorage
	Registrations registrationLookup
	Documents     documentSource
	Admin         adminOperations
}

// Options configures clients and the registry.
type Options struct {
	IdleTimeout        time.Duration
	SweepInterval      time.Duration
	RefreshLeeway      time.Duration
	StatusStaleAfter   time.Duration
	ResolveTimeout     time.Duration
	DeletionConfirmTTL time.Duration
}

// OptionsFromConfig maps the portal configuration section.
func OptionsFromConfig(cfg config.PortalConfig) Options {
	return Options{
		IdleTimeout:        cfg.IdleTimeout,
		SweepInterval:      cfg.SweepInterval,
		RefreshLeeway:      cfg.RefreshLeeway,
		StatusStaleAfter:   cfg.StatusStaleAfter,
		ResolveTimeout:     cfg.ResolveTimeout,
		DeletionConfirmTTL: cfg.DeletionConfirmTTL,
	}
}

// Manager is the registry of portal clients.
type Manager struct {
	log  *slog.Logger
	deps Deps
	opts Options
	now  func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	clients map[string]*Client
	closed  bool
}

// NewManager creates an empty registry.
func NewManager(logger *slog.Logger, deps Deps, opts Options) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		log:     logger.With("service", "portal"),
		deps:    deps,
		opts:    opts,
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
		clients: make(map[string]*Client),
	}
}

// Client returns the client of browser sid, creating and initialising it
// on first use. Every call marks the client as active and refreshes its
// session token when it is about to expire.
func (m *Manager) Client(ctx context.Context, sid string) (*Client, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	c, ok := m.clients[sid]
	if !ok {
		c = newClient(m.ctx, m.log, sid, m.deps, m.opts)
		m.clients[sid] = c
	}
	c.touch(m.now())
	m.mu.Unlock()

	initCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), initTimeout)
	c.Init(initCtx)
	cancel()

	if err := c.EnsureFresh(ctx); err != nil {
		m.log.InfoContext(ctx, "session refresh failed", slog.String("error", err.Error()))
	}
	return c, nil
}

// Len returns the number of live clients.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

// Sweep closes the clients idle for longer than the idle timeout and
// returns how many were closed.
func (m *Manager) Sweep() int {
	if m.opts.IdleTimeout <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.opts.IdleTimeout)

	m.mu.Lock()
	var idle []*Client
	for sid, c := range m.clients {
		if c.idleSince().Before(cutoff) {
			idle = append(idle, c)
			delete(m.clients, sid)
		}
	}
	m.mu.Unlock()

	for _, c := range idle {
		c.Close()
	}
	if len(idle) > 0 {
		m.log.Debug("idle clients closed", slog.Int("count", len(idle)))
	}
	return len(idle)
}

// Run sweeps idle clients every sweep interval until ctx is done, then
// closes the registry.
func (m *Manager) Run(ctx context.Context) error {
	interval := m.opts.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Close()
			return nil
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// InvalidateUser re-resolves the status of every client signed in as
// userID.
func (m *Manager) InvalidateUser(userID uuid.UUID) int {
	return m.invalidateWhere(func(identity *domain.Identity) bool {
		return identity.ID == userID
	})
}

// HandleDecision invalidates the clients affected by a registration
// decision: the linked user, or anyone signed in with the registration's
// email when the record is not linked.
func (m *Manager) HandleDecision(d domain.RegistrationDecision) {
	var n int
	if d.UserID != nil {
		n = m.InvalidateUser(*d.UserID)
	} else {
		email := domain.NormalizeEmail(d.Email)
		n = m.invalidateWhere(func(identity *domain.Identity) bool {
			return domain.NormalizeEmail(identity.Email) == email
		})
	}
	m.log.Info("registration decision applied",
		slog.String("registration_id", d.RegistrationID.String()),
		slog.String("status", d.Status.String()),
		slog.Int("clients", n),
	)
}

func (m *Manager) invalidateWhere(match func(*domain.Identity) bool) int {
	m.mu.Lock()
	var affected []*Client
	for _, c := range m.clients {
		if identity := c.Identity(); identity != nil && match(identity) {
			affected = append(affected, c)
		}
	}
	m.mu.Unlock()

	for _, c := range affected {
		c.Invalidate()
	}
	return len(affected)
}

// Close closes every client. Later calls to Client fail with ErrClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	clients := m.clients
	m.clients = make(map[string]*Client)
	m.mu.Unlock()

	m.cancel()
	for _, c := range clients {
		c.Close()
	}
}
