// Package session holds the authentication state of one browser: the
// current session, its persisted token and the events other components
// react to.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/endocyclic/investor-portal/internal/auth"
	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/eventbus"
)

// authBackend is the identity provider used by the store.
type authBackend interface {
	VerifyAccessToken(token string) (*auth.AccessClaims, error)
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*domain.Identity, error)
}

// tokenStorage persists the serialized session token of a browser.
type tokenStorage interface {
	Load(ctx context.Context, sid string) ([]byte, error)
	Save(ctx context.Context, sid string, data []byte) error
	Delete(ctx context.Context, sid string) error
}

// registrationLookup finds the latest registration for an email.
type registrationLookup interface {
	LatestByEmail(ctx context.Context, email string) (*domain.Registration, error)
}

// EventKind names a session change.
type EventKind string

const (
	EventInitialSession EventKind = "INITIAL_SESSION"
	EventSignedIn       EventKind = "SIGNED_IN"
	EventSignedOut      EventKind = "SIGNED_OUT"
	EventTokenRefreshed EventKind = "TOKEN_REFRESHED"
	EventUserUpdated    EventKind = "USER_UPDATED"
)

// Event is published after every session change. Identity is a copy and is
// nil when signed out.
type Event struct {
	Kind     EventKind
	Identity *domain.Identity
}

// Options configures a Store.
type Options struct {
	// SID identifies the browser; it keys the persisted token.
	SID string
	// RefreshLeeway is how long before expiry EnsureFresh refreshes.
	RefreshLeeway time.Duration
}

// Store is the only component that mutates the session token. Operations
// that talk to the backend are serialized; reads never block on them.
type Store struct {
	log     *slog.Logger
	auth    authBackend
	storage tokenStorage
	regs    registrationLookup
	sid     string
	leeway  time.Duration
	now     func() time.Time
	bus     *eventbus.Bus[Event]

	ops sync.Mutex // serializes Init, SignIn, SignOut and EnsureFresh

	mu         sync.Mutex
	session    *domain.Session
	loading    bool
	generation uint64
	closed     bool
}

// NewStore creates a Store for one browser. Call Init before use.
func NewStore(logger *slog.Logger, backend authBackend, storage tokenStorage, regs registrationLookup, opts Options) *Store {
	return &Store{
		log:     logger.With("service", "session"),
		auth:    backend,
		storage: storage,
		regs:    regs,
		sid:     opts.SID,
		leeway:  opts.RefreshLeeway,
		now:     time.Now,
		bus:     eventbus.New[Event](),
	}
}

// Subscribe registers fn for session events and returns the unsubscribe
// function. fn runs synchronously on the goroutine that changed the session.
func (s *Store) Subscribe(fn func(Event)) func() {
	return s.bus.Subscribe(fn)
}

// Identity returns a copy of the signed-in identity, or nil.
func (s *Store) Identity() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	return s.session.Identity.Clone()
}

// AccessToken returns the current access token, or "".
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.AccessToken
}

// Loading reports whether the initial session is still being resolved.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Generation returns a counter bumped on every session change.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// ApplyIdentity replaces the identity of the current session when it
// belongs to the same user. It reports whether the identity was applied.
func (s *Store) ApplyIdentity(identity *domain.Identity) bool {
	if identity == nil {
		return false
	}

	s.mu.Lock()
	if s.closed || s.session == nil || s.session.Identity == nil || s.session.Identity.ID != identity.ID {
		s.mu.Unlock()
		return false
	}
	s.session.Identity = identity.Clone()
	s.mu.Unlock()

	s.bus.Publish(Event{Kind: EventUserUpdated, Identity: identity.Clone()})
	return true
}

// Close marks the store closed. Results of operations still in flight are
// discarded. The persisted token is kept so the browser can resume later.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Store) publish(kind EventKind, identity *domain.Identity) {
	s.bus.Publish(Event{Kind: kind, Identity: identity.Clone()})
}
