// Package portal bundles the per-browser components (session, status,
// gate, documents and admin dashboard) into a Client and keeps a registry
// of clients keyed by the browser's session id.
package portal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/eventbus"
	"github.com/endocyclic/investor-portal/internal/service/admin"
	"github.com/endocyclic/investor-portal/internal/service/directory"
	"github.com/endocyclic/investor-portal/internal/service/gate"
	"github.com/endocyclic/investor-portal/internal/service/session"
	"github.com/endocyclic/investor-portal/internal/service/status"
)

// EventType groups client events for the presentation layer.
type EventType string

const (
	EventSession   EventType = "session"
	EventStatus    EventType = "status"
	EventGate      EventType = "gate"
	EventDocuments EventType = "documents"
)

// Event is streamed to the browser. Name is the component-specific kind,
// e.g. SIGNED_IN or portal_opened.
type Event struct {
	Type     EventType
	Name     string
	Snapshot Snapshot
}

// Snapshot is the visible state of a Client.
type Snapshot struct {
	Loading       bool
	Identity      *domain.Identity
	Status        domain.InvestorStatus
	StatusLoading bool
	StatusErr     error
	Gate          gate.Snapshot
}

// DocumentsView is a filtered view of the document directory.
type DocumentsView struct {
	Documents []domain.Document
	Total     int
	Facets    directory.Facets
	Loading   bool
	Err       error
}

// Client is the state of one browser. Session events drive it: each one
// resolves the status, moves the gate and loads or resets the documents.
type Client struct {
	sid            string
	log            *slog.Logger
	store          *session.Store
	resolver       *status.Resolver
	gate           *gate.Gate
	docs           *directory.Directory
	adminOps       adminOperations
	confirmTTL     time.Duration
	resolveTimeout time.Duration
	events         *eventbus.Bus[Event]

	ctx    context.Context
	cancel context.CancelFunc
	unsubs []func()
	init   sync.Once

	mu            sync.Mutex
	status        domain.InvestorStatus
	statusLoading bool
	statusErr     error
	evalGen       uint64
	userID        uuid.UUID
	dashboard     *admin.Dashboard
	lastSeen      time.Time
	closed        bool
}

func newClient(parent context.Context, logger *slog.Logger, sid string, deps Deps, opts Options) *Client {
	ctx, cancel := context.WithCancel(parent)
	log := logger.With("sid", shortSID(sid))

	store := session.NewStore(log, deps.Auth, deps.Tokens, deps.Registrations, session.Options{
		SID:           sid,
		RefreshLeeway: opts.RefreshLeeway,
	})
	c := &Client{
		sid:   sid,
		log:   log,
		store: store,
		resolver: status.NewResolver(log, deps.Registrations, deps.Auth, store, status.Options{
			StaleAfter: opts.StatusStaleAfter,
		}),
		gate:           gate.New(),
		docs:           directory.New(log, deps.Documents),
		adminOps:       deps.Admin,
		confirmTTL:     opts.DeletionConfirmTTL,
		resolveTimeout: opts.ResolveTimeout,
		events:         eventbus.New[Event](),
		ctx:            ctx,
		cancel:         cancel,
	}
	c.dashboard = admin.NewDashboard(c.adminOps, c.confirmTTL)

	c.unsubs = append(c.unsubs,
		store.Subscribe(c.handleSession),
		c.gate.Subscribe(func(e gate.Event) { c.emit(EventGate, string(e.Kind)) }),
	)
	return c
}

// Init restores the persisted session once. Later calls return at once.
func (c *Client) Init(ctx context.Context) {
	c.init.Do(func() { c.store.Init(ctx) })
}

func (c *Client) handleSession(e session.Event) {
	c.emit(EventSession, string(e.Kind))
	if e.Kind == session.EventSignedIn {
		c.resolver.Invalidate()
	}
	c.evaluate(e.Identity)
}

// evaluate resolves the status of identity and applies it to the gate and
// the directory. Only the most recent evaluation may apply its result.
func (c *Client) evaluate(identity *domain.Identity) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.evalGen++
	gen := c.evalGen
	c.statusLoading = identity != nil
	if id := identityID(identity); id != c.userID {
		c.userID = id
		c.dashboard = admin.NewDashboard(c.adminOps, c.confirmTTL)
	}
	c.mu.Unlock()

	ctx, cancel := c.boundedCtx()
	defer cancel()

	resolved, err := c.resolver.Resolve(ctx, identity)

	c.mu.Lock()
	if c.closed || gen != c.evalGen {
		c.mu.Unlock()
		return
	}
	c.status = resolved
	c.statusErr = err
	c.statusLoading = false
	c.mu.Unlock()
	c.emit(EventStatus, "resolved")

	state := gate.StateFor(identity != nil, identity.IsAdmin(), resolved)
	tr := c.gate.Apply(state)

	if state != gate.StateAuthorized {
		c.docs.Reset()
		return
	}
	snap := c.docs.Snapshot()
	if tr.Changed() || (!snap.Loaded && !snap.Loading) {
		_ = c.loadDocuments(ctx)
	}
}

func (c *Client) loadDocuments(ctx context.Context) error {
	err := c.docs.Load(ctx)
	name := "loaded"
	if err != nil {
		name = "failed"
	}
	c.emit(EventDocuments, name)
	return err
}

func (c *Client) boundedCtx() (context.Context, context.CancelFunc) {
	if c.resolveTimeout <= 0 {
		return context.WithCancel(c.ctx)
	}
	return context.WithTimeout(c.ctx, c.resolveTimeout)
}

// Snapshot returns the current client state.
func (c *Client) Snapshot() Snapshot {
	snap := Snapshot{
		Loading:  c.store.Loading(),
		Identity: c.store.Identity(),
		Gate:     c.gate.Snapshot(),
	}

	c.mu.Lock()
	snap.Status = c.status
	snap.StatusLoading = c.statusLoading
	snap.StatusErr = c.statusErr
	c.mu.Unlock()
	return snap
}

// Identity returns the signed-in identity, or nil.
func (c *Client) Identity() *domain.Identity {
	return c.store.Identity()
}

// SignIn signs the browser in. The returned snapshot already reflects the
// resolved status.
func (c *Client) SignIn(ctx context.Context, email, password string) (Snapshot, error) {
	if _, err := c.store.SignIn(ctx, email, password); err != nil {
		return c.Snapshot(), err
	}
	return c.Snapshot(), nil
}

// SignOut signs the browser out.
func (c *Client) SignOut(ctx context.Context) error {
	return c.store.SignOut(ctx)
}

// RequestAccess handles the "open investor portal" intent. A signed-in
// identity without a registration is asked to register, and a failed status
// lookup is reported instead of a sign-in prompt.
func (c *Client) RequestAccess() gate.Outcome {
	c.mu.Lock()
	statusErr := c.statusErr
	c.mu.Unlock()

	if c.gate.State() == gate.StateAnonymous && c.store.Identity() != nil {
		if statusErr != nil {
			return gate.Outcome{Action: gate.ActionNotice, Notice: domain.UserMessage(statusErr)}
		}
		return gate.Outcome{Action: gate.ActionNotice, Notice: domain.MsgRegisterFirst}
	}
	return c.gate.RequestAccess()
}

// ClosePortal closes the portal.
func (c *Client) ClosePortal() {
	c.gate.ClosePortal()
}

// ToggleAuthModal flips the auth modal.
func (c *Client) ToggleAuthModal() bool {
	return c.gate.ToggleAuthModal()
}

// ToggleAdminPage flips the admin page. Only admins may open it.
func (c *Client) ToggleAdminPage() (bool, error) {
	return c.gate.ToggleAdminPage(c.store.Identity().IsAdmin())
}

// Documents returns the documents matching criteria together with the
// facets of the whole library.
func (c *Client) Documents(criteria directory.Criteria) (DocumentsView, error) {
	if c.gate.State() != gate.StateAuthorized {
		return DocumentsView{}, fmt.Errorf("portal.Documents: %w", domain.ErrPortalLocked)
	}

	snap := c.docs.Snapshot()
	return DocumentsView{
		Documents: directory.Filter(snap.Documents, criteria),
		Total:     len(snap.Documents),
		Facets:    directory.FacetsOf(snap.Documents),
		Loading:   snap.Loading,
		Err:       snap.Err,
	}, nil
}

// ReloadDocuments fetches the document list again, e.g. after an error.
func (c *Client) ReloadDocuments(ctx context.Context) error {
	if c.gate.State() != gate.StateAuthorized {
		return fmt.Errorf("portal.ReloadDocuments: %w", domain.ErrPortalLocked)
	}
	return c.loadDocuments(ctx)
}

// Dashboard returns the admin dashboard of the signed-in identity. It is
// replaced whenever a different identity signs in.
func (c *Client) Dashboard() *admin.Dashboard {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dashboard
}

// Events subscribes to client events through a channel of size buf.
// Events are dropped when the channel is full.
func (c *Client) Events(buf int) (<-chan Event, *eventbus.Dropped, func()) {
	return c.events.Channel(buf)
}

// Invalidate drops every cached status and re-evaluates the current
// identity.
func (c *Client) Invalidate() {
	c.resolver.Invalidate()
	c.evaluate(c.store.Identity())
}

// EnsureFresh refreshes the session token when it is about to expire.
func (c *Client) EnsureFresh(ctx context.Context) error {
	return c.store.EnsureFresh(ctx)
}

// KeepAlive marks the client as active, e.g. while an event stream is open.
func (c *Client) KeepAlive() {
	c.touch(time.Now())
}

// Done is closed when the client is torn down.
func (c *Client) Done() <-chan struct{} {
	return c.ctx.Done()
}

func (c *Client) touch(now time.Time) {
	c.mu.Lock()
	c.lastSeen = now
	c.mu.Unlock()
}

func (c *Client) idleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

func (c *Client) emit(t EventType, name string) {
	if c.events.Len() == 0 {
		return
	}
	c.events.Publish(Event{Type: t, Name: name, Snapshot: c.Snapshot()})
}

// Close tears the client down. Operations still in flight complete but
// their results are ignored. The persisted token is kept.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.docs.Close()
	c.store.Close()
	c.resolver.Close()
	c.resolver.Wait()
}

func identityID(identity *domain.Identity) uuid.UUID {
	if identity == nil {
		return uuid.Nil
	}
	return identity.ID
}

func shortSID(sid string) string {
	if len(sid) > 8 {
		return sid[:8]
	}
	return sid
}
