// Package gate decides whether a browser may open the investor portal and
// tracks the portal, auth modal and admin page visibility.
package gate

import (
	"sync"

	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/eventbus"
)

// State is the access state of the portal.
type State string

const (
	StateAnonymous        State = "anonymous"
	StateAwaitingDecision State = "awaiting_decision"
	StateDenied           State = "denied"
	StateAuthorized       State = "authorized"
)

// StateFor maps a resolved status to a gate state. Admins are always
// authorized.
func StateFor(hasIdentity, isAdmin bool, status domain.InvestorStatus) State {
	switch {
	case hasIdentity && isAdmin:
		return StateAuthorized
	case !hasIdentity:
		return StateAnonymous
	}
	switch status {
	case domain.StatusPending:
		return StateAwaitingDecision
	case domain.StatusRejected:
		return StateDenied
	case domain.StatusApproved:
		return StateAuthorized
	}
	return StateAnonymous
}

// Action is what the presentation layer should do after an access request.
type Action string

const (
	ActionShowAuth   Action = "show_auth"
	ActionNotice     Action = "notice"
	ActionOpenPortal Action = "open_portal"
)

// Outcome is the result of RequestAccess.
type Outcome struct {
	Action Action
	Notice string
}

// Transition describes the effect of Apply.
type Transition struct {
	From         State
	To           State
	PortalClosed bool
}

// Changed reports whether the state changed.
func (t Transition) Changed() bool { return t.From != t.To }

// Snapshot is the visible gate state.
type Snapshot struct {
	State         State
	PortalOpen    bool
	AuthModalOpen bool
	AdminPageOpen bool
}

// EventKind names a gate change.
type EventKind string

const (
	EventStateChanged EventKind = "state_changed"
	EventAuthModal    EventKind = "auth_modal"
	EventAdminPage    EventKind = "admin_page"
	EventPortalOpened EventKind = "portal_opened"
	EventPortalClosed EventKind = "portal_closed"
)

// Event is published after every visible gate change.
type Event struct {
	Kind     EventKind
	Snapshot Snapshot
}

// Gate is the access state machine of one browser. The zero state is
// StateAnonymous with everything closed.
type Gate struct {
	mu   sync.Mutex
	snap Snapshot
	bus  *eventbus.Bus[Event]
}

// New creates a Gate in StateAnonymous.
func New() *Gate {
	return &Gate{
		snap: Snapshot{State: StateAnonymous},
		bus:  eventbus.New[Event](),
	}
}

// Subscribe registers fn for gate events and returns the unsubscribe
// function.
func (g *Gate) Subscribe(fn func(Event)) func() {
	return g.bus.Subscribe(fn)
}

// Snapshot returns the current gate state.
func (g *Gate) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snap
}

// State returns the current access state.
func (g *Gate) State() State {
	return g.Snapshot().State
}

// Apply moves the gate to state. Leaving StateAuthorized closes the portal.
// Any signed-in state closes the auth modal; StateAnonymous closes the
// admin page.
func (g *Gate) Apply(state State) Transition {
	g.mu.Lock()
	before := g.snap
	tr := Transition{From: before.State, To: state}

	g.snap.State = state
	if state != StateAuthorized && g.snap.PortalOpen {
		g.snap.PortalOpen = false
		tr.PortalClosed = true
	}
	if state != StateAnonymous {
		g.snap.AuthModalOpen = false
	}
	if state == StateAnonymous {
		g.snap.AdminPageOpen = false
	}
	after := g.snap
	g.mu.Unlock()

	if tr.PortalClosed {
		g.bus.Publish(Event{Kind: EventPortalClosed, Snapshot: after})
	}
	if after != before {
		g.bus.Publish(Event{Kind: EventStateChanged, Snapshot: after})
	}
	return tr
}

// RequestAccess handles the "open investor portal" intent.
func (g *Gate) RequestAccess() Outcome {
	g.mu.Lock()
	var (
		out  Outcome
		kind EventKind
	)
	switch g.snap.State {
	case StateAuthorized:
		out = Outcome{Action: ActionOpenPortal}
		if !g.snap.PortalOpen {
			g.snap.PortalOpen = true
			kind = EventPortalOpened
		}
	case StateAwaitingDecision:
		out = Outcome{Action: ActionNotice, Notice: domain.MsgRegistrationPending}
	case StateDenied:
		out = Outcome{Action: ActionNotice, Notice: domain.MsgRegistrationRejected}
	default:
		out = Outcome{Action: ActionShowAuth}
		if !g.snap.AuthModalOpen {
			g.snap.AuthModalOpen = true
			kind = EventAuthModal
		}
	}
	after := g.snap
	g.mu.Unlock()

	if kind != "" {
		g.bus.Publish(Event{Kind: kind, Snapshot: after})
	}
	return out
}

// ClosePortal closes the portal without touching the access state.
func (g *Gate) ClosePortal() {
	g.mu.Lock()
	wasOpen := g.snap.PortalOpen
	g.snap.PortalOpen = false
	after := g.snap
	g.mu.Unlock()

	if wasOpen {
		g.bus.Publish(Event{Kind: EventPortalClosed, Snapshot: after})
	}
}

// ToggleAuthModal flips the auth modal and returns whether it is now open.
func (g *Gate) ToggleAuthModal() bool {
	g.mu.Lock()
	g.snap.AuthModalOpen = !g.snap.AuthModalOpen
	after := g.snap
	g.mu.Unlock()

	g.bus.Publish(Event{Kind: EventAuthModal, Snapshot: after})
	return after.AuthModalOpen
}

// ToggleAdminPage flips the admin page and returns whether it is now open.
// Only admins may open it; closing is always allowed.
func (g *Gate) ToggleAdminPage(isAdmin bool) (bool, error) {
	g.mu.Lock()
	if !g.snap.AdminPageOpen && !isAdmin {
		g.mu.Unlock()
		return false, &domain.AuthorizationError{Op: "gate.ToggleAdminPage"}
	}
	g.snap.AdminPageOpen = !g.snap.AdminPageOpen
	after := g.snap
	g.mu.Unlock()

	g.bus.Publish(Event{Kind: EventAdminPage, Snapshot: after})
	return after.AdminPageOpen, nil
}
