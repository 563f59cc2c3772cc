package admin

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// ErrConfirmationInvalid is returned when a deletion confirmation token is
// unknown, expired or issued for another user.
var ErrConfirmationInvalid = errors.New("deletion confirmation invalid or expired")

// operations is what a Dashboard drives. *Service implements it.
type operations interface {
	ListPending(ctx context.Context) ([]domain.Registration, error)
	Decide(ctx context.Context, id uuid.UUID, approved bool) (*domain.Registration, error)
	ListUsers(ctx context.Context) ([]domain.ManagedUser, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.Identity, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// ListState is the visible state of one list on the dashboard.
type ListState[T any] struct {
	Items   []T
	Loading bool
	Loaded  bool
	Err     error
}

// DashboardSnapshot is the visible state of a Dashboard.
type DashboardSnapshot struct {
	Pending     ListState[domain.Registration]
	Users       ListState[domain.ManagedUser]
	Mutating    bool
	MutationErr error
}

// Confirmation authorizes one deletion until ExpiresAt.
type Confirmation struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// Dashboard holds the admin page state of one browser. The pending list,
// the user list and mutations each carry their own loading and error flags.
type Dashboard struct {
	ops        operations
	confirmTTL time.Duration
	now        func() time.Time

	mu            sync.Mutex
	pending       ListState[domain.Registration]
	users         ListState[domain.ManagedUser]
	mutations     int
	mutationErr   error
	confirmations map[string]Confirmation
}

// NewDashboard creates an empty dashboard. Deletion confirmations expire
// after confirmTTL.
func NewDashboard(ops operations, confirmTTL time.Duration) *Dashboard {
	return &Dashboard{
		ops:           ops,
		confirmTTL:    confirmTTL,
		now:           time.Now,
		confirmations: make(map[string]Confirmation),
	}
}

// LoadPending refreshes the pending registrations.
func (d *Dashboard) LoadPending(ctx context.Context) ([]domain.Registration, error) {
	d.mu.Lock()
	d.pending.Loading = true
	d.mu.Unlock()

	regs, err := d.ops.ListPending(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending.Loading = false
	d.pending.Err = err
	if err != nil {
		return nil, err
	}
	d.pending.Items = regs
	d.pending.Loaded = true
	return cloneSlice(regs), nil
}

// LoadUsers refreshes the user list.
func (d *Dashboard) LoadUsers(ctx context.Context) ([]domain.ManagedUser, error) {
	d.mu.Lock()
	d.users.Loading = true
	d.mu.Unlock()

	users, err := d.ops.ListUsers(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.users.Loading = false
	d.users.Err = err
	if err != nil {
		return nil, err
	}
	d.users.Items = users
	d.users.Loaded = true
	return cloneSlice(users), nil
}

// Decide approves or rejects a registration and removes it from the
// pending list on success.
func (d *Dashboard) Decide(ctx context.Context, id uuid.UUID, approved bool) (*domain.Registration, error) {
	d.beginMutation()
	reg, err := d.ops.Decide(ctx, id, approved)
	d.endMutation(err)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.pending.Items = removeWhere(d.pending.Items, func(r domain.Registration) bool { return r.ID == id })
	d.mu.Unlock()
	return reg, nil
}

// CreateUser creates a user and reloads the user list.
func (d *Dashboard) CreateUser(ctx context.Context, input CreateUserInput) (*domain.Identity, error) {
	d.beginMutation()
	identity, err := d.ops.CreateUser(ctx, input)
	d.endMutation(err)
	if err != nil {
		return nil, err
	}

	// The list error, if any, is kept in its own flag.
	_, _ = d.LoadUsers(ctx)
	return identity, nil
}

// RequestDeletion issues a confirmation token for deleting userID. Nothing
// is deleted until ConfirmDeletion is called with the token.
func (d *Dashboard) RequestDeletion(ctx context.Context, userID uuid.UUID) (Confirmation, error) {
	if err := requireAdmin(ctx, "admin.RequestDeletion"); err != nil {
		return Confirmation{}, err
	}
	if err := checkNotSelf(ctx, userID); err != nil {
		return Confirmation{}, err
	}

	now := d.now()
	c := Confirmation{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(d.confirmTTL),
	}

	d.mu.Lock()
	d.pruneConfirmations(now)
	d.confirmations[c.Token] = c
	d.mu.Unlock()
	return c, nil
}

// ConfirmDeletion deletes userID if token confirms it. A token is consumed
// by its first use, successful or not.
func (d *Dashboard) ConfirmDeletion(ctx context.Context, userID uuid.UUID, token string) error {
	d.mu.Lock()
	c, ok := d.confirmations[token]
	delete(d.confirmations, token)
	d.mu.Unlock()

	if !ok || c.UserID != userID || !d.now().Before(c.ExpiresAt) {
		return domain.NewValidationError("confirm", ErrConfirmationInvalid.Error())
	}

	d.beginMutation()
	err := d.ops.DeleteUser(ctx, userID)
	d.endMutation(err)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.users.Items = removeWhere(d.users.Items, func(u domain.ManagedUser) bool { return u.ID == userID })
	d.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the dashboard state.
func (d *Dashboard) Snapshot() DashboardSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	pending := d.pending
	pending.Items = cloneSlice(d.pending.Items)
	users := d.users
	users.Items = cloneSlice(d.users.Items)
	return DashboardSnapshot{
		Pending:     pending,
		Users:       users,
		Mutating:    d.mutations > 0,
		MutationErr: d.mutationErr,
	}
}

func (d *Dashboard) beginMutation() {
	d.mu.Lock()
	d.mutations++
	d.mutationErr = nil
	d.mu.Unlock()
}

func (d *Dashboard) endMutation(err error) {
	d.mu.Lock()
	d.mutations--
	d.mutationErr = err
	d.mu.Unlock()
}

func (d *Dashboard) pruneConfirmations(now time.Time) {
	for token, c := range d.confirmations {
		if !now.Before(c.ExpiresAt) {
			delete(d.confirmations, token)
		}
	}
}

func removeWhere[T any](items []T, match func(T) bool) []T {
	out := items[:0:0]
	for _, it := range items {
		if !match(it) {
			out = append(out, it)
		}
	}
	return out
}

func cloneSlice[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
