// Package portaltest provides in-memory collaborators for portal clients.
package portaltest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/service/admin"
)

// Registrations is an in-memory registration table.
type Registrations struct {
	mu      sync.Mutex
	regs    []domain.Registration
	err     error
	batches [][]uuid.UUID
}

// Add appends a registration of userID and returns its id.
func (f *Registrations) Add(userID uuid.UUID, email string, status domain.InvestorStatus) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.regs = append(f.regs, domain.Registration{
		ID:        id,
		UserID:    &userID,
		Email:     email,
		Status:    status,
		CreatedAt: time.Now(),
	})
	return id
}

// SetStatus changes the status of registration id.
func (f *Registrations) SetStatus(id uuid.UUID, status domain.InvestorStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.regs {
		if f.regs[i].ID == id {
			f.regs[i].Status = status
		}
	}
}

// Fail makes every lookup return err. A nil err restores normal behavior.
func (f *Registrations) Fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *Registrations) LatestByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	return f.latest(func(r domain.Registration) bool { return strings.EqualFold(r.Email, email) })
}

func (f *Registrations) LatestForUser(ctx context.Context, userID uuid.UUID, email string) (*domain.Registration, error) {
	return f.latest(func(r domain.Registration) bool { return r.UserID != nil && *r.UserID == userID })
}

// StatusesByUserIDs returns the latest status of each user with a
// registration.
func (f *Registrations) StatusesByUserIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.InvestorStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, append([]uuid.UUID(nil), ids...))
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[uuid.UUID]domain.InvestorStatus, len(ids))
	for _, id := range ids {
		for i := len(f.regs) - 1; i >= 0; i-- {
			if r := f.regs[i]; r.UserID != nil && *r.UserID == id {
				out[id] = r.Status
				break
			}
		}
	}
	return out, nil
}

// StatusBatches returns the ids of every StatusesByUserIDs call in order.
func (f *Registrations) StatusBatches() [][]uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]uuid.UUID, len(f.batches))
	copy(out, f.batches)
	return out
}

func (f *Registrations) latest(match func(domain.Registration) bool) (*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i := len(f.regs) - 1; i >= 0; i-- {
		if match(f.regs[i]) {
			r := f.regs[i]
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Documents is an in-memory document library.
type Documents struct {
	mu   sync.Mutex
	docs []domain.Document
	err  error
}

// NewDocuments creates a library holding docs.
func NewDocuments(docs ...domain.Document) *Documents {
	return &Documents{docs: docs}
}

// Fail makes ListAll return err. A nil err restores normal behavior.
func (f *Documents) Fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *Documents) ListAll(ctx context.Context) ([]domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Document(nil), f.docs...), nil
}

// SampleDocuments returns a small library spanning two categories.
func SampleDocuments() []domain.Document {
	return []domain.Document{
		{ID: uuid.New(), Title: "Q2 Report", Category: "Financial Reports", Tags: []string{"2024"}},
		{ID: uuid.New(), Title: "Series B Deck", Category: "Presentations", Tags: []string{"fundraising", "2024"}},
	}
}

// AdminStub performs admin operations without side effects.
type AdminStub struct{}

func (AdminStub) ListPending(ctx context.Context) ([]domain.Registration, error) { return nil, nil }
func (AdminStub) Decide(ctx context.Context, id uuid.UUID, approved bool) (*domain.Registration, error) {
	return &domain.Registration{ID: id}, nil
}
func (AdminStub) ListUsers(ctx context.Context) ([]domain.ManagedUser, error) { return nil, nil }
func (AdminStub) CreateUser(ctx context.Context, input admin.CreateUserInput) (*domain.Identity, error) {
	return &domain.Identity{ID: uuid.New()}, nil
}
func (AdminStub) DeleteUser(ctx context.Context, id uuid.UUID) error { return nil }
