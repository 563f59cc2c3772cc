// Package admin implements the registration review and user management
// operations available to portal administrators.
package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/pkg/ctxutil"
)

// registrationRepo defines the registration queries needed by the admin service.
type registrationRepo interface {
	ListByStatus(ctx context.Context, status domain.InvestorStatus) ([]domain.Registration, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Registration, error)
	Decide(ctx context.Context, id uuid.UUID, status domain.InvestorStatus, decidedAt time.Time) (*domain.Registration, error)
}

// accountRepo defines the privileged user procedures.
type accountRepo interface {
	ListUsers(ctx context.Context) ([]domain.ManagedUser, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// identityAdmin is the admin part of the auth backend.
type identityAdmin interface {
	AdminCreateUser(ctx context.Context, input domain.CreateIdentityInput) (*domain.Identity, error)
	AdminUpdateAppMetadata(ctx context.Context, userID uuid.UUID, patch map[string]any) (*domain.Identity, error)
}

// txManager defines the transaction manager interface needed by the admin service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// decisionPublisher announces decided registrations to the rest of the process.
type decisionPublisher interface {
	Publish(e domain.RegistrationDecision)
}

// Service implements admin operations. Every method re-checks the admin
// role carried by the context.
type Service struct {
	log           *slog.Logger
	registrations registrationRepo
	accounts      accountRepo
	identities    identityAdmin
	tx            txManager
	decisions     decisionPublisher
	now           func() time.Time
}

// NewService creates a new admin service.
func NewService(
	logger *slog.Logger,
	registrations registrationRepo,
	accounts accountRepo,
	identities identityAdmin,
	tx txManager,
	decisions decisionPublisher,
) *Service {
	return &Service{
		log:           logger.With("service", "admin"),
		registrations: registrations,
		accounts:      accounts,
		identities:    identities,
		tx:            tx,
		decisions:     decisions,
		now:           time.Now,
	}
}

func requireAdmin(ctx context.Context, op string) error {
	if !ctxutil.IsAdminCtx(ctx) {
		return &domain.AuthorizationError{Op: op}
	}
	return nil
}
