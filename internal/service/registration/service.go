// Package registration implements the investor sign-up workflow: an
// identity is created with the auth backend and a pending registration
// record is stored next to it.
package registration

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/endocyclic/investor-portal/internal/config"
	"github.com/endocyclic/investor-portal/internal/domain"
)

// identityProvider is the part of the auth backend the workflow needs.
type identityProvider interface {
	SignUp(ctx context.Context, email, password string, userMeta map[string]any) (*domain.Identity, error)
	AdminUpdateAppMetadata(ctx context.Context, userID uuid.UUID, patch map[string]any) (*domain.Identity, error)
	AdminDeleteUser(ctx context.Context, userID uuid.UUID) error
}

// registrationRepo stores registration records.
type registrationRepo interface {
	Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error)
}

// cleanupTimeout bounds the compensating identity deletion, which runs even
// when the request context is already cancelled.
const cleanupTimeout = 10 * time.Second

// Service implements the registration workflow.
type Service struct {
	log           *slog.Logger
	identities    identityProvider
	registrations registrationRepo
	cfg           config.RegistrationConfig
	now           func() time.Time
}

// NewService creates a new registration service.
func NewService(
	logger *slog.Logger,
	identities identityProvider,
	registrations registrationRepo,
	cfg config.RegistrationConfig,
) *Service {
	return &Service{
		log:           logger.With("service", "registration"),
		identities:    identities,
		registrations: registrations,
		cfg:           cfg,
		now:           time.Now,
	}
}
