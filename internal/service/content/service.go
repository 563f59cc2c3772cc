// Package content serves the public site content and stores contact form
// submissions.
package content

import (
	"context"
	"log/slog"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

const (
	DefaultNewsLimit = 3
	MaxNewsLimit     = 50

	MaxContactNameLength    = 200
	MaxContactMessageLength = 5000
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type contentRepo interface {
	Products(ctx context.Context) ([]domain.Product, error)
	TeamMembers(ctx context.Context) ([]domain.TeamMember, error)
	Publications(ctx context.Context, category string) ([]domain.Publication, error)
	PublicationCategories(ctx context.Context) ([]string, error)
	LatestNews(ctx context.Context, limit int) ([]domain.NewsUpdate, error)
}

type contactRepo interface {
	Create(ctx context.Context, name, email, message string) (*domain.ContactSubmission, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements public content operations. Reads need no identity.
type Service struct {
	log      *slog.Logger
	content  contentRepo
	contacts contactRepo
}

// NewService creates a new content service.
func NewService(logger *slog.Logger, content contentRepo, contacts contactRepo) *Service {
	return &Service{
		log:      logger.With("service", "content"),
		content:  content,
		contacts: contacts,
	}
}
