package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/pkg/ctxutil"
)

const minPasswordLength = 8

// CreateUserInput describes a user created from the dashboard.
type CreateUserInput struct {
	Email    string
	Password string
	Role     domain.UserRole
}

// Validate checks the input.
func (i *CreateUserInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if !domain.IsValidEmail(i.Email) {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}
	if len(i.Password) < minPasswordLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be 'user' or 'admin'"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListUsers returns every identity with its role.
func (s *Service) ListUsers(ctx context.Context) ([]domain.ManagedUser, error) {
	if err := requireAdmin(ctx, "admin.ListUsers"); err != nil {
		return nil, err
	}

	users, err := s.accounts.ListUsers(ctx)
	if err != nil {
		return nil, domain.NewLookupError("admin.ListUsers", err)
	}
	return users, nil
}

// CreateUser creates a confirmed identity with the given role.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*domain.Identity, error) {
	if err := requireAdmin(ctx, "admin.CreateUser"); err != nil {
		return nil, err
	}

	input.Email = domain.NormalizeEmail(input.Email)
	if input.Role == "" {
		input.Role = domain.UserRoleUser
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	identity, err := s.identities.AdminCreateUser(ctx, domain.CreateIdentityInput{
		Email:       input.Email,
		Password:    input.Password,
		AppMetadata: map[string]any{domain.MetaRole: input.Role.String()},
	})
	if err != nil {
		return nil, fmt.Errorf("admin.CreateUser: %w", err)
	}

	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", identity.ID.String()),
		slog.String("role", input.Role.String()),
	)
	return identity, nil
}

// DeleteUser removes an identity. Registration records outlive it.
// Administrators cannot delete themselves.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := requireAdmin(ctx, "admin.DeleteUser"); err != nil {
		return err
	}
	if err := checkNotSelf(ctx, id); err != nil {
		return err
	}

	if err := s.accounts.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("admin.DeleteUser: %w", err)
	}

	s.log.InfoContext(ctx, "user deleted", slog.String("target_user_id", id.String()))
	return nil
}

func checkNotSelf(ctx context.Context, id uuid.UUID) error {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.NewAuthError(domain.AuthReasonNoSession)
	}
	if callerID == id {
		return domain.NewValidationError("userId", "cannot delete yourself")
	}
	return nil
}
