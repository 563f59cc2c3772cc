package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// ContactInput is the contact form.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// Validate checks the form.
func (i *ContactInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > MaxContactNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if !domain.IsValidEmail(i.Email) {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}
	if i.Message == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	} else if len(i.Message) > MaxContactMessageLength {
		errs = append(errs, domain.FieldError{Field: "message", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SubmitContact stores a contact form submission.
func (s *Service) SubmitContact(ctx context.Context, input ContactInput) (*domain.ContactSubmission, error) {
	input.Name = domain.NormalizeName(input.Name)
	input.Email = domain.NormalizeEmail(input.Email)
	input.Message = strings.TrimSpace(input.Message)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.contacts.Create(ctx, input.Name, input.Email, input.Message)
	if err != nil {
		return nil, fmt.Errorf("content.SubmitContact: %w", err)
	}

	s.log.InfoContext(ctx, "contact submission stored", slog.String("submission_id", sub.ID.String()))
	return sub, nil
}
