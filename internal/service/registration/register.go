package registration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// Register validates the form, creates the identity and stores a pending
// registration record for it. If the record cannot be stored the identity
// is deleted again, so neither exists without the other.
func (s *Service) Register(ctx context.Context, input Input) (*Result, error) {
	input.normalize()

	// Step 1: Validate input before any remote call.
	if err := input.Validate(s.cfg.RequirePreference); err != nil {
		return nil, err
	}

	// Step 2: Create the identity.
	identity, err := s.identities.SignUp(ctx, input.Email, input.Password, input.userMetadata())
	if err != nil {
		return nil, fmt.Errorf("registration.Register sign up: %w", err)
	}

	// Step 3: Store the record.
	userID := identity.ID
	reg, err := s.registrations.Create(ctx, &domain.Registration{
		UserID:                &userID,
		Email:                 input.Email,
		FirstName:             input.FirstName,
		LastName:              input.LastName,
		Company:               input.Company,
		Role:                  input.JobTitle,
		Phone:                 input.Phone,
		InvestmentPreferences: input.InvestmentPreferences,
		AccreditationStatus:   input.accreditation(),
		CapacityRange:         input.CapacityRange,
		Status:                domain.StatusPending,
	})
	if err != nil {
		s.removeIdentity(ctx, identity)
		return nil, fmt.Errorf("registration.Register create record: %w", err)
	}

	// Step 4: Seed the status cache. Resolution falls back to the record
	// when this fails.
	if _, err := s.identities.AdminUpdateAppMetadata(ctx, identity.ID,
		domain.StatusCachePatch(domain.StatusPending, s.now())); err != nil {
		s.log.WarnContext(ctx, "seed status cache failed",
			slog.String("user_id", identity.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.log.InfoContext(ctx, "investor registered",
		slog.String("user_id", identity.ID.String()),
		slog.String("registration_id", reg.ID.String()),
	)

	return &Result{
		Registration: reg,
		Identity:     identity,
		Message:      domain.MsgRegistrationReceived,
	}, nil
}

func (s *Service) removeIdentity(ctx context.Context, identity *domain.Identity) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := s.identities.AdminDeleteUser(ctx, identity.ID); err != nil {
		s.log.ErrorContext(ctx, "orphan identity left after failed registration",
			slog.String("user_id", identity.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	s.log.WarnContext(ctx, "identity removed after failed registration",
		slog.String("user_id", identity.ID.String()),
	)
}
