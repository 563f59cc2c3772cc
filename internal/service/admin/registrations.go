package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/pkg/ctxutil"
)

// ListPending returns the registrations awaiting a decision, newest first.
func (s *Service) ListPending(ctx context.Context) ([]domain.Registration, error) {
	if err := requireAdmin(ctx, "admin.ListPending"); err != nil {
		return nil, err
	}

	regs, err := s.registrations.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, domain.NewLookupError("admin.ListPending", err)
	}
	return regs, nil
}

// Decide approves or rejects a pending registration. A registration that
// was already decided yields domain.ErrConflict. On success the decision is
// published and the identity's status cache is updated.
func (s *Service) Decide(ctx context.Context, id uuid.UUID, approved bool) (*domain.Registration, error) {
	if err := requireAdmin(ctx, "admin.Decide"); err != nil {
		return nil, err
	}

	status := domain.StatusRejected
	if approved {
		status = domain.StatusApproved
	}

	var decided *domain.Registration
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		reg, err := s.registrations.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if reg.Status.IsDecided() {
			return fmt.Errorf("registration already %s: %w", reg.Status, domain.ErrConflict)
		}

		decided, err = s.registrations.Decide(txCtx, id, status, s.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("admin.Decide: %w", err)
	}

	adminID, _ := ctxutil.UserIDFromCtx(ctx)
	s.log.InfoContext(ctx, "registration decided",
		slog.String("registration_id", id.String()),
		slog.String("status", status.String()),
		slog.String("admin_id", adminID.String()),
	)

	if decided.UserID != nil {
		s.syncStatusCache(ctx, *decided.UserID, status)
	}

	decidedAt := s.now()
	if decided.DecidedAt != nil {
		decidedAt = *decided.DecidedAt
	}
	s.decisions.Publish(domain.RegistrationDecision{
		RegistrationID: decided.ID,
		UserID:         decided.UserID,
		Email:          decided.Email,
		Status:         decided.Status,
		DecidedBy:      adminID,
		DecidedAt:      decidedAt,
	})

	return decided, nil
}

// syncStatusCache writes the decision into app metadata so the next sign-in
// of an offline investor sees it without a record lookup.
func (s *Service) syncStatusCache(ctx context.Context, userID uuid.UUID, status domain.InvestorStatus) {
	patch := domain.StatusCachePatch(status, s.now())
	if _, err := s.identities.AdminUpdateAppMetadata(ctx, userID, patch); err != nil {
		s.log.WarnContext(ctx, "status cache sync failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}
}
