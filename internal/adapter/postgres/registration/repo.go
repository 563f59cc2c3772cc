// Package registration implements the investor registration repository
// using PostgreSQL.
package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/endocyclic/investor-portal/internal/adapter/postgres"
	"github.com/endocyclic/investor-portal/internal/domain"
)

const table = "investor_registrations"

var columns = []string{
	"id", "user_id", "email", "first_name", "last_name", "company", "role", "phone",
	"investment_preferences", "accreditation_status", "investment_capacity_range",
	"status", "created_at", "updated_at", "decided_at",
}

// Repo provides registration persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new registration repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) selectBuilder() squirrel.SelectBuilder {
	return postgres.Builder().Select(columns...).From(table)
}

// Create inserts a new pending registration and returns the stored row.
func (r *Repo) Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	prefs := reg.InvestmentPreferences
	if prefs == nil {
		prefs = []string{}
	}
	accreditation := reg.AccreditationStatus
	if accreditation == "" {
		accreditation = domain.AccreditationPendingVerification
	}

	insert := postgres.Builder().
		Insert(table).
		Columns("user_id", "email", "first_name", "last_name", "company", "role", "phone",
			"investment_preferences", "accreditation_status", "investment_capacity_range", "status").
		Values(reg.UserID, domain.NormalizeEmail(reg.Email), reg.FirstName, reg.LastName, reg.Company, reg.Role, reg.Phone,
			prefs, string(accreditation), string(reg.CapacityRange), string(domain.StatusPending)).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	created, err := postgres.SelectOne[domain.Registration](ctx, postgres.QuerierFromCtx(ctx, r.db), insert)
	if err != nil {
		return nil, postgres.MapError(err, "registration", reg.Email)
	}
	return created, nil
}

// GetByID returns a registration by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	query := r.selectBuilder().Where(squirrel.Eq{"id": id})

	reg, err := postgres.SelectOne[domain.Registration](ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return nil, postgres.MapError(err, "registration", id)
	}
	return reg, nil
}

// GetByIDForUpdate returns a registration and locks its row until the
// surrounding transaction ends.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	query := r.selectBuilder().Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE")

	reg, err := postgres.SelectOne[domain.Registration](ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return nil, postgres.MapError(err, "registration", id)
	}
	return reg, nil
}

// LatestByEmail returns the most recent registration for email.
func (r *Repo) LatestByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	email = domain.NormalizeEmail(email)
	query := r.selectBuilder().
		Where(squirrel.Expr("lower(email) = ?", email)).
		OrderBy("created_at DESC").
		Limit(1)

	reg, err := postgres.SelectOne[domain.Registration](ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return nil, postgres.MapError(err, "registration", email)
	}
	return reg, nil
}

// LatestForUser returns the most recent registration linked to userID. When
// none is linked, it falls back to the most recent unlinked registration
// for email.
func (r *Repo) LatestForUser(ctx context.Context, userID uuid.UUID, email string) (*domain.Registration, error) {
	email = domain.NormalizeEmail(email)
	query := r.selectBuilder().
		Where(squirrel.Or{
			squirrel.Eq{"user_id": userID},
			squirrel.And{
				squirrel.Eq{"user_id": nil},
				squirrel.Expr("lower(email) = ?", email),
			},
		}).
		OrderBy("user_id IS NULL", "created_at DESC").
		Limit(1)

	reg, err := postgres.SelectOne[domain.Registration](ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return nil, postgres.MapError(err, "registration", userID)
	}
	return reg, nil
}

// ListByStatus returns registrations with status, newest first.
func (r *Repo) ListByStatus(ctx context.Context, status domain.InvestorStatus) ([]domain.Registration, error) {
	query := r.selectBuilder().
		Where(squirrel.Eq{"status": string(status)}).
		OrderBy("created_at DESC")

	regs, err := postgres.SelectAll[domain.Registration](ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return nil, postgres.MapError(err, "registration", status)
	}
	return regs, nil
}

// Decide moves a pending registration to status. A registration that is no
// longer pending is left untouched and yields domain.ErrConflict.
func (r *Repo) Decide(ctx context.Context, id uuid.UUID, status domain.InvestorStatus, decidedAt time.Time) (*domain.Registration, error) {
	if !status.IsDecided() {
		return nil, fmt.Errorf("registration %s: %w: cannot decide to %s", id, domain.ErrValidation, status)
	}

	update := postgres.Builder().
		Update(table).
		Set("status", string(status)).
		Set("decided_at", decidedAt).
		Set("updated_at", decidedAt).
		Where(squirrel.Eq{"id": id, "status": string(domain.StatusPending)}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	q := postgres.QuerierFromCtx(ctx, r.db)
	reg, err := postgres.SelectOne[domain.Registration](ctx, q, update)
	if err == nil {
		return reg, nil
	}

	mapped := postgres.MapError(err, "registration", id)
	if !errors.Is(mapped, domain.ErrNotFound) {
		return nil, mapped
	}

	// Nothing updated: either the row is gone or it was already decided.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("registration %s: %w: already decided", id, domain.ErrConflict)
}

// StatusesByUserIDs returns the status of the most recent registration of
// each user in ids. Users without a registration are absent from the map.
func (r *Repo) StatusesByUserIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.InvestorStatus, error) {
	out := make(map[uuid.UUID]domain.InvestorStatus, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := postgres.Builder().
		Select("user_id", "status").
		Options("DISTINCT ON (user_id)").
		From(table).
		Where(squirrel.Eq{"user_id": ids}).
		OrderBy("user_id", "created_at DESC")

	type row struct {
		UserID uuid.UUID             `db:"user_id"`
		Status domain.InvestorStatus `db:"status"`
	}
	rows, err := postgres.SelectAll[row](ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return nil, postgres.MapError(err, "registration", fmt.Sprintf("%d users", len(ids)))
	}

	for _, rw := range rows {
		out[rw.UserID] = rw.Status
	}
	return out, nil
}
