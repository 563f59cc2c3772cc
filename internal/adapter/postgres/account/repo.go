// Package account wraps the privileged user-management procedures of the
// database: listing identities and deleting one.
package account

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/endocyclic/investor-portal/internal/adapter/postgres"
	"github.com/endocyclic/investor-portal/internal/domain"
)

// Repo calls the user-management procedures.
type Repo struct {
	db postgres.Querier
}

// New creates a new account repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListUsers returns every identity, newest first, as reported by get_users().
func (r *Repo) ListUsers(ctx context.Context) ([]domain.ManagedUser, error) {
	query := postgres.Builder().
		Select("id", "email", "role", "created_at", "last_sign_in_at").
		From("get_users()")

	users, err := postgres.SelectAll[domain.ManagedUser](ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return nil, postgres.MapError(err, "users", "all")
	}
	return users, nil
}

// DeleteUser removes the identity through delete_managed_user(). Its
// registrations are kept with user_id cleared.
func (r *Repo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	query := postgres.Builder().Select().Column(squirrel.Expr("delete_managed_user(?::uuid)", id.String()))

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	var found bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&found); err != nil {
		return postgres.MapError(err, "user", id)
	}
	if !found {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SetRoleByEmail merges role into the app metadata of the identity with
// email. It is used to bootstrap the first admin.
func (r *Repo) SetRoleByEmail(ctx context.Context, email string, role domain.UserRole) (uuid.UUID, error) {
	patch, err := json.Marshal(map[string]string{domain.MetaRole: string(role)})
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode role patch: %w", err)
	}

	email = domain.NormalizeEmail(email)
	update := postgres.Builder().
		Update("auth.users").
		Set("raw_app_meta_data", squirrel.Expr("COALESCE(raw_app_meta_data, '{}'::jsonb) || ?::jsonb", string(patch))).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Expr("lower(email) = ?", email)).
		Suffix("RETURNING id")

	sql, args, err := update.ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build query: %w", err)
	}

	var id uuid.UUID
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return uuid.Nil, postgres.MapError(err, "user", email)
	}
	return id, nil
}
