// Package contact stores messages sent through the public contact form.
package contact

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	postgres "github.com/endocyclic/investor-portal/internal/adapter/postgres"
	"github.com/endocyclic/investor-portal/internal/domain"
)

const table = "contact_submissions"

var columns = []string{"id", "name", "email", "message", "created_at"}

// Repo provides contact submission persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new contact repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create stores a submission and returns the stored row.
func (r *Repo) Create(ctx context.Context, name, email, message string) (*domain.ContactSubmission, error) {
	insert := postgres.Builder().
		Insert(table).
		Columns("name", "email", "message").
		Values(name, email, message).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	sub, err := postgres.SelectOne[domain.ContactSubmission](ctx, postgres.QuerierFromCtx(ctx, r.db), insert)
	if err != nil {
		return nil, postgres.MapError(err, "contact submission", email)
	}
	return sub, nil
}

// DeleteOlderThan removes submissions created before cutoff and returns the
// number of deleted rows.
func (r *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	del := postgres.Builder().
		Delete(table).
		Where(squirrel.Lt{"created_at": cutoff})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), del)
	if err != nil {
		return 0, postgres.MapError(err, "contact submission", cutoff.Format(time.RFC3339))
	}
	return n, nil
}
