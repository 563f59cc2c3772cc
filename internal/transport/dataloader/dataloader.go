// Package dataloader provides per-request DataLoaders that batch lookups
// made while rendering lists, e.g. the investor status of every managed
// user on the admin dashboard. Loaders call repositories directly; the
// handlers using them are already restricted to admins.
package dataloader

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/endocyclic/investor-portal/internal/domain"
)

const (
	maxBatch    = 100
	defaultWait = 2 * time.Millisecond
)

type registrationRepo interface {
	StatusesByUserIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.InvestorStatus, error)
}

// Repos holds the repositories required by the loaders. Wait is how long a
// loader collects keys before it runs a batch; zero means 2ms.
type Repos struct {
	Registration registrationRepo
	Wait         time.Duration
}

// Loaders contains the per-request DataLoaders. Created per request via
// NewLoaders.
type Loaders struct {
	StatusByUserID *dataloader.Loader[uuid.UUID, domain.InvestorStatus]
}

// NewLoaders creates a new set of DataLoaders backed by the given
// repositories. Must be called per request: loaders cache results.
func NewLoaders(repos *Repos) *Loaders {
	wait := repos.Wait
	if wait <= 0 {
		wait = defaultWait
	}
	return &Loaders{
		StatusByUserID: newLoader(newStatusBatchFn(repos.Registration), wait),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V], wait time.Duration) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// ErrNoLoaders is returned when a handler that batches lookups runs
// without Attach in its middleware chain.
var ErrNoLoaders = errors.New("dataloader: no loaders in request context")

type loadersKey struct{}

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey{}, l)
}

// FromContext retrieves the request's Loaders.
func FromContext(ctx context.Context) (*Loaders, bool) {
	l, ok := ctx.Value(loadersKey{}).(*Loaders)
	return l, ok && l != nil
}

// Attach gives every request a fresh set of loaders, so cached results
// never outlive the request that loaded them.
func Attach(repos *Repos) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithLoaders(r.Context(), NewLoaders(repos))))
		})
	}
}
