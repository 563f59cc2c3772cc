package dataloader

import (
	"context"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// newStatusBatchFn resolves the latest registration status per user. Users
// without a registration resolve to domain.StatusNone.
func newStatusBatchFn(repo registrationRepo) dataloader.BatchFunc[uuid.UUID, domain.InvestorStatus] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[domain.InvestorStatus] {
		statuses, err := repo.StatusesByUserIDs(ctx, keys)
		if err != nil {
			return errorResults[domain.InvestorStatus](len(keys), err)
		}
		return mapResults(keys, statuses, func() domain.InvestorStatus { return domain.StatusNone })
	}
}

// StatusOf queues a status lookup for userID on the request's loader and
// returns a thunk that waits for it. Lookups queued before the first thunk
// is called share a batch, and repeated ids are answered from the loader's
// cache.
func StatusOf(ctx context.Context, userID uuid.UUID) func() (domain.InvestorStatus, error) {
	l, ok := FromContext(ctx)
	if !ok {
		return func() (domain.InvestorStatus, error) { return domain.StatusNone, ErrNoLoaders }
	}
	return l.StatusByUserID.Load(ctx, userID)
}

func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps grouped results back to key order, using defaultFn for missing keys.
func mapResults[V any](keys []uuid.UUID, grouped map[uuid.UUID]V, defaultFn func() V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := grouped[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Data: defaultFn()}
		}
	}
	return results
}
