package status

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// scheduleWriteBack caches status in the user's app metadata in the
// background. A write-back of the same value already in flight is reused.
func (r *Resolver) scheduleWriteBack(userID uuid.UUID, status domain.InvestorStatus) {
	r.mu.Lock()
	if r.closed || r.pending[userID] == status {
		r.mu.Unlock()
		return
	}
	r.pending[userID] = status
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(r.ctx, r.opts.WriteBackTimeout)
		defer cancel()

		identity, err := r.meta.AdminUpdateAppMetadata(ctx, userID, domain.StatusCachePatch(status, r.now()))

		r.mu.Lock()
		if r.pending[userID] == status {
			delete(r.pending, userID)
		}
		closed := r.closed
		r.mu.Unlock()

		if err != nil {
			r.log.WarnContext(ctx, "status write-back failed",
				slog.String("user_id", userID.String()),
				slog.String("status", status.String()),
				slog.String("error", err.Error()))
			return
		}
		if closed || r.sink == nil {
			return
		}
		r.sink.ApplyIdentity(identity)
	}()
}
