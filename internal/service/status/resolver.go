// Package status resolves the investor status of an identity: admin,
// cached in app metadata, or looked up from the registration records.
package status

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/endocyclic/investor-portal/internal/domain"
)

const defaultWriteBackTimeout = 10 * time.Second

// registrationLookup finds the registration that determines a user's status.
type registrationLookup interface {
	LatestForUser(ctx context.Context, userID uuid.UUID, email string) (*domain.Registration, error)
}

// metadataWriter merges a patch into an identity's app metadata.
type metadataWriter interface {
	AdminUpdateAppMetadata(ctx context.Context, userID uuid.UUID, patch map[string]any) (*domain.Identity, error)
}

// identitySink receives identities updated by a metadata write-back.
type identitySink interface {
	ApplyIdentity(identity *domain.Identity) bool
}

// Options configures a Resolver.
type Options struct {
	// StaleAfter bounds how old a cached status may be. Zero or negative
	// trusts the cache indefinitely.
	StaleAfter time.Duration
	// WriteBackTimeout bounds one metadata write-back.
	WriteBackTimeout time.Duration
}

// known is the outcome of the last registration lookup.
type known struct {
	userID uuid.UUID
	status domain.InvestorStatus
	at     time.Time
}

// Resolver resolves statuses for one browser. Concurrent resolutions for
// the same user share a single lookup.
type Resolver struct {
	log   *slog.Logger
	regs  registrationLookup
	meta  metadataWriter
	sink  identitySink
	opts  Options
	now   func() time.Time
	group singleflight.Group

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	epoch       uint64
	invalidated bool
	last        *known
	pending     map[uuid.UUID]domain.InvestorStatus
	closed      bool
}

// NewResolver creates a Resolver. sink may be nil.
func NewResolver(logger *slog.Logger, regs registrationLookup, meta metadataWriter, sink identitySink, opts Options) *Resolver {
	if opts.WriteBackTimeout <= 0 {
		opts.WriteBackTimeout = defaultWriteBackTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Resolver{
		log:     logger.With("service", "status"),
		regs:    regs,
		meta:    meta,
		sink:    sink,
		opts:    opts,
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
		pending: make(map[uuid.UUID]domain.InvestorStatus),
	}
}

// Resolve returns the investor status of identity. First match wins:
// no identity is StatusNone, an admin is approved, a fresh cached status is
// trusted unless invalidated, otherwise the latest registration decides.
// A failed lookup yields StatusNone together with a *domain.LookupError.
func (r *Resolver) Resolve(ctx context.Context, identity *domain.Identity) (domain.InvestorStatus, error) {
	if identity == nil {
		return domain.StatusNone, nil
	}
	if identity.IsAdmin() {
		return domain.StatusApproved, nil
	}

	r.mu.Lock()
	invalidated := r.invalidated
	last := r.last
	epoch := r.epoch
	r.mu.Unlock()

	if !invalidated {
		if last != nil && last.userID == identity.ID && r.fresh(last.at) {
			return last.status, nil
		}
		if cached, syncedAt, ok := identity.CachedStatus(); ok && r.fresh(syncedAt) {
			return cached, nil
		}
	}

	key := identity.ID.String() + "/" + strconv.FormatUint(epoch, 10)
	v, err, _ := r.group.Do(key, func() (any, error) {
		return r.lookup(ctx, identity)
	})
	if err != nil {
		r.log.WarnContext(ctx, "status lookup failed",
			slog.String("user_id", identity.ID.String()),
			slog.String("error", err.Error()))
		return domain.StatusNone, domain.NewLookupError("status.Resolve", err)
	}
	resolved := v.(domain.InvestorStatus)

	r.mu.Lock()
	if r.epoch == epoch {
		r.invalidated = false
		r.last = &known{userID: identity.ID, status: resolved, at: r.now()}
	}
	r.mu.Unlock()

	if resolved != domain.StatusNone {
		cached, syncedAt, ok := identity.CachedStatus()
		if !ok || cached != resolved || !r.fresh(syncedAt) {
			r.scheduleWriteBack(identity.ID, resolved)
		}
	}
	return resolved, nil
}

func (r *Resolver) lookup(ctx context.Context, identity *domain.Identity) (domain.InvestorStatus, error) {
	reg, err := r.regs.LatestForUser(ctx, identity.ID, identity.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.StatusNone, nil
	}
	if err != nil {
		return domain.StatusNone, err
	}
	return reg.Status, nil
}

func (r *Resolver) fresh(syncedAt time.Time) bool {
	if r.opts.StaleAfter <= 0 {
		return true
	}
	if syncedAt.IsZero() {
		return false
	}
	return r.now().Sub(syncedAt) <= r.opts.StaleAfter
}

// Invalidate makes the next Resolve skip every cached value. It is called
// on sign-in and when an admin decides the user's registration.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.epoch++
	r.invalidated = true
	r.last = nil
	r.mu.Unlock()
}

// Close stops scheduling write-backs and cancels those in flight. Their
// results are discarded.
func (r *Resolver) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.cancel()
}

// Wait blocks until every scheduled write-back has finished.
func (r *Resolver) Wait() {
	r.wg.Wait()
}
