// Package directory loads and filters the investor document library shown
// inside the portal.
package directory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// documentSource lists the document library.
type documentSource interface {
	ListAll(ctx context.Context) ([]domain.Document, error)
}

// Snapshot is the visible state of a Directory.
type Snapshot struct {
	Documents []domain.Document
	Loading   bool
	Loaded    bool
	Err       error
}

// Directory holds the document list of one browser. Every Load, Reset and
// Close bumps a generation; a load only applies its result if the
// generation is still the one it started with.
type Directory struct {
	log    *slog.Logger
	source documentSource

	mu         sync.Mutex
	docs       []domain.Document
	loading    bool
	loaded     bool
	err        error
	generation uint64
	closed     bool
}

// New creates an empty Directory.
func New(logger *slog.Logger, source documentSource) *Directory {
	return &Directory{
		log:    logger.With("service", "directory"),
		source: source,
	}
}

// Load fetches the full document list, newest first. On failure the list
// is emptied and Snapshot().Err carries a *domain.LookupError. The returned
// error is the one stored, or nil when the result was discarded.
func (d *Directory) Load(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.generation++
	gen := d.generation
	d.loading = true
	d.mu.Unlock()

	docs, err := d.source.ListAll(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.generation != gen {
		return nil
	}
	d.loading = false
	d.loaded = true
	if err != nil {
		d.docs = nil
		d.err = domain.NewLookupError("directory.Load", err)
		d.log.WarnContext(ctx, "document load failed", slog.String("error", err.Error()))
		return d.err
	}
	d.docs = docs
	d.err = nil
	return nil
}

// Reset discards the list and any load in flight.
func (d *Directory) Reset() {
	d.mu.Lock()
	d.generation++
	d.docs = nil
	d.err = nil
	d.loading = false
	d.loaded = false
	d.mu.Unlock()
}

// Close resets the directory and ignores every later Load.
func (d *Directory) Close() {
	d.Reset()
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
}

// Snapshot returns a copy of the current state. Documents is never nil.
func (d *Directory) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	docs := make([]domain.Document, len(d.docs))
	copy(docs, d.docs)
	return Snapshot{Documents: docs, Loading: d.loading, Loaded: d.loaded, Err: d.err}
}
