package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// allPhases defines the canonical execution order.
var allPhases = []string{"products", "team", "publications", "news", "documents"}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Upserted int
	Skipped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// Pipeline writes the sections of a content file, one phase per section.
type Pipeline struct {
	log     *slog.Logger
	repo    ContentRepo
	cfg     Config
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, repo ContentRepo, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		repo:    repo,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run writes f. If phases is non-empty, only the listed phases run.
func (p *Pipeline) Run(ctx context.Context, f *File, phases []string) error {
	toRun, err := selectPhases(phases)
	if err != nil {
		return err
	}

	for _, phase := range toRun {
		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case "products":
			result = upsertAll(ctx, p, f.Products, p.repo.UpsertProduct)
		case "team":
			result = upsertAll(ctx, p, f.Team, p.repo.UpsertTeamMember)
		case "publications":
			result = upsertAll(ctx, p, f.Publications, p.repo.UpsertPublication)
		case "news":
			result = upsertAll(ctx, p, f.News, p.repo.UpsertNews)
		case "documents":
			result = upsertAll(ctx, p, f.Documents, p.repo.UpsertDocument)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			continue
		}
		p.log.Info("phase completed",
			slog.String("phase", phase),
			slog.Int("upserted", result.Upserted),
			slog.Int("skipped", result.Skipped),
			slog.Int("errors", result.Errors),
			slog.Duration("duration", result.Duration),
		)
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

func selectPhases(phases []string) ([]string, error) {
	if len(phases) == 0 {
		return allPhases, nil
	}

	filter := make(map[string]bool, len(phases))
	for _, ph := range phases {
		filter[ph] = true
	}
	var out []string
	for _, ph := range allPhases {
		if filter[ph] {
			out = append(out, ph)
			delete(filter, ph)
		}
	}
	for ph := range filter {
		return nil, fmt.Errorf("unknown phase %q", ph)
	}
	return out, nil
}

// upsertAll writes items one by one. A failed item is counted and logged;
// a cancelled context stops the phase.
func upsertAll[T any](ctx context.Context, p *Pipeline, items []T, upsert func(context.Context, T) error) PhaseResult {
	if p.cfg.DryRun {
		return PhaseResult{Skipped: len(items)}
	}

	var result PhaseResult
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			result.Err = err
			return result
		}
		if err := upsert(ctx, item); err != nil {
			result.Errors++
			p.log.Warn("upsert failed", slog.Int("index", i), slog.String("error", err.Error()))
			continue
		}
		result.Upserted++
	}
	return result
}
