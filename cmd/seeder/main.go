// Command seeder loads marketing content and investor documents from a YAML
// file. It is intended to be run offline, not as part of the main server.
//
// Flags:
//
//	--phase          comma-separated list of phases to run (default: all)
//	--dry-run        parse the content file without writing to DB
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/endocyclic/investor-portal/internal/adapter/postgres"
	"github.com/endocyclic/investor-portal/internal/adapter/postgres/content"
	"github.com/endocyclic/investor-portal/internal/adapter/postgres/document"
	"github.com/endocyclic/investor-portal/internal/app"
	"github.com/endocyclic/investor-portal/internal/app/seeder"
	"github.com/endocyclic/investor-portal/internal/config"
	"github.com/endocyclic/investor-portal/internal/domain"
)

// contentRepo adds the document upsert to the site content repository.
type contentRepo struct {
	*content.Repo
	docs *document.Repo
}

func (r contentRepo) UpsertDocument(ctx context.Context, doc domain.Document) error {
	return r.docs.Upsert(ctx, doc)
}

// Compile-time interface assertion.
var _ seeder.ContentRepo = contentRepo{}

func main() {
	phaseFlag := flag.String("phase", "", "comma-separated phases to run (default: all)")
	dryRunFlag := flag.Bool("dry-run", false, "parse the content file without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *dryRunFlag {
		seederCfg.DryRun = true
	}

	var phases []string
	if *phaseFlag != "" {
		phases = strings.Split(*phaseFlag, ",")
		for i := range phases {
			phases[i] = strings.TrimSpace(phases[i])
		}
	}

	file, err := seeder.ReadFile(seederCfg.ContentPath)
	if err != nil {
		logger.Error("load content file",
			slog.String("path", seederCfg.ContentPath),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := contentRepo{Repo: content.New(pool), docs: document.New(pool)}

	pipeline := seeder.NewPipeline(logger, repo, *seederCfg)
	if err := pipeline.Run(ctx, file, phases); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors")
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully")
}
