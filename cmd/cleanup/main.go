// Command cleanup deletes contact form submissions older than the
// retention period, contact.retention_days unless -days overrides it. Run
// it from cron.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/endocyclic/investor-portal/internal/adapter/postgres"
	"github.com/endocyclic/investor-portal/internal/adapter/postgres/contact"
	"github.com/endocyclic/investor-portal/internal/app"
	"github.com/endocyclic/investor-portal/internal/config"
)

func main() {
	days := flag.Int("days", 0, "retention in days (default: contact.retention_days)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	retention := cfg.Contact.RetentionDays
	if *days > 0 {
		retention = *days
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	threshold := time.Now().AddDate(0, 0, -retention)

	deleted, err := contact.New(pool).DeleteOlderThan(ctx, threshold)
	if err != nil {
		logger.Error("contact cleanup failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", threshold),
		)
		os.Exit(1)
	}

	logger.Info("contact cleanup completed",
		slog.Int64("deleted", deleted),
		slog.Int("retention_days", retention),
		slog.Time("threshold", threshold),
	)
}
