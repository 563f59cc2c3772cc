// Command portal serves the investor portal API.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/endocyclic/investor-portal/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("portal: %v", err)
	}
}
