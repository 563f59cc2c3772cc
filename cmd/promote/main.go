// Command promote sets the role of the identity with the given e-mail. It
// bootstraps the first admin and can demote one again.
//
//	promote -email=ceo@example.com
//	promote -email=ceo@example.com -role=user
//
// Only DATABASE_DSN is read from the environment, so the tool works before
// the rest of the portal is configured.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/endocyclic/investor-portal/internal/adapter/postgres/account"
	"github.com/endocyclic/investor-portal/internal/domain"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "promote:", err)
		os.Exit(1)
	}
}

func run() error {
	email := flag.String("email", "", "e-mail of the identity to update")
	role := flag.String("role", string(domain.UserRoleAdmin), "role to grant: admin or user")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		return errors.New("-email is required")
	}
	target := domain.UserRole(*role)
	if !target.IsValid() {
		return fmt.Errorf("unknown role %q", *role)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		return errors.New("DATABASE_DSN is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	id, err := account.New(pool).SetRoleByEmail(ctx, *email, target)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no identity with e-mail %q", *email)
	}
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	fmt.Printf("%s (%s) is now %s. Signed-in browsers see the change after their next token refresh.\n", *email, id, target)
	return nil
}
