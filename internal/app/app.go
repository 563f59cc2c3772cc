package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/endocyclic/investor-portal/internal/adapter/gotrue"
	"github.com/endocyclic/investor-portal/internal/adapter/memory"
	"github.com/endocyclic/investor-portal/internal/adapter/postgres"
	"github.com/endocyclic/investor-portal/internal/adapter/postgres/account"
	"github.com/endocyclic/investor-portal/internal/adapter/postgres/contact"
	contentrepo "github.com/endocyclic/investor-portal/internal/adapter/postgres/content"
	"github.com/endocyclic/investor-portal/internal/adapter/postgres/document"
	registrationrepo "github.com/endocyclic/investor-portal/internal/adapter/postgres/registration"
	"github.com/endocyclic/investor-portal/internal/adapter/redis"
	"github.com/endocyclic/investor-portal/internal/auth"
	"github.com/endocyclic/investor-portal/internal/config"
	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/eventbus"
	"github.com/endocyclic/investor-portal/internal/portal"
	"github.com/endocyclic/investor-portal/internal/service/admin"
	"github.com/endocyclic/investor-portal/internal/service/content"
	"github.com/endocyclic/investor-portal/internal/service/registration"
	"github.com/endocyclic/investor-portal/internal/transport/dataloader"
	"github.com/endocyclic/investor-portal/internal/transport/middleware"
	"github.com/endocyclic/investor-portal/internal/transport/rest"
)

// rateLimitCleanup is how often idle rate limit buckets are dropped.
const rateLimitCleanup = 5 * time.Minute

// tokenStore persists the session token of each browser.
type tokenStore interface {
	Load(ctx context.Context, sid string) ([]byte, error)
	Save(ctx context.Context, sid string, data []byte) error
	Delete(ctx context.Context, sid string) error
}

// Run is the application entry point. It wires the dependencies, serves
// the HTTP API and blocks until ctx is cancelled or a component fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	health := []rest.Component{{Name: "database", Pinger: pool}}

	var tokens tokenStore
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rdb.Close()
		tokens = redis.NewTokenStore(rdb, cfg.Portal.StorageKey, cfg.Portal.SessionTTL)
		health = append(health, rest.Component{Name: "redis", Pinger: rest.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})})
	} else {
		logger.Warn("redis not configured, session tokens are kept in memory")
		tokens = memory.NewTokenStore(cfg.Portal.SessionTTL)
	}

	verifier := auth.NewJWTManager(cfg.Supabase.JWTSecret, cfg.Supabase.AuthURL(), 0)
	identities := gotrue.NewClient(gotrue.Options{
		BaseURL:        cfg.Supabase.AuthURL(),
		AnonKey:        cfg.Supabase.AnonKey,
		ServiceRoleKey: cfg.Supabase.ServiceRoleKey,
		Timeout:        cfg.Supabase.HTTPTimeout,
	}, verifier, logger)

	txm := postgres.NewTxManager(pool)
	registrations := registrationrepo.New(pool)
	documents := document.New(pool)
	accounts := account.New(pool)

	decisions := eventbus.New[domain.RegistrationDecision]()

	registrationSvc := registration.NewService(logger, identities, registrations, cfg.Registration)
	adminSvc := admin.NewService(logger, registrations, accounts, identities, txm, decisions)
	contentSvc := content.NewService(logger, contentrepo.New(pool), contact.New(pool))

	manager := portal.NewManager(logger, portal.Deps{
		Auth:          identities,
		Tokens:        tokens,
		Registrations: registrations,
		Documents:     documents,
		Admin:         adminSvc,
	}, portal.OptionsFromConfig(cfg.Portal))
	defer manager.Close()

	unsubscribe := decisions.Subscribe(manager.HandleDecision)
	defer unsubscribe()

	limiter := middleware.NewRateLimiter()

	handler := rest.NewRouter(rest.RouterDeps{
		Logger:       logger,
		Portal:       manager,
		Health:       rest.NewHealthHandler(Version, health...),
		Registration: registrationSvc,
		Content:      contentSvc,
		Loaders:      &dataloader.Repos{Registration: registrations},
		Limiter:      limiter,
		PortalConfig: cfg.Portal,
		CORS:         cfg.CORS,
		RateLimit:    cfg.RateLimit,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return manager.Run(gctx)
	})

	g.Go(func() error {
		return limiter.Run(gctx, rateLimitCleanup)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Event streams only end when their clients are torn down.
		manager.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}
