package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/endocyclic/investor-portal/internal/config"
	"github.com/endocyclic/investor-portal/internal/portal"
	"github.com/endocyclic/investor-portal/internal/transport/dataloader"
	"github.com/endocyclic/investor-portal/internal/transport/middleware"
)

// RouterDeps are the collaborators of the HTTP API.
type RouterDeps struct {
	Logger       *slog.Logger
	Portal       *portal.Manager
	Health       *HealthHandler
	Registration registrationService
	Content      contentService
	Loaders      *dataloader.Repos
	Limiter      *middleware.RateLimiter
	PortalConfig config.PortalConfig
	CORS         config.CORSConfig
	RateLimit    config.RateLimitConfig
}

// NewRouter mounts every endpoint of the API. Public content, contact and
// registration need no session; everything under /api/session,
// /api/portal and /api/admin runs with the browser's portal client.
func NewRouter(d RouterDeps) http.Handler {
	sessions := NewSessionHandler(d.Logger, d.PortalConfig.EventBufferSize)
	portals := NewPortalHandler(d.Logger)
	admins := NewAdminHandler(d.Logger)
	registrations := NewRegistrationHandler(d.Registration, d.Logger)
	content := NewContentHandler(d.Content, d.Logger)

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.CORS(d.CORS),
	)

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)

	r.Route("/api", func(api chi.Router) {
		api.With(d.Limiter.Limit("register", d.RateLimit.RegisterPerMinute)).
			Post("/registrations", registrations.Register)
		api.With(d.Limiter.Limit("contact", d.RateLimit.ContactPerMinute)).
			Post("/contact", content.Contact)

		api.Route("/content", func(c chi.Router) {
			c.Get("/products", content.Products)
			c.Get("/team", content.Team)
			c.Get("/publications", content.Publications)
			c.Get("/news", content.News)
		})

		api.Group(func(s chi.Router) {
			s.Use(middleware.Session(d.Portal, d.PortalConfig, d.Logger))

			s.Route("/session", func(ss chi.Router) {
				ss.Get("/", sessions.Get)
				ss.With(d.Limiter.Limit("sign_in", d.RateLimit.SignInPerMinute)).
					Post("/sign-in", sessions.SignIn)
				ss.Post("/sign-out", sessions.SignOut)
				ss.Get("/events", sessions.Events)
			})

			s.Route("/portal", func(p chi.Router) {
				p.Post("/access", portals.RequestAccess)
				p.Post("/close", portals.Close)
				p.Post("/auth-modal", portals.ToggleAuthModal)
				p.Post("/admin-page", portals.ToggleAdminPage)
				p.Get("/documents", portals.Documents)
				p.Post("/documents/reload", portals.ReloadDocuments)
			})

			s.Route("/admin", func(a chi.Router) {
				a.Use(middleware.RequireAdmin, dataloader.Attach(d.Loaders))
				a.Get("/dashboard", admins.Dashboard)
				a.Get("/registrations", admins.PendingRegistrations)
				a.Post("/registrations/{id}/decision", admins.Decide)
				a.Get("/users", admins.Users)
				a.Post("/users", admins.CreateUser)
				a.Post("/users/{id}/deletion", admins.RequestDeletion)
				a.Delete("/users/{id}", admins.DeleteUser)
			})
		})
	})

	return r
}
