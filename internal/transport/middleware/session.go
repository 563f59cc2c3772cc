package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/endocyclic/investor-portal/internal/config"
	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/portal"
	"github.com/endocyclic/investor-portal/pkg/ctxutil"
)

type clientProvider interface {
	Client(ctx context.Context, sid string) (*portal.Client, error)
}

// Session attaches the browser's portal client to the request. The browser
// is identified by the session cookie, which is issued on first contact.
// A signed-in identity is exposed through ctxutil as user id and role.
func Session(clients clientProvider, cfg config.PortalConfig, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, ok := sessionID(r, cfg.CookieName)
			if !ok {
				sid = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(cfg.SessionTTL.Seconds()),
					HttpOnly: true,
					Secure:   cfg.CookieSecure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			client, err := clients.Client(r.Context(), sid)
			if err != nil {
				logger.WarnContext(r.Context(), "portal client unavailable", slog.String("error", err.Error()))
				writeError(w, http.StatusServiceUnavailable, domain.MsgTemporarilyUnavailable)
				return
			}

			ctx := ctxutil.WithSessionID(r.Context(), sid)
			ctx = portal.WithClient(ctx, client)
			userID := ""
			if identity := client.Identity(); identity != nil {
				ctx = ctxutil.WithUserID(ctx, identity.ID)
				ctx = ctxutil.WithUserRole(ctx, identity.Role())
				userID = identity.ID.String()
			}
			annotateRequest(ctx, sid, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionID returns the cookie value when it is a well-formed session id.
// Anything else is replaced by a fresh id.
func sessionID(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}
