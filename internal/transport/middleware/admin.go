package middleware

import (
	"net/http"

	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/pkg/ctxutil"
)

// RequireAdmin rejects requests whose session has no admin identity:
// 401 when nobody is signed in, 403 for any other role. Services check the
// role again, so this only short-circuits the obvious cases.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, domain.MsgSignInRequired)
			return
		}
		if !ctxutil.IsAdminCtx(r.Context()) {
			writeError(w, http.StatusForbidden, domain.MsgAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
