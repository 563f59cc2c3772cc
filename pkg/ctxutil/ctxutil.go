// Package ctxutil carries per-request identifiers through context.Context:
// the request id, the browser's portal session id and, once signed in, the
// identity's user id and role.
package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/endocyclic/investor-portal/internal/domain"
)

type key int

const (
	userIDKey key = iota
	requestIDKey
	roleKey
	sessionKey
)

func value[T any](ctx context.Context, k key) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx reports false for a missing or nil id.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := value[uuid.UUID](ctx, userIDKey)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromCtx(ctx context.Context) string {
	id, _ := value[string](ctx, requestIDKey)
	return id
}

func WithUserRole(ctx context.Context, role domain.UserRole) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

// UserRoleFromCtx reports false for a missing or unknown role.
func UserRoleFromCtx(ctx context.Context) (domain.UserRole, bool) {
	role, ok := value[domain.UserRole](ctx, roleKey)
	if !ok || !role.IsValid() {
		return "", false
	}
	return role, true
}

func IsAdminCtx(ctx context.Context) bool {
	role, ok := UserRoleFromCtx(ctx)
	return ok && role.IsAdmin()
}

// WithSessionID stores the browser's session cookie value.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sessionKey, sid)
}

func SessionIDFromCtx(ctx context.Context) string {
	sid, _ := value[string](ctx, sessionKey)
	return sid
}
